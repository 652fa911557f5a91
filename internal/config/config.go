// Package config loads the YAML configuration driving JS/TS dependency
// traversals, layered as defaults → config file → FLATSRC_* environment
// variables.
package config

import "strconv"

// DepthAll expands the import chain without a depth bound.
const DepthAll = "all"

// JSDeps is the configuration for a JS/TS dependency traversal.
type JSDeps struct {
	Repo              string   `yaml:"repo" mapstructure:"repo"`
	Files             []string `yaml:"files" mapstructure:"files"`
	IgnoreFile        string   `yaml:"ignore_file" mapstructure:"ignore_file"`
	Output            string   `yaml:"output" mapstructure:"output"`
	TokenCount        bool     `yaml:"token_count" mapstructure:"token_count"`
	IncludeCSSImports bool     `yaml:"include_css_imports" mapstructure:"include_css_imports"`
	IncludeImages     bool     `yaml:"include_images" mapstructure:"include_images"`

	// Depth is either an integer or the string "all". Unrecognized
	// values fall back to unlimited.
	Depth any `yaml:"depth" mapstructure:"depth"`
}

// Default returns a configuration with sensible defaults; repo and files
// have no default and must come from the config file.
func Default() *JSDeps {
	return &JSDeps{
		IgnoreFile: ".repoignore",
		Output:     "js_flat_output.txt",
		Depth:      DepthAll,
	}
}

// MaxDepth converts the depth setting into a traversal bound, negative
// meaning unlimited.
func (c *JSDeps) MaxDepth() int {
	switch v := c.Depth.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		return -1
	default:
		return -1
	}
}
