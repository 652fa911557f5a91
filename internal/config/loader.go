package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadJSDeps loads a traversal configuration with the following priority
// (highest to lowest):
//  1. Environment variables (FLATSRC_*)
//  2. The given YAML config file
//  3. Default values
func LoadJSDeps(path string) (*JSDeps, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("FLATSRC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("repo")
	v.BindEnv("ignore_file")
	v.BindEnv("output")
	v.BindEnv("token_count")
	v.BindEnv("include_css_imports")
	v.BindEnv("include_images")
	v.BindEnv("depth")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &JSDeps{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("ignore_file", defaults.IgnoreFile)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("depth", defaults.Depth)
}
