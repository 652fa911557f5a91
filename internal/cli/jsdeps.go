package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flatsrc/flatsrc/internal/config"
	"github.com/flatsrc/flatsrc/internal/deps"
	"github.com/flatsrc/flatsrc/internal/ignore"
	"github.com/flatsrc/flatsrc/internal/scan"
)

var jsDOT string

// jsdepsCmd represents the jsdeps command
var jsdepsCmd = &cobra.Command{
	Use:   "jsdeps <config.yaml>",
	Short: "Flatten JS/TS import chains described by a YAML config",
	Long: `Jsdeps reads a YAML configuration naming the repository, the start
files and traversal options, then follows local import statements
breadth-first up to the configured depth.

Config keys: repo, files, ignore_file, output, token_count,
include_css_imports, include_images, depth (integer or "all").
Environment variables with the FLATSRC_ prefix override file values.

Example:
  flatsrc jsdeps frontend.yaml
`,
	Args: cobra.ExactArgs(1),
	RunE: runJSDeps,
}

func init() {
	rootCmd.AddCommand(jsdepsCmd)
	jsdepsCmd.Flags().StringVar(&jsDOT, "dot", "", "Also write the traversed file graph in DOT format")
}

func runJSDeps(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadJSDeps(args[0])
	if err != nil {
		return err
	}

	matcher, err := ignore.Load(filepath.Join(cfg.Repo, cfg.IgnoreFile))
	if err != nil {
		return err
	}
	if matcher.Len() > 0 {
		fmt.Printf("Found %d ignore patterns in %q\n", matcher.Len(), cfg.IgnoreFile)
	} else {
		fmt.Printf("No ignore patterns found in %q (or file does not exist)\n", cfg.IgnoreFile)
	}

	start := make([]string, 0, len(cfg.Files))
	for _, f := range cfg.Files {
		start = append(start, filepath.Join(cfg.Repo, filepath.FromSlash(f)))
	}

	keep := func(absPath, relPath string) bool {
		if deps.IsImage(absPath) {
			return cfg.IncludeImages
		}
		return scan.IsTextFile(absPath)
	}
	expand := func(absPath string) bool {
		return !deps.IsImage(absPath)
	}

	res, err := deps.Traverse(start, deps.JSResolver{RepoRoot: cfg.Repo, IncludeCSS: cfg.IncludeCSSImports}, deps.Options{
		RepoRoot:    cfg.Repo,
		Ignore:      matcher,
		MaxDepth:    cfg.MaxDepth(),
		CountTokens: cfg.TokenCount,
		Keep:        keep,
		Expand:      expand,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Discovered %d unique files in the dependency chain\n", len(res.Files))
	if cfg.TokenCount {
		fmt.Printf("Approximate total tokens: %d\n", res.TotalTokens)
	}

	if err := deps.WriteFlat(res.Files, cfg.Repo, cfg.Output); err != nil {
		return err
	}
	fmt.Printf("Wrote combined contents to %q\n", cfg.Output)

	if jsDOT != "" {
		if err := res.WriteDOT(jsDOT); err != nil {
			return err
		}
		fmt.Printf("Wrote dependency graph to %q\n", jsDOT)
	}
	return nil
}
