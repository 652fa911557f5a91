package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flatsrc/flatsrc/internal/ignore"
	"github.com/flatsrc/flatsrc/internal/scan"
	"github.com/flatsrc/flatsrc/internal/watcher"
)

var (
	scanRepo       string
	scanIndex      string
	scanOutput     string
	scanIgnoreFile string
	scanTokens     bool
	scanIndexOnly  bool
	scanWatch      bool
	scanQuiet      bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Index a repository's text files and flatten them into one artifact",
	Long: `Scan walks the repository, skipping ignore patterns and binary files,
and writes an index of "ID<TAB>path" lines. Unless --index-only is given,
every indexed file is then concatenated into the output artifact.

Examples:
  # Index and flatten the whole repository
  flatsrc scan --repo .

  # Only build the index, with a total token estimate
  flatsrc scan --repo . --index-only --tokens

  # Keep the artifact fresh while editing
  flatsrc scan --repo . --watch
`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVar(&scanRepo, "repo", "", "Path to the repository to scan")
	scanCmd.Flags().StringVar(&scanIndex, "index", "index.txt", "Path of the index file to create")
	scanCmd.Flags().StringVar(&scanOutput, "output", "flat_output.txt", "Output file for combined contents")
	scanCmd.Flags().StringVar(&scanIgnoreFile, "ignore-file", ".repoignore", "File listing glob patterns to ignore")
	scanCmd.Flags().BoolVar(&scanTokens, "tokens", false, "Also estimate the total token count of indexed files")
	scanCmd.Flags().BoolVar(&scanIndexOnly, "index-only", false, "Build the index without writing the flat artifact")
	scanCmd.Flags().BoolVarP(&scanWatch, "watch", "w", false, "Rescan whenever files change")
	scanCmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "Disable progress bars and non-error output")
	scanCmd.MarkFlagRequired("repo")
}

func runScan(cmd *cobra.Command, args []string) error {
	if info, err := os.Stat(scanRepo); err != nil || !info.IsDir() {
		return fmt.Errorf("repo is not a directory: %s", scanRepo)
	}

	matcher, err := ignore.Load(scanIgnoreFile)
	if err != nil {
		return err
	}
	if !scanQuiet {
		if matcher.Len() > 0 {
			fmt.Printf("Found %d ignore patterns in %q\n", matcher.Len(), scanIgnoreFile)
		} else {
			fmt.Printf("No ignore patterns found in %q (or file does not exist)\n", scanIgnoreFile)
		}
	}

	doScan := func() error {
		scanner := scan.NewScanner(scanRepo, matcher)
		scanner.CountTokens = scanTokens
		if verbose && !scanQuiet {
			scanner.OnFile = func(relPath string) {
				fmt.Printf("Indexed %s\n", relPath)
			}
		}

		res, err := scanner.Scan()
		if err != nil {
			return err
		}
		if err := scan.WriteIndex(scanIndex, res.Entries); err != nil {
			return err
		}
		if !scanQuiet {
			fmt.Printf("Index file %q has been created with %d entries\n", scanIndex, len(res.Entries))
			if scanTokens {
				fmt.Printf("Estimated total tokens across all text files: %d\n", res.TotalTokens)
			}
		}
		if scanIndexOnly {
			return nil
		}

		idToPath := make(map[int]string, len(res.Entries))
		for _, e := range res.Entries {
			idToPath[e.ID] = e.Path
		}
		ids := scan.AllIDs(idToPath)

		progress := NewProgressReporter(scanQuiet)
		progress.Start(len(ids), "Flattening files")
		tokens, err := scan.Extract(scanRepo, idToPath, ids, scanOutput, func(string) {
			progress.Step()
		})
		progress.Finish()
		if err != nil {
			return err
		}
		if !scanQuiet {
			fmt.Printf("File %q has been produced with an estimated %d tokens\n", scanOutput, tokens)
		}
		return nil
	}

	if err := doScan(); err != nil {
		return err
	}
	if !scanWatch {
		return nil
	}

	// Watch mode: rerun the scan after each settled burst of changes
	// until interrupted.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Stopping watch mode...")
		cancel()
	}()

	w, err := watcher.New(scanRepo, 0)
	if err != nil {
		return err
	}
	defer w.Close()

	if !scanQuiet {
		fmt.Printf("Watching %s for changes...\n", filepath.Clean(scanRepo))
	}
	err = w.Run(ctx, func() {
		if err := doScan(); err != nil {
			fmt.Fprintf(os.Stderr, "rescan failed: %v\n", err)
		}
	})
	if err == context.Canceled {
		return nil
	}
	return err
}
