package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flatsrc",
	Short: "Flatten source trees and reference chains into single text artifacts",
	Long: `flatsrc walks a repository, follows lightweight reference chains
(Java imports, JS/TS local imports, JSON schema definition pointers) and
emits one concatenated flat file suitable for feeding to a text consumer
such as an LLM context window.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Diagnostics go to stderr without timestamps; primary output stays
	// on stdout and in the written artifacts.
	log.SetFlags(0)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
