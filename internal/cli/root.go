package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "moddocs",
	Short: "Structural docs index and cross-reference tools for moddable games",
	Long: `moddocs extracts a structural documentation index from a game's C# source
tree and cross-references it against the game's XML definition files.

The scan command builds docs_index.json: every class, interface, struct and
enum declaration with its members, recovered line by line with regex
heuristics. The xmllinks and translations commands are grep-style linkers
that consume that index and the XML corpus.`,
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
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
