package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/NahomAnteneh/wit/internal/werr"
)

var rootCmd = &cobra.Command{
	Use:   "wit",
	Short: "wit is a minimal local version-control tool",
	Long: `wit snapshots directory trees into content-addressable-looking images
and reconstructs them on demand, with a staging area, branches, and a
simple last-write-wins merge.`,
}

// Execute runs the root command and translates a returned error into a
// process exit code, matching spec.md §7's propagation policy: the CLI
// boundary is the only place results become process exits.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// printError renders err for the user on stderr behind a red "error:"
// prefix (spec.md's out-of-scope "terminal coloring" concern). Taxonomy
// errors and unexpected failures are printed the same way.
func printError(err error) {
	if we, ok := err.(*werr.Error); ok {
		fmt.Fprintln(os.Stderr, color.RedString("error:")+" "+we.Error())
		return
	}
	fmt.Fprintln(os.Stderr, color.RedString("error:")+" "+err.Error())
}
