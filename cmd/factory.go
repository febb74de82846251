package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NahomAnteneh/wit/core"
)

// HandlerFunc is the signature for every command that needs a located
// repository. This is the same factory shape the teacher uses, kept
// because it separates "find the repository" from "do the operation" the
// way spec.md §4.1 describes the locator as a shared entry guard.
type HandlerFunc func(repo *core.Repository, args []string) error

// NewCommand creates a cobra.Command that locates the repository from the
// current directory, enforces a minimum argument count, then hands off to
// handler.
func NewCommand(use, short string, handler HandlerFunc, requiredArgs int) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < requiredArgs {
				return fmt.Errorf("requires at least %d argument(s)", requiredArgs)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			repo, err := core.Locate(wd)
			if err != nil {
				return err
			}
			return handler(repo, args)
		},
	}
}

// NewRepoCommand is NewCommand with no required positional arguments.
func NewRepoCommand(use, short string, handler HandlerFunc) *cobra.Command {
	return NewCommand(use, short, handler, 0)
}

// NewInitCommand creates a command that does not require an existing
// repository — the one exception to the locator-as-entry-guard rule
// (spec.md §4.1: "used by every command except init").
func NewInitCommand(use, short string, run func(args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args)
		},
	}
}
