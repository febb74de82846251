package cmd

import (
	"github.com/NahomAnteneh/wit/core"
	"github.com/NahomAnteneh/wit/internal/staging"
)

// AddHandler stages each argument, in order, per spec.md §4.3.
func AddHandler(repo *core.Repository, args []string) error {
	return staging.Add(repo, args)
}

func init() {
	rootCmd.AddCommand(NewCommand(
		"add <path>...",
		"Add file or directory contents to the staging area",
		AddHandler,
		1,
	))
}
