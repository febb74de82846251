package cmd

import (
	"github.com/NahomAnteneh/wit/core"
	"github.com/NahomAnteneh/wit/internal/staging"
)

// RmHandler unstages each argument, in order, per spec.md §4.3. rm touches
// only the staging tree — it never records a deletion into a future commit
// (DESIGN.md open question 1).
func RmHandler(repo *core.Repository, args []string) error {
	return staging.Rm(repo, args)
}

func init() {
	rootCmd.AddCommand(NewCommand(
		"rm <path>...",
		"Remove paths from the staging area",
		RmHandler,
		1,
	))
}
