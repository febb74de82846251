package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/NahomAnteneh/wit/core"
	"github.com/NahomAnteneh/wit/internal/history"
)

// MergeHandler implements spec.md §4.8's merge planner: overlay the
// branch-side changes set onto staging, last-write-wins, then commit with
// a two-parent record.
func MergeHandler(repo *core.Repository, args []string) error {
	branch := args[0]

	id, err := history.Merge(repo, branch, time.Now())
	if err != nil {
		return err
	}

	fmt.Println(color.YellowString(id[:7]) + " merge \"" + branch + "\"")
	return nil
}

func init() {
	rootCmd.AddCommand(NewCommand(
		"merge <branch>",
		"Merge a branch into the current branch",
		MergeHandler,
		1,
	))
}
