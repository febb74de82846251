package cmd

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/NahomAnteneh/wit/core"
	"github.com/NahomAnteneh/wit/internal/refs"
)

// BranchHandler implements spec.md §4.5's branch(name): append a branch
// pointing at current HEAD. It requires references.txt to already exist,
// i.e. at least one commit has been made.
func BranchHandler(repo *core.Repository, args []string) error {
	name := args[0]

	t, err := refs.Load(repo)
	if err != nil {
		return err
	}
	if err := t.Create(name, t.Head); err != nil {
		return err
	}
	if err := t.Save(repo); err != nil {
		return err
	}

	fmt.Println("Created branch " + color.CyanString(name) + " at " + t.Head[:7])
	return nil
}

func init() {
	rootCmd.AddCommand(NewCommand(
		"branch <name>",
		"Create a new branch pointing at the current commit",
		BranchHandler,
		1,
	))
}
