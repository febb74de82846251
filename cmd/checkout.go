package cmd

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/NahomAnteneh/wit/core"
	"github.com/NahomAnteneh/wit/internal/diff"
	"github.com/NahomAnteneh/wit/internal/refs"
	"github.com/NahomAnteneh/wit/internal/werr"
)

// CheckoutHandler implements spec.md §4.7: resolve target, guard against
// uncommitted work, overlay-copy the image onto the working tree and
// staging, then update references with flow=checkout.
func CheckoutHandler(repo *core.Repository, args []string) error {
	target := args[0]

	t, err := refs.Load(repo)
	if err != nil {
		return err
	}

	id, isBranch := t.Get(target)
	if !isBranch {
		id = target
	}
	if !repo.ImageExists(id) {
		return werr.New(werr.CommitNotFound, "commit not found: "+id, nil)
	}

	activeName := ""
	if isBranch {
		activeName = target
	}
	if err := refs.SetActive(repo, activeName); err != nil {
		return err
	}

	if refs.Exists(repo) {
		toBeCommitted, err := diff.ToBeCommitted(repo.StagingDir, repo.ImageDir(t.Head))
		if err != nil {
			return err
		}
		notStaged, _, err := diff.WorkingTreeStatus(repo.Root, repo.StagingDir, core.WitDirName)
		if err != nil {
			return err
		}
		if len(toBeCommitted) > 0 || len(notStaged) > 0 {
			return werr.New(werr.UncommittedWork, "you have uncommitted changes; commit or revert them before checkout", nil)
		}
	}

	if err := core.OverlayCopy(repo.ImageDir(id), repo.Root); err != nil {
		return err
	}
	if err := core.OverlayCopy(repo.ImageDir(id), repo.StagingDir); err != nil {
		return err
	}

	if err := refs.ApplyCheckout(repo, id); err != nil {
		return err
	}

	fmt.Println("Switched to " + color.CyanString(target) + " (" + id[:7] + ")")
	return nil
}

func init() {
	rootCmd.AddCommand(NewCommand(
		"checkout <commit-or-branch>",
		"Switch the working tree to a commit or branch",
		CheckoutHandler,
		1,
	))
}
