package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/NahomAnteneh/wit/core"
	"github.com/NahomAnteneh/wit/internal/diff"
	"github.com/NahomAnteneh/wit/internal/refs"
)

// StatusHandler prints the three-way classification of spec.md §4.6:
// changes to be committed, changes not staged, and untracked files.
func StatusHandler(repo *core.Repository, args []string) error {
	active, err := refs.Active(repo)
	if err != nil {
		return err
	}
	if active != "" {
		fmt.Printf("On branch %s\n", active)
	} else {
		fmt.Println("HEAD detached")
	}

	var toBeCommitted []diff.Entry
	var headImageDir string
	if refs.Exists(repo) {
		t, err := refs.Load(repo)
		if err != nil {
			return err
		}
		headImageDir = repo.ImageDir(t.Head)
		toBeCommitted, err = diff.ToBeCommitted(repo.StagingDir, headImageDir)
		if err != nil {
			return err
		}
	}

	notStaged, untracked, err := diff.WorkingTreeStatus(repo.Root, repo.StagingDir, core.WitDirName)
	if err != nil {
		return err
	}

	if len(toBeCommitted) > 0 {
		fmt.Println("\nChanges to be committed:")
		for _, e := range toBeCommitted {
			fmt.Println("\t" + color.GreenString("%s:   %s", e.Kind, e.Path) + lineDeltaSuffix(e, filepath.Join(repo.StagingDir, e.Path), filepath.Join(headImageDir, e.Path)))
		}
	}

	if len(notStaged) > 0 {
		fmt.Println("\nChanges not staged for commit:")
		for _, e := range notStaged {
			fmt.Println("\t" + color.RedString("%s:   %s", e.Kind, e.Path) + lineDeltaSuffix(e, filepath.Join(repo.Root, e.Path), filepath.Join(repo.StagingDir, e.Path)))
		}
	}

	if len(untracked) > 0 {
		fmt.Println("\nUntracked files:")
		for _, p := range untracked {
			fmt.Println("\t" + color.RedString(p))
		}
	}

	if len(toBeCommitted) == 0 && len(notStaged) == 0 && len(untracked) == 0 {
		fmt.Println("\nnothing to commit, working tree clean")
	}

	return nil
}

// lineDeltaSuffix annotates a Modified entry with its insertion/deletion
// count (e.g. " (+3 -1)"), per spec.md §4.6's line-level change summary.
// Only Modified entries have two comparable file contents; New, Deleted and
// Untracked entries are left unannotated, and a content-read failure is
// swallowed since the annotation is a nicety, not part of the status guard.
func lineDeltaSuffix(e diff.Entry, pathA, pathB string) string {
	if e.Kind != diff.Modified {
		return ""
	}
	delta, err := diff.FileLineDelta(pathA, pathB)
	if err != nil {
		return ""
	}
	return color.YellowString(" (+%d -%d)", delta.Insertions, delta.Deletions)
}

func init() {
	rootCmd.AddCommand(NewRepoCommand(
		"status",
		"Show the staging area and working tree status",
		StatusHandler,
	))
}
