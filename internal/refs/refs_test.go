package refs

import (
	"os"
	"testing"

	"github.com/NahomAnteneh/wit/core"
)

func setupRepo(t *testing.T) *core.Repository {
	t.Helper()
	repo, err := core.Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return repo
}

func TestFirstCommitSetsHeadAndMaster(t *testing.T) {
	repo := setupRepo(t)

	if err := ApplyCommit(repo, "id1"); err != nil {
		t.Fatalf("ApplyCommit failed: %v", err)
	}

	table, err := Load(repo)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.Head != "id1" {
		t.Errorf("HEAD = %q, want %q", table.Head, "id1")
	}
	if table.Master != "id1" {
		t.Errorf("master = %q, want %q", table.Master, "id1")
	}
}

func TestSecondCommitOnMasterAdvancesBoth(t *testing.T) {
	repo := setupRepo(t)

	if err := ApplyCommit(repo, "id1"); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
	if err := ApplyCommit(repo, "id2"); err != nil {
		t.Fatalf("second commit failed: %v", err)
	}

	table, err := Load(repo)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.Head != "id2" || table.Master != "id2" {
		t.Errorf("HEAD/master = %s/%s, want id2/id2", table.Head, table.Master)
	}
}

func TestCommitOnDetachedHeadDoesNotMoveBranches(t *testing.T) {
	repo := setupRepo(t)

	if err := ApplyCommit(repo, "id1"); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
	if err := SetActive(repo, ""); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	if err := ApplyCommit(repo, "id2"); err != nil {
		t.Fatalf("detached commit failed: %v", err)
	}

	table, err := Load(repo)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.Head != "id2" {
		t.Errorf("HEAD = %q, want id2", table.Head)
	}
	if table.Master != "id1" {
		t.Errorf("master = %q, want unchanged id1 on a detached commit", table.Master)
	}
}

func TestBranchCommitAdvancesOnlyThatBranch(t *testing.T) {
	repo := setupRepo(t)

	if err := ApplyCommit(repo, "id1"); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
	table, err := Load(repo)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := table.Create("feature", table.Head); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := table.Save(repo); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := SetActive(repo, "feature"); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	if err := ApplyCommit(repo, "id2"); err != nil {
		t.Fatalf("feature commit failed: %v", err)
	}

	table, err = Load(repo)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.Head != "id2" {
		t.Errorf("HEAD = %q, want id2", table.Head)
	}
	if table.Master != "id1" {
		t.Errorf("master = %q, want unchanged id1", table.Master)
	}
	if got, _ := table.Get("feature"); got != "id2" {
		t.Errorf("feature = %q, want id2", got)
	}
}

func TestCheckoutUpdatesMasterOnlyWhenTargetIsMaster(t *testing.T) {
	repo := setupRepo(t)
	if err := ApplyCommit(repo, "id1"); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
	if err := ApplyCommit(repo, "id2"); err != nil {
		t.Fatalf("second commit failed: %v", err)
	}

	if err := ApplyCheckout(repo, "id1"); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	table, err := Load(repo)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.Head != "id1" {
		t.Errorf("HEAD = %q, want id1", table.Head)
	}
	if table.Master != "id2" {
		t.Errorf("master = %q, want unchanged id2 (checkout target != master)", table.Master)
	}

	if err := ApplyCheckout(repo, "id2"); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	table, err = Load(repo)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.Master != "id2" {
		t.Errorf("master = %q, want id2 since target == master", table.Master)
	}
}

func TestActiveDefaultsToMaster(t *testing.T) {
	repo := setupRepo(t)
	active, err := Active(repo)
	if err != nil {
		t.Fatalf("Active failed: %v", err)
	}
	if active != "master" {
		t.Errorf("Active() = %q, want %q", active, "master")
	}
}

func TestReferencesDoesNotExistBeforeFirstCommit(t *testing.T) {
	repo := setupRepo(t)
	if Exists(repo) {
		t.Errorf("references.txt should not exist before the first commit")
	}
	if _, err := os.Stat(repo.ReferencesFile); err == nil {
		t.Errorf("references.txt file unexpectedly present on disk")
	}
}
