package commitengine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NahomAnteneh/wit/core"
	"github.com/NahomAnteneh/wit/internal/werr"
)

func setupRepo(t *testing.T) *core.Repository {
	t.Helper()
	repo, err := core.Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return repo
}

func TestGenerateIDShape(t *testing.T) {
	id, err := GenerateID()
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if len(id) != idLength {
		t.Errorf("len(id) = %d, want %d", len(id), idLength)
	}
	for _, r := range id {
		if !((r >= 'a' && r <= 'f') || (r >= '0' && r <= '9')) {
			t.Errorf("id %q contains out-of-alphabet character %q", id, r)
			break
		}
	}
}

func TestFirstCommitSkipsNoChangesGuard(t *testing.T) {
	repo := setupRepo(t)

	id, err := Commit(repo, "first", "", time.Now())
	if err != nil {
		t.Fatalf("first commit on empty staging should succeed, got: %v", err)
	}

	equal, err := core.TreesEqual(repo.StagingDir, repo.ImageDir(id))
	if err != nil {
		t.Fatalf("TreesEqual failed: %v", err)
	}
	if !equal {
		t.Errorf("staging and new image should be tree-equal immediately after commit")
	}

	meta, err := ReadMetadata(repo, id)
	if err != nil {
		t.Fatalf("ReadMetadata failed: %v", err)
	}
	if meta.Parent != "None" {
		t.Errorf("parent = %q, want %q for a root commit", meta.Parent, "None")
	}
}

func TestCommitWithoutChangesFails(t *testing.T) {
	repo := setupRepo(t)

	if err := os.WriteFile(filepath.Join(repo.StagingDir, "a.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Commit(repo, "first", "", time.Now()); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}

	if _, err := Commit(repo, "second", "", time.Now()); !werr.Is(err, werr.NoChanges) {
		t.Errorf("expected NoChanges committing with an unchanged staging area, got %v", err)
	}
}

func TestSecondCommitRecordsParent(t *testing.T) {
	repo := setupRepo(t)

	id1, err := Commit(repo, "first", "", time.Now())
	if err != nil {
		t.Fatalf("first commit failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(repo.StagingDir, "a.txt"), []byte("second"), 0644); err != nil {
		t.Fatal(err)
	}
	id2, err := Commit(repo, "second", "", time.Now())
	if err != nil {
		t.Fatalf("second commit failed: %v", err)
	}

	meta, err := ReadMetadata(repo, id2)
	if err != nil {
		t.Fatalf("ReadMetadata failed: %v", err)
	}
	if meta.Parent != id1 {
		t.Errorf("parent = %q, want %q", meta.Parent, id1)
	}
}

func TestMergeCommitRecordsTwoParents(t *testing.T) {
	repo := setupRepo(t)

	id1, err := Commit(repo, "first", "", time.Now())
	if err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(repo.StagingDir, "a.txt"), []byte("second"), 0644); err != nil {
		t.Fatal(err)
	}
	id2, err := Commit(repo, "on a branch", "", time.Now())
	if err != nil {
		t.Fatalf("second commit failed: %v", err)
	}

	merged, err := Commit(repo, `merge "feature"`, id1, time.Now())
	if err != nil {
		t.Fatalf("merge commit failed: %v", err)
	}

	meta, err := ReadMetadata(repo, merged)
	if err != nil {
		t.Fatalf("ReadMetadata failed: %v", err)
	}
	want := id2 + "," + id1
	if meta.Parent != want {
		t.Errorf("parent = %q, want %q", meta.Parent, want)
	}
	if len(meta.Parents()) != 2 {
		t.Errorf("Parents() = %v, want 2 entries", meta.Parents())
	}
}

func TestFormatDateLayout(t *testing.T) {
	ts := time.Date(2026, time.March, 5, 9, 30, 0, 0, time.FixedZone("UTC+2", 2*60*60))
	got := FormatDate(ts)
	want := "Thu Mar 05 09:30:00 2026 +0200"
	if got != want {
		t.Errorf("FormatDate = %q, want %q", got, want)
	}
}
