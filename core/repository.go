// Package core provides the repository locator, on-disk layout, and the
// filesystem primitives every other package builds on.
package core

import (
	"os"
	"path/filepath"

	"github.com/NahomAnteneh/wit/internal/werr"
)

// WitDirName is the name of the repository metadata directory.
const WitDirName = ".wit"

// Repository is the handle every core operation takes instead of reading
// the current working directory or a process-global logger. It is
// constructed once per command invocation by Locate (or Init).
type Repository struct {
	Root string // directory containing .wit

	WitDir         string // <Root>/.wit
	ImagesDir      string // <Root>/.wit/images
	StagingDir     string // <Root>/.wit/staging_area
	ReferencesFile string // <Root>/.wit/references.txt
	ActivatedFile  string // <Root>/.wit/activated.txt
}

// NewRepository builds a Repository handle rooted at dir. It does not touch
// the filesystem.
func NewRepository(dir string) *Repository {
	witDir := filepath.Join(dir, WitDirName)
	return &Repository{
		Root:           dir,
		WitDir:         witDir,
		ImagesDir:      filepath.Join(witDir, "images"),
		StagingDir:     filepath.Join(witDir, "staging_area"),
		ReferencesFile: filepath.Join(witDir, "references.txt"),
		ActivatedFile:  filepath.Join(witDir, "activated.txt"),
	}
}

// ImageDir returns the path to the snapshot directory for commit id.
func (r *Repository) ImageDir(id string) string {
	return filepath.Join(r.ImagesDir, id)
}

// ImageMetaFile returns the path to the metadata file for commit id.
func (r *Repository) ImageMetaFile(id string) string {
	return filepath.Join(r.ImagesDir, id+".txt")
}

// ImageExists reports whether both the image directory and its metadata
// file exist for id (invariant 2 of spec.md §3).
func (r *Repository) ImageExists(id string) bool {
	return FileExists(r.ImageDir(id)) && FileExists(r.ImageMetaFile(id))
}

// Locate walks from start upward looking for a .wit directory, matching
// spec.md §4.1. It resolves start to an absolute, symlink-evaluated path
// first (original_source/wit.py's find_repo uses os.path.realpath for the
// same reason: a symlinked working directory must not hide an ancestor
// repository, nor be mistaken for one by shape alone).
func Locate(start string) (*Repository, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, werr.New(werr.IOFailure, "failed to resolve starting path", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	dir := abs
	for {
		witDir := filepath.Join(dir, WitDirName)
		if info, err := os.Stat(witDir); err == nil && info.IsDir() {
			return NewRepository(dir), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, werr.New(werr.NotARepository, "not a wit repository (or any parent up to /)", nil)
		}
		dir = parent
	}
}

// Init creates a new repository rooted at dir, matching spec.md §4.2. It is
// idempotent: if the layout already exists, it succeeds silently.
func Init(dir string) (*Repository, error) {
	repo := NewRepository(dir)

	for _, d := range []string{repo.WitDir, repo.ImagesDir, repo.StagingDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, werr.New(werr.IOFailure, "failed to create "+d, err)
		}
	}

	if !FileExists(repo.ActivatedFile) {
		if err := os.WriteFile(repo.ActivatedFile, []byte("master\n"), 0644); err != nil {
			return nil, werr.New(werr.IOFailure, "failed to write activated.txt", err)
		}
	}

	return repo, nil
}
