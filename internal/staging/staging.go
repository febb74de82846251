// Package staging implements the staging manager of spec.md §4.3: add/rm
// operate directly on a mirror directory (staging_area/), not an index of
// hashes, so commit can later snapshot it with a plain recursive copy.
//
// Grounded on the teacher's internal/staging/staging.go (addDirectory's
// recursive filepath.Walk that skips the metadata directory and recurses
// file-by-file for consistency) and core/fs.go's CopyFile, generalized from
// "hash + store as a blob" to "copy as a literal mirror" since spec.md
// explicitly drops content-addressing.
package staging

import (
	"os"
	"path/filepath"

	"github.com/NahomAnteneh/wit/core"
	"github.com/NahomAnteneh/wit/internal/werr"
)

// Add stages each path in paths, in order. Per spec.md §4.3, the first path
// that does not exist on disk stops processing (a later path is never
// reached once one fails).
func Add(repo *core.Repository, paths []string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return werr.New(werr.PathNotFound, "path not found: "+p, err)
		}

		rel, err := relativeToRepoParent(repo, p)
		if err != nil {
			return err
		}
		dst := filepath.Join(repo.StagingDir, rel)

		info, err := os.Stat(p)
		if err != nil {
			return werr.New(werr.IOFailure, "failed to stat "+p, err)
		}

		if info.IsDir() {
			if err := core.MergeDir(p, dst); err != nil {
				return err
			}
		} else {
			if err := core.CopyFile(p, dst); err != nil {
				return err
			}
		}
	}
	return nil
}

// Rm unstages each path in paths, in order. Per spec.md §4.3, the first
// path missing from staging stops processing.
func Rm(repo *core.Repository, paths []string) error {
	for _, p := range paths {
		rel, err := relativeToRepoParent(repo, p)
		if err != nil {
			return err
		}
		target := filepath.Join(repo.StagingDir, rel)

		if !core.FileExists(target) {
			return werr.New(werr.StagingEntryMissing, "not staged: "+p, nil)
		}
		if err := core.RemovePath(target); err != nil {
			return err
		}
	}
	return nil
}

// relativeToRepoParent computes p's path relative to the repository's
// parent directory, matching spec.md §4.3's "relative to the repository's
// parent directory" destination rule. The repository's parent directory is
// repo.Root itself (the directory containing .wit/), not repo.Root's parent
// on disk.
func relativeToRepoParent(repo *core.Repository, p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", werr.New(werr.IOFailure, "failed to resolve "+p, err)
	}
	rel, err := filepath.Rel(repo.Root, abs)
	if err != nil {
		return "", werr.New(werr.IOFailure, "failed to compute relative path for "+p, err)
	}
	return rel, nil
}
