// Package diff implements the three-way set-comparison engine of spec.md
// §4.6: changes-to-be-committed (staging vs the HEAD image), changes-not-
// staged and untracked (working tree vs staging).
//
// Grounded on the teacher's internal/merge/diff.go (its directory-walk
// compare loop) and on sergi/go-diff/diffmatchpatch, which the teacher
// already depends on for line-level diffing; reused here to annotate
// modified files with insertion/deletion counts for `status`.
package diff

import (
	"os"
	"path/filepath"
	"sort"

	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/NahomAnteneh/wit/internal/werr"
)

// Kind classifies one Entry of a comparison result.
type Kind int

const (
	New Kind = iota
	Modified
	Deleted
	Untracked
)

func (k Kind) String() string {
	switch k {
	case New:
		return "new file"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	case Untracked:
		return "untracked"
	default:
		return "unknown"
	}
}

// Entry is one path classified by Kind, relative to the pair of trees being
// compared.
type Entry struct {
	Path string
	Kind Kind
}

// SetDiff is the raw result of comparing two directory trees: paths present
// only on the left, only on the right, and present on both with different
// content.
type SetDiff struct {
	OnlyLeft  []string
	OnlyRight []string
	Modified  []string
}

// Empty reports whether the comparison found no differences at all.
func (s *SetDiff) Empty() bool {
	return len(s.OnlyLeft) == 0 && len(s.OnlyRight) == 0 && len(s.Modified) == 0
}

// CompareTrees walks left and right and classifies every relative path
// found under either one. skipName, if non-empty, is a directory name
// excluded from both trees wherever it occurs below the root, at any depth
// (used to keep the repository's own
// metadata directory out of working-tree comparisons, per spec.md §4.6:
// "ignoring the .wit directory where applicable").
func CompareTrees(left, right, skipName string) (*SetDiff, error) {
	leftFiles, err := listFiles(left, skipName)
	if err != nil {
		return nil, err
	}
	rightFiles, err := listFiles(right, skipName)
	if err != nil {
		return nil, err
	}

	out := &SetDiff{}
	for rel := range leftFiles {
		if _, ok := rightFiles[rel]; !ok {
			out.OnlyLeft = append(out.OnlyLeft, rel)
		}
	}
	for rel := range rightFiles {
		if _, ok := leftFiles[rel]; !ok {
			out.OnlyRight = append(out.OnlyRight, rel)
		}
	}
	for rel, leftPath := range leftFiles {
		rightPath, ok := rightFiles[rel]
		if !ok {
			continue
		}
		same, err := contentEqual(leftPath, rightPath)
		if err != nil {
			return nil, err
		}
		if !same {
			out.Modified = append(out.Modified, rel)
		}
	}

	sort.Strings(out.OnlyLeft)
	sort.Strings(out.OnlyRight)
	sort.Strings(out.Modified)
	return out, nil
}

// ToBeCommitted computes spec.md §4.6's "Changes-to-be-committed": entries
// new to staging, plus entries staging modifies relative to the HEAD image.
func ToBeCommitted(stagingDir, headImageDir string) ([]Entry, error) {
	d, err := CompareTrees(stagingDir, headImageDir, "")
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, p := range d.OnlyLeft {
		entries = append(entries, Entry{Path: p, Kind: New})
	}
	for _, p := range d.Modified {
		entries = append(entries, Entry{Path: p, Kind: Modified})
	}
	sortEntries(entries)
	return entries, nil
}

// WorkingTreeStatus computes spec.md §4.6's "Changes-not-staged" (modified
// and deleted, relative to staging) and "Untracked" (present only in the
// working tree), both derived from the same working-tree/staging
// comparison, ignoring the repository's metadata directory.
func WorkingTreeStatus(workingDir, stagingDir, metaDirName string) (notStaged []Entry, untracked []string, err error) {
	d, err := CompareTrees(workingDir, stagingDir, metaDirName)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range d.Modified {
		notStaged = append(notStaged, Entry{Path: p, Kind: Modified})
	}
	for _, p := range d.OnlyRight {
		notStaged = append(notStaged, Entry{Path: p, Kind: Deleted})
	}
	sortEntries(notStaged)

	untracked = append(untracked, d.OnlyLeft...)
	sort.Strings(untracked)
	return notStaged, untracked, nil
}

// LineDelta summarizes a line-level diff between two files' content, used
// by `status` to annotate a modified file (e.g. "+3 -1").
type LineDelta struct {
	Insertions int
	Deletions  int
}

// FileLineDelta diffs the content of pathA against pathB line-by-line via
// diffmatchpatch, which the teacher already pulls in for the same purpose.
func FileLineDelta(pathA, pathB string) (LineDelta, error) {
	a, err := os.ReadFile(pathA)
	if err != nil {
		return LineDelta{}, werr.New(werr.IOFailure, "failed to read "+pathA, err)
	}
	b, err := os.ReadFile(pathB)
	if err != nil {
		return LineDelta{}, werr.New(werr.IOFailure, "failed to read "+pathB, err)
	}

	differ := dmp.New()
	wSrc, wDst, lines := differ.DiffLinesToChars(string(a), string(b))
	diffs := differ.DiffMain(wSrc, wDst, false)
	diffs = differ.DiffCharsToLines(diffs, lines)

	var delta LineDelta
	for _, d := range diffs {
		switch d.Type {
		case dmp.DiffInsert:
			delta.Insertions += lineCount(d.Text)
		case dmp.DiffDelete:
			delta.Deletions += lineCount(d.Text)
		}
	}
	return delta, nil
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	if s[len(s)-1] != '\n' {
		n++
	}
	return n
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
}

func listFiles(root, skipName string) (map[string]string, error) {
	files := make(map[string]string)
	if _, err := os.Stat(root); err != nil {
		return files, nil
	}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return werr.New(werr.IOFailure, "failed to walk "+path, err)
		}
		if info.IsDir() {
			if skipName != "" && info.Name() == skipName && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return werr.New(werr.IOFailure, "failed to compute relative path for "+path, err)
		}
		files[rel] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func contentEqual(a, b string) (bool, error) {
	infoA, err := os.Stat(a)
	if err != nil {
		return false, werr.New(werr.IOFailure, "failed to stat "+a, err)
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false, werr.New(werr.IOFailure, "failed to stat "+b, err)
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}
	contentA, err := os.ReadFile(a)
	if err != nil {
		return false, werr.New(werr.IOFailure, "failed to read "+a, err)
	}
	contentB, err := os.ReadFile(b)
	if err != nil {
		return false, werr.New(werr.IOFailure, "failed to read "+b, err)
	}
	if len(contentA) != len(contentB) {
		return false, nil
	}
	for i := range contentA {
		if contentA[i] != contentB[i] {
			return false, nil
		}
	}
	return true, nil
}
