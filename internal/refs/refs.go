// Package refs manages the reference table (references.txt) and the
// active-branch file (activated.txt) described in spec.md §3/§4.5.
//
// Grounded on the teacher's branch bookkeeping in cmd/branch.go
// (CreateBranch, deleteBranchOp) and the "rewrite the whole ref" discipline
// implied by its repo.WriteRef call sites, generalized from one-file-per-ref
// to the single ordered references.txt table this spec requires.
package refs

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/NahomAnteneh/wit/core"
	"github.com/NahomAnteneh/wit/internal/werr"
)

// Table is the in-memory form of references.txt: HEAD, master, and every
// user-defined branch, in the order they were first seen (spec.md §6:
// "HEAD first, master second, branches thereafter").
type Table struct {
	Head    string
	Master  string
	order   []string          // branch names in file order, excluding HEAD/master
	entries map[string]string // branch name -> commit id, excluding HEAD/master
}

func newTable() *Table {
	return &Table{entries: make(map[string]string)}
}

// Exists reports whether references.txt has been created yet (spec.md §3
// invariant 1: it does not exist before the first commit).
func Exists(repo *core.Repository) bool {
	return core.FileExists(repo.ReferencesFile)
}

// Load reads references.txt. If the file does not exist, it returns
// ReferencesMissing — callers that can tolerate "no commits yet" should
// check Exists first.
func Load(repo *core.Repository) (*Table, error) {
	if !Exists(repo) {
		return nil, werr.New(werr.ReferencesMissing, "references.txt does not exist", nil)
	}

	f, err := os.Open(repo.ReferencesFile)
	if err != nil {
		return nil, werr.New(werr.IOFailure, "failed to open references.txt", err)
	}
	defer f.Close()

	t := newTable()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") || strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case "HEAD":
			t.Head = value
		case "master":
			t.Master = value
		default:
			if _, seen := t.entries[key]; !seen {
				t.order = append(t.order, key)
			}
			t.entries[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, werr.New(werr.IOFailure, "failed to read references.txt", err)
	}
	return t, nil
}

// Save rewrites references.txt as a whole, via a temp-file-then-rename, to
// avoid torn writes (spec.md §9 "Whole-file rewrite as pseudo-transaction").
func (t *Table) Save(repo *core.Repository) error {
	var b strings.Builder
	fmt.Fprintf(&b, "HEAD=%s\n", t.Head)
	fmt.Fprintf(&b, "master=%s\n", t.Master)
	for _, name := range t.order {
		fmt.Fprintf(&b, "%s=%s\n", name, t.entries[name])
	}

	tmp := repo.ReferencesFile + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0644); err != nil {
		return werr.New(werr.IOFailure, "failed to write temporary references file", err)
	}
	if err := os.Rename(tmp, repo.ReferencesFile); err != nil {
		return werr.New(werr.IOFailure, "failed to replace references.txt", err)
	}
	return nil
}

// Branches returns every branch including master, keyed by name (spec.md
// §9 open question 5: this is the "including master" accessor).
func (t *Table) Branches() map[string]string {
	out := make(map[string]string, len(t.entries)+1)
	for name, id := range t.entries {
		out[name] = id
	}
	out["master"] = t.Master
	return out
}

// OtherBranches returns every branch excluding master (spec.md §9 open
// question 5: the "excluding master" accessor, so callers never have to
// remember to pop master themselves).
func (t *Table) OtherBranches() map[string]string {
	out := make(map[string]string, len(t.entries))
	for name, id := range t.entries {
		out[name] = id
	}
	return out
}

// Get resolves a branch name (including "master") to its commit id. The
// second return is false if name is not a known branch.
func (t *Table) Get(name string) (string, bool) {
	if name == "master" {
		return t.Master, true
	}
	id, ok := t.entries[name]
	return id, ok
}

// Create appends a new branch (spec.md §4.5 branch(name)). Fails with
// BranchExists if the name is already a key, matching invariant 4 ("master
// ... never treated as an ordinary branch by the branch-creation
// operation").
func (t *Table) Create(name, commitID string) error {
	if name == "master" {
		return werr.New(werr.BranchExists, "branch 'master' already exists", nil)
	}
	if _, exists := t.entries[name]; exists {
		return werr.New(werr.BranchExists, fmt.Sprintf("branch '%s' already exists", name), nil)
	}
	t.order = append(t.order, name)
	t.entries[name] = commitID
	return nil
}

// Active reads activated.txt, returning the active branch name, or "" for
// a detached HEAD (spec.md §3).
func Active(repo *core.Repository) (string, error) {
	data, err := os.ReadFile(repo.ActivatedFile)
	if err != nil {
		return "", werr.New(werr.IOFailure, "failed to read activated.txt", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetActive overwrites activated.txt. Checkout by branch name sets active
// to that name; checkout by raw commit id sets active to "" (detached),
// per spec.md §4.5.
func SetActive(repo *core.Repository, name string) error {
	if err := os.WriteFile(repo.ActivatedFile, []byte(name+"\n"), 0644); err != nil {
		return werr.New(werr.IOFailure, "failed to write activated.txt", err)
	}
	return nil
}

// ApplyCommit performs the flow=commit reference transition of spec.md
// §4.5: the active branch advances only if it was in sync with HEAD before
// the commit, and master only advances if master is the active branch and
// the previous HEAD was master's tip. Committing on another branch never
// moves master, even when that branch shares master's tip.
func ApplyCommit(repo *core.Repository, newID string) error {
	var t *Table
	if Exists(repo) {
		loaded, err := Load(repo)
		if err != nil {
			return err
		}
		t = loaded
	} else {
		t = newTable()
	}

	active, err := Active(repo)
	if err != nil {
		return err
	}

	prevHead := t.Head
	origMaster := t.Master
	var prevActiveTip string
	var activeTipKnown bool
	if active != "" {
		prevActiveTip, activeTipKnown = t.Get(active)
	}

	if active != "" && activeTipKnown && prevHead == prevActiveTip {
		if active == "master" {
			t.Master = newID
		} else {
			t.entries[active] = newID
		}
	}

	if active == "master" && prevHead == origMaster && origMaster == prevActiveTip {
		t.Master = newID
	}

	t.Head = newID
	return t.Save(repo)
}

// ApplyCheckout performs the flow=checkout reference transition of spec.md
// §4.5: HEAD moves to targetID unconditionally; master only follows along
// if targetID equals the *current* master value (the legacy quirk recorded
// in DESIGN.md open question 2 — preserved as specified, not "fixed").
func ApplyCheckout(repo *core.Repository, targetID string) error {
	t, err := Load(repo)
	if err != nil {
		return err
	}
	if targetID == t.Master {
		t.Master = targetID
	}
	t.Head = targetID
	return t.Save(repo)
}
