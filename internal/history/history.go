// Package history implements spec.md §4.8: chain traversal for the graph
// renderer, and the merge planner (common-ancestor intersection, branch-side
// changes set, last-write-wins overlay, two-parent commit).
//
// Grounded on the teacher's internal/merge package (the ancestor-walk used
// by its merge-base search) generalized to the spec's "no conflict
// detection, last-write-wins" contract, and on cmd/log.go's parent-chain
// walk for the cycle-safe traversal.
package history

import (
	"fmt"
	"time"

	"github.com/NahomAnteneh/wit/core"
	"github.com/NahomAnteneh/wit/internal/commitengine"
	"github.com/NahomAnteneh/wit/internal/refs"
	"github.com/NahomAnteneh/wit/internal/werr"
)

// Edge is one parent→child relationship discovered during traversal, in the
// child→[parents] direction spec.md §4.8 describes.
type Edge struct {
	Child   string
	Parents []string
}

// Graph is the lazily-built id→parents mapping, plus the named refs seeded
// in as additional roots for rendering (spec.md §4.8 "graph assembly").
type Graph struct {
	Edges []Edge
	Refs  map[string]string // label (e.g. "HEAD", "master", branch name) -> commit id
}

// Walk builds the child→[parents] mapping reachable from start, visiting
// each commit at most once (spec.md §4.8 "cycle defence: maintain a visited
// set").
func Walk(repo *core.Repository, start string) ([]Edge, error) {
	var edges []Edge
	visited := make(map[string]bool)
	var visit func(id string) error
	visit = func(id string) error {
		if id == "" || id == "None" || visited[id] {
			return nil
		}
		visited[id] = true

		meta, err := commitengine.ReadMetadata(repo, id)
		if err != nil {
			return err
		}
		parents := meta.Parents()
		edges = append(edges, Edge{Child: id, Parents: parents})
		for _, p := range parents {
			if err := visit(p); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(start); err != nil {
		return nil, err
	}
	return edges, nil
}

// Ancestors returns the set of ids reachable from start, start included
// (used both by the merge planner's common-ancestor computation and by
// Walk's visited-set invariant, spec.md §8 "history traversal from any
// commit terminates").
func Ancestors(repo *core.Repository, start string) (map[string]bool, error) {
	edges, err := Walk(repo, start)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(edges))
	for _, e := range edges {
		set[e.Child] = true
	}
	return set, nil
}

// BuildGraph assembles the render-ready graph: the commit DAG reachable
// from HEAD, plus Head/master/branch edges. When all is false, only HEAD
// and master-if-aligned-with-HEAD are seeded, per spec.md §4.8's "filtered
// to just master-aligned-with-HEAD unless show all is requested".
func BuildGraph(repo *core.Repository, all bool) (*Graph, error) {
	t, err := refs.Load(repo)
	if err != nil {
		return nil, err
	}

	roots := map[string]string{"HEAD": t.Head}
	if all {
		for name, id := range t.Branches() {
			roots[name] = id
		}
	} else if t.Master == t.Head {
		roots["master"] = t.Master
	}

	seen := make(map[string]bool)
	var edges []Edge
	for _, id := range roots {
		if seen[id] {
			continue
		}
		more, err := Walk(repo, id)
		if err != nil {
			return nil, err
		}
		for _, e := range more {
			if !seen[e.Child] {
				seen[e.Child] = true
				edges = append(edges, e)
			}
		}
	}

	return &Graph{Edges: edges, Refs: roots}, nil
}

// Merge performs spec.md §4.8's merge planner: it computes the branch-side
// changes set and overlays each id's image onto staging, last-write-wins,
// then hands off to commitengine.Commit with a two-parent record. The
// caller supplies now so the commit timestamp is reproducible in tests.
func Merge(repo *core.Repository, branchName string, now time.Time) (string, error) {
	t, err := refs.Load(repo)
	if err != nil {
		return "", err
	}

	branchTip, ok := t.Get(branchName)
	if !ok {
		return "", werr.New(werr.BranchNotFound, "branch not found: "+branchName, nil)
	}
	if branchTip == t.Head {
		return "", werr.New(werr.NothingToMerge, "already up to date with "+branchName, nil)
	}

	branchAncestors, err := Ancestors(repo, branchTip)
	if err != nil {
		return "", err
	}
	headAncestors, err := Ancestors(repo, t.Head)
	if err != nil {
		return "", err
	}

	changes := changesSet(branchAncestors, headAncestors)

	for _, id := range changes {
		if err := core.OverlayCopy(repo.ImageDir(id), repo.StagingDir); err != nil {
			return "", err
		}
	}

	message := fmt.Sprintf("merge %q", branchName)
	return commitengine.Commit(repo, message, branchTip, now)
}

// changesSet computes branchAncestors ∖ (branchAncestors ∩ headAncestors),
// i.e. branchAncestors ∖ headAncestors. The result is in Go map iteration
// order, which is not deterministic, so when several ids in the set carry
// the same file, which version the merge overlay keeps can differ from run
// to run.
func changesSet(branchAncestors, headAncestors map[string]bool) []string {
	var out []string
	for id := range branchAncestors {
		if !headAncestors[id] {
			out = append(out, id)
		}
	}
	return out
}
