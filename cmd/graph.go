package cmd

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/NahomAnteneh/wit/core"
	"github.com/NahomAnteneh/wit/internal/history"
)

var graphAll bool

// GraphHandler renders the commit DAG reachable from HEAD (plus every
// branch tip with --all), per spec.md §4.8's "graph assembly for
// rendering". The actual dot/graphviz emission is the out-of-scope
// external renderer (spec.md §1); this prints the edge list it would
// consume.
func GraphHandler(repo *core.Repository, args []string) error {
	g, err := history.BuildGraph(repo, graphAll)
	if err != nil {
		return err
	}

	for label, id := range g.Refs {
		fmt.Printf("%s -> %s\n", color.CyanString(label), id[:7])
	}
	for _, e := range g.Edges {
		for _, p := range e.Parents {
			fmt.Printf("%s -> %s\n", e.Child[:7], p[:7])
		}
	}
	return nil
}

func init() {
	graphCmd := NewRepoCommand(
		"graph",
		"Print the commit graph reachable from HEAD",
		GraphHandler,
	)
	graphCmd.Flags().BoolVar(&graphAll, "all", false, "include every branch tip, not just HEAD/master")
	rootCmd.AddCommand(graphCmd)
}
