// Package treeseqtest provides small hand-built tree sequences for tests.
package treeseqtest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/coaltract/treeseq"
)

// SequenceLength of the ThreePopulation fixture.
const SequenceLength = 100

// ThreePopulationTables returns the tables of a three-sample tree sequence
// over [0, 100) with populations A (id 0), B (id 1) and C (id 2), one haploid
// sample per population (nodes 0, 1 and 2), and three local trees:
//
//   [0,40):   ((0,1)3 in A, 2)5
//   [40,70):  ((0,1)4 in B, 2)5
//   [70,100): ((0,2)5, 1)6
//
// Node times: 3=10, 4=20, 5=50, 6=60.
func ThreePopulationTables() treeseq.Tables {
	return treeseq.Tables{
		Populations: []treeseq.Population{
			{ID: 0, Name: "A"},
			{ID: 1, Name: "B"},
			{ID: 2, Name: "C", Description: "outgroup"},
		},
		Nodes: []treeseq.Node{
			{ID: 0, IsSample: 1, Time: 0, Population: 0, Individual: 0},
			{ID: 1, IsSample: 1, Time: 0, Population: 1, Individual: 1},
			{ID: 2, IsSample: 1, Time: 0, Population: 2, Individual: 2},
			{ID: 3, Time: 10, Population: 0, Individual: treeseq.NullNode},
			{ID: 4, Time: 20, Population: 1, Individual: treeseq.NullNode},
			{ID: 5, Time: 50, Population: 2, Individual: treeseq.NullNode},
			{ID: 6, Time: 60, Population: 2, Individual: treeseq.NullNode},
		},
		Edges: []treeseq.Edge{
			{Left: 0, Right: 40, Parent: 3, Child: 0},
			{Left: 0, Right: 40, Parent: 3, Child: 1},
			{Left: 0, Right: 40, Parent: 5, Child: 3},
			{Left: 0, Right: 100, Parent: 5, Child: 2},
			{Left: 40, Right: 70, Parent: 4, Child: 0},
			{Left: 40, Right: 70, Parent: 4, Child: 1},
			{Left: 40, Right: 70, Parent: 5, Child: 4},
			{Left: 70, Right: 100, Parent: 5, Child: 0},
			{Left: 70, Right: 100, Parent: 6, Child: 5},
			{Left: 70, Right: 100, Parent: 6, Child: 1},
		},
		Migrations: []treeseq.Migration{
			{Left: 0, Right: 30, Node: 0, Source: 1, Dest: 0, Time: 5},
			{Left: 20, Right: 50, Node: 1, Source: 1, Dest: 0, Time: 5},
			{Left: 60, Right: 80, Node: 0, Source: 2, Dest: 0, Time: 7},
		},
		Sites: []treeseq.Site{
			{ID: 0, Position: 5, AncestralState: "A"},
			{ID: 1, Position: 25, AncestralState: "C"},
			{ID: 2, Position: 45, AncestralState: "G"},
			{ID: 3, Position: 65, AncestralState: "T"},
			{ID: 4, Position: 85, AncestralState: "A"},
		},
		Mutations: []treeseq.Mutation{
			{Site: 0, Node: 0, DerivedState: "T"},
			{Site: 1, Node: 3, DerivedState: "G"},
			{Site: 2, Node: 1, DerivedState: "A"},
			{Site: 3, Node: 2, DerivedState: "C"},
			{Site: 4, Node: 5, DerivedState: "C"},
		},
		SequenceLength: SequenceLength,
	}
}

// ThreePopulation returns the tree sequence built from
// ThreePopulationTables.
func ThreePopulation(t testing.TB) *treeseq.TreeSequence {
	ts, err := treeseq.New(ThreePopulationTables())
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

// Diploid returns a tree sequence with two diploid individuals in population
// "Main" (nodes 0-3) and one in "Ghost" (nodes 4-5), all coalescing into a
// single star tree at node 6 over [0, 10).  Populations are declared in the
// order Ghost, Main so that ids and declaration-order assumptions differ.
func Diploid(t testing.TB) *treeseq.TreeSequence {
	tables := treeseq.Tables{
		Populations: []treeseq.Population{{ID: 0, Name: "Ghost"}, {ID: 1, Name: "Main"}},
		SequenceLength: 10,
	}
	indiv := []int{0, 0, 1, 1, 2, 2}
	pop := []int{1, 1, 1, 1, 0, 0}
	for i := 0; i < 6; i++ {
		tables.Nodes = append(tables.Nodes, treeseq.Node{
			ID: i, IsSample: 1, Population: pop[i], Individual: indiv[i],
		})
		tables.Edges = append(tables.Edges, treeseq.Edge{Left: 0, Right: 10, Parent: 6, Child: i})
	}
	tables.Nodes = append(tables.Nodes, treeseq.Node{ID: 6, Time: 100, Population: 1, Individual: treeseq.NullNode})
	ts, err := treeseq.New(tables)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

// WriteDir writes the tables to dir in the format read by treeseq.Load.
func WriteDir(t testing.TB, dir string, tables treeseq.Tables) {
	write := func(name string, header string, rows []string) {
		data := header + "\n" + strings.Join(rows, "")
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}
	var rows []string
	for _, n := range tables.Nodes {
		rows = append(rows, fmt.Sprintf("%d\t%d\t%v\t%d\t%d\n", n.ID, n.IsSample, n.Time, n.Population, n.Individual))
	}
	write(treeseq.NodesFile, "id\tis_sample\ttime\tpopulation\tindividual", rows)
	rows = nil
	for _, e := range tables.Edges {
		rows = append(rows, fmt.Sprintf("%v\t%v\t%d\t%d\n", e.Left, e.Right, e.Parent, e.Child))
	}
	write(treeseq.EdgesFile, "left\tright\tparent\tchild", rows)
	rows = nil
	for _, p := range tables.Populations {
		rows = append(rows, fmt.Sprintf("%d\t%s\t%s\n", p.ID, p.Name, p.Description))
	}
	write(treeseq.PopulationsFile, "id\tname\tdescription", rows)
	rows = nil
	for _, m := range tables.Migrations {
		rows = append(rows, fmt.Sprintf("%v\t%v\t%d\t%d\t%d\t%v\n", m.Left, m.Right, m.Node, m.Source, m.Dest, m.Time))
	}
	write(treeseq.MigrationsFile, "left\tright\tnode\tsource\tdest\ttime", rows)
	rows = nil
	for _, s := range tables.Sites {
		rows = append(rows, fmt.Sprintf("%d\t%v\t%s\n", s.ID, s.Position, s.AncestralState))
	}
	write(treeseq.SitesFile, "id\tposition\tancestral_state", rows)
	rows = nil
	for _, m := range tables.Mutations {
		rows = append(rows, fmt.Sprintf("%d\t%d\t%s\n", m.Site, m.Node, m.DerivedState))
	}
	write(treeseq.MutationsFile, "site\tnode\tderived_state", rows)
}
