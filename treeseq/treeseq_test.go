package treeseq_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/coaltract/interval"
	"github.com/grailbio/coaltract/treeseq"
	"github.com/grailbio/coaltract/treeseq/treeseqtest"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestTrees(t *testing.T) {
	ts := treeseqtest.ThreePopulation(t)
	type treeInfo struct {
		iv        interval.Tract
		mrca01    int
		root      int
		tmrca02   float64
		parentOf0 int
	}
	var got []treeInfo
	it := ts.Trees()
	for it.Scan() {
		tr := it.Tree()
		expect.EQ(t, tr.Index(), len(got))
		got = append(got, treeInfo{tr.Interval(), tr.MRCA(0, 1), tr.Root(), tr.TMRCA(0, 2), tr.Parent(0)})
	}
	assert.NoError(t, it.Err())
	expect.False(t, it.Scan())
	expect.EQ(t, got, []treeInfo{
		{interval.Tract{Left: 0, Right: 40}, 3, 5, 50, 3},
		{interval.Tract{Left: 40, Right: 70}, 4, 5, 50, 4},
		{interval.Tract{Left: 70, Right: 100}, 6, 6, 50, 5},
	})
	expect.EQ(t, ts.NumTrees(), 3)
}

func TestTreeQueries(t *testing.T) {
	ts := treeseqtest.ThreePopulation(t)
	tr := ts.At(50)
	assert.NotNil(t, tr)
	expect.EQ(t, tr.Interval(), interval.Tract{Left: 40, Right: 70})
	expect.EQ(t, tr.MRCA(0, 0), 0)
	expect.EQ(t, tr.MRCA(0, 4), 4)
	expect.EQ(t, tr.TMRCA(0, 1), 20.0)
	expect.EQ(t, tr.Population(tr.MRCA(0, 1)), 1)
	expect.EQ(t, tr.NumRoots(), 1)
	// Node 6 is not in this tree.
	expect.EQ(t, tr.MRCA(0, 6), treeseq.NullNode)
	expect.True(t, math.IsNaN(tr.TMRCA(0, 6)))
	expect.EQ(t, tr.String(), "tree#1[40,70)")

	expect.True(t, ts.At(100) == nil)
	expect.True(t, ts.At(-1) == nil)
	expect.EQ(t, ts.At(0).Index(), 0)
	expect.EQ(t, ts.At(99.9).Index(), 2)
}

func TestSweep(t *testing.T) {
	ts := treeseqtest.ThreePopulation(t)
	positions := []float64{75, 10, 40, 39.5, 200, 69}
	idx := make([]int, len(positions))
	for i := range idx {
		idx[i] = -1
	}
	ts.Sweep(positions, func(i int, tr *treeseq.Tree) {
		idx[i] = tr.Index()
	})
	expect.EQ(t, idx, []int{2, 0, 1, 0, -1, 1})
}

func TestMultipleRoots(t *testing.T) {
	tables := treeseqtest.ThreePopulationTables()
	// Drop the edges above node 5 and 3 so the samples never fully coalesce.
	var edges []treeseq.Edge
	for _, e := range tables.Edges {
		if e.Parent == 6 || e.Child == 3 || e.Child == 4 {
			continue
		}
		edges = append(edges, e)
	}
	tables.Edges = edges
	ts, err := treeseq.New(tables)
	assert.NoError(t, err)
	tr := ts.At(10)
	expect.EQ(t, tr.NumRoots(), 2)
	expect.EQ(t, tr.Root(), treeseq.NullNode)
	expect.EQ(t, tr.MRCA(0, 2), treeseq.NullNode)
}

func TestNoEdges(t *testing.T) {
	ts, err := treeseq.New(treeseq.Tables{
		Nodes:          []treeseq.Node{{ID: 0, IsSample: 1, Population: treeseq.NullNode, Individual: treeseq.NullNode}},
		SequenceLength: 5,
	})
	assert.NoError(t, err)
	expect.EQ(t, ts.NumTrees(), 1)
	expect.EQ(t, ts.At(1).Root(), 0)

	empty, err := treeseq.New(treeseq.Tables{})
	assert.NoError(t, err)
	expect.EQ(t, empty.NumTrees(), 0)
}

func TestAccessors(t *testing.T) {
	ts := treeseqtest.ThreePopulation(t)
	expect.EQ(t, ts.SequenceLength(), 100.0)
	expect.EQ(t, ts.NumNodes(), 7)
	expect.EQ(t, ts.Samples(), []int{0, 1, 2})
	expect.EQ(t, ts.SamplesOf(1), []int{1})
	expect.EQ(t, ts.SitePositions(), []float64{5, 25, 45, 65, 85})
	expect.EQ(t, len(ts.Migrations()), 3)
	expect.EQ(t, len(ts.Mutations()), 5)
	expect.EQ(t, ts.Node(5).Time, 50.0)

	d := treeseqtest.Diploid(t)
	expect.EQ(t, d.Individuals(), []treeseq.Individual{
		{ID: 0, Population: 1, Nodes: []int{0, 1}},
		{ID: 1, Population: 1, Nodes: []int{2, 3}},
		{ID: 2, Population: 0, Nodes: []int{4, 5}},
	})
}

func TestInferSequenceLength(t *testing.T) {
	tables := treeseqtest.ThreePopulationTables()
	tables.SequenceLength = 0
	ts, err := treeseq.New(tables)
	assert.NoError(t, err)
	expect.EQ(t, ts.SequenceLength(), 100.0)

	// Migrations extend the inferred length; sites do not.
	tables = treeseqtest.ThreePopulationTables()
	tables.SequenceLength = 0
	tables.Migrations = append(tables.Migrations, treeseq.Migration{Left: 90, Right: 120, Node: 0, Source: 1, Dest: 0, Time: 5})
	ts, err = treeseq.New(tables)
	assert.NoError(t, err)
	expect.EQ(t, ts.SequenceLength(), 120.0)

	sitesOnly := treeseq.Tables{
		Populations: []treeseq.Population{{ID: 0, Name: "A"}},
		Nodes:       []treeseq.Node{{ID: 0, IsSample: 1, Population: 0, Individual: treeseq.NullNode}},
		Sites:       []treeseq.Site{{ID: 0, Position: 5, AncestralState: "A"}},
	}
	_, err = treeseq.New(sitesOnly)
	expect.True(t, errors.Is(errors.Invalid, err), "err: %v", err)
	sitesOnly.SequenceLength = 10
	ts, err = treeseq.New(sitesOnly)
	assert.NoError(t, err)
	expect.EQ(t, ts.SequenceLength(), 10.0)
}

func TestValidate(t *testing.T) {
	for _, tt := range []struct {
		name   string
		modify func(*treeseq.Tables)
	}{
		{"nodeid", func(tb *treeseq.Tables) { tb.Nodes[2].ID = 7 }},
		{"nodepop", func(tb *treeseq.Tables) { tb.Nodes[2].Population = 3 }},
		{"edgeinterval", func(tb *treeseq.Tables) { tb.Edges[0].Right = 0 }},
		{"edgelength", func(tb *treeseq.Tables) { tb.Edges[3].Right = 101 }},
		{"edgenode", func(tb *treeseq.Tables) { tb.Edges[0].Parent = 99 }},
		{"edgetime", func(tb *treeseq.Tables) { tb.Edges[2].Parent, tb.Edges[2].Child = 3, 5 }},
		{"overlap", func(tb *treeseq.Tables) {
			tb.Edges = append(tb.Edges, treeseq.Edge{Left: 30, Right: 50, Parent: 6, Child: 0})
		}},
		{"migrationpop", func(tb *treeseq.Tables) { tb.Migrations[0].Dest = 5 }},
		{"migrationnode", func(tb *treeseq.Tables) { tb.Migrations[0].Node = -1 }},
		{"siteorder", func(tb *treeseq.Tables) { tb.Sites[1].Position = 1 }},
		{"sitepos", func(tb *treeseq.Tables) { tb.Sites[4].Position = 100 }},
		{"mutationsite", func(tb *treeseq.Tables) { tb.Mutations[0].Site = 9 }},
		{"popid", func(tb *treeseq.Tables) { tb.Populations[1].ID = 0 }},
		{"popname", func(tb *treeseq.Tables) { tb.Populations[1].Name = "A" }},
	} {
		t.Run(tt.name, func(t *testing.T) {
			tables := treeseqtest.ThreePopulationTables()
			tt.modify(&tables)
			_, err := treeseq.New(tables)
			expect.True(t, errors.Is(errors.Invalid, err), "err: %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()
	treeseqtest.WriteDir(t, tempDir, treeseqtest.ThreePopulationTables())

	ts, err := treeseq.Load(ctx, tempDir, treeseq.LoadOpts{})
	assert.NoError(t, err)
	expect.EQ(t, ts.SequenceLength(), 100.0)
	expect.EQ(t, ts.NumTrees(), 3)
	expect.EQ(t, ts.Populations().Names(), []string{"A", "B", "C"})
	expect.EQ(t, ts.Migrations(), treeseqtest.ThreePopulationTables().Migrations)
	expect.EQ(t, ts.Sites(), treeseqtest.ThreePopulationTables().Sites)
	expect.EQ(t, ts.Checksum(), treeseqtest.ThreePopulation(t).Checksum())

	ts, err = treeseq.Load(ctx, tempDir, treeseq.LoadOpts{SequenceLength: 150})
	assert.NoError(t, err)
	expect.EQ(t, ts.NumTrees(), 4)

	// Optional tables may be missing.
	for _, name := range []string{treeseq.MigrationsFile, treeseq.SitesFile, treeseq.MutationsFile} {
		assert.NoError(t, os.Remove(filepath.Join(tempDir, name)))
	}
	ts, err = treeseq.Load(ctx, tempDir, treeseq.LoadOpts{})
	assert.NoError(t, err)
	expect.EQ(t, len(ts.Migrations()), 0)

	assert.NoError(t, os.Remove(filepath.Join(tempDir, treeseq.EdgesFile)))
	_, err = treeseq.Load(ctx, tempDir, treeseq.LoadOpts{})
	expect.True(t, errors.Is(errors.NotExist, err), "err: %v", err)
}

func TestChecksum(t *testing.T) {
	base := treeseqtest.ThreePopulation(t).Checksum()
	expect.EQ(t, treeseqtest.ThreePopulation(t).Checksum(), base)

	mutate := []func(*treeseq.Tables){
		func(t *treeseq.Tables) { t.Edges[0].Right = 39 },
		func(t *treeseq.Tables) { t.Nodes[3].Time = 11 },
		func(t *treeseq.Tables) { t.Populations[2].Description = "" },
		func(t *treeseq.Tables) { t.Migrations = t.Migrations[:2] },
		func(t *treeseq.Tables) { t.Mutations[1].DerivedState = "T" },
		func(t *treeseq.Tables) { t.SequenceLength = 150 },
	}
	for i, fn := range mutate {
		tables := treeseqtest.ThreePopulationTables()
		fn(&tables)
		ts, err := treeseq.New(tables)
		assert.NoError(t, err)
		expect.NEQ(t, ts.Checksum(), base, "mutation %d", i)
	}
}
