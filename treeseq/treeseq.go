package treeseq

import (
	"sort"

	"github.com/grailbio/base/log"
)

// TreeSequence is an immutable, validated tree sequence.  It is safe for
// concurrent use; the trees it yields are not.
type TreeSequence struct {
	tables  Tables
	seqLen  float64
	pops    *PopulationTable
	samples []int
	indivs  []Individual
	// insertion orders edges by (left, parent time); removal orders them by
	// (right, -parent time).  Both index into tables.Edges.
	insertion []int
	removal   []int
}

// Individual groups the sample nodes of one (possibly polyploid) individual.
type Individual struct {
	ID         int
	Population int
	// Nodes are in increasing node id order, i.e. haplotype order.
	Nodes []int
}

// New validates the tables and builds a TreeSequence.  The tables are owned
// by the TreeSequence afterwards.
func New(tables Tables) (*TreeSequence, error) {
	if tables.SequenceLength == 0 {
		tables.SequenceLength = tables.inferSequenceLength()
	}
	if err := tables.validate(); err != nil {
		return nil, err
	}
	names := make([]string, len(tables.Populations))
	for i, p := range tables.Populations {
		names[i] = p.Name
	}
	pops, err := NewPopulationTable(names)
	if err != nil {
		return nil, err
	}
	ts := &TreeSequence{
		tables: tables,
		seqLen: tables.SequenceLength,
		pops:   pops,
	}
	ts.indexEdges()
	ts.indexSamples()
	log.Debug.Printf("treeseq: %d nodes, %d edges, %d populations, %d samples, length %v",
		len(tables.Nodes), len(tables.Edges), len(tables.Populations), len(ts.samples), ts.seqLen)
	return ts, nil
}

func (ts *TreeSequence) indexEdges() {
	edges := ts.tables.Edges
	nodes := ts.tables.Nodes
	ts.insertion = make([]int, len(edges))
	ts.removal = make([]int, len(edges))
	for i := range edges {
		ts.insertion[i] = i
		ts.removal[i] = i
	}
	sort.SliceStable(ts.insertion, func(i, j int) bool {
		a, b := edges[ts.insertion[i]], edges[ts.insertion[j]]
		if a.Left != b.Left {
			return a.Left < b.Left
		}
		return nodes[a.Parent].Time < nodes[b.Parent].Time
	})
	sort.SliceStable(ts.removal, func(i, j int) bool {
		a, b := edges[ts.removal[i]], edges[ts.removal[j]]
		if a.Right != b.Right {
			return a.Right < b.Right
		}
		return nodes[a.Parent].Time > nodes[b.Parent].Time
	})
}

func (ts *TreeSequence) indexSamples() {
	byIndiv := map[int]int{}
	for _, n := range ts.tables.Nodes {
		if !n.Sample() {
			continue
		}
		ts.samples = append(ts.samples, n.ID)
		if n.Individual == NullNode {
			continue
		}
		idx, ok := byIndiv[n.Individual]
		if !ok {
			idx = len(ts.indivs)
			byIndiv[n.Individual] = idx
			ts.indivs = append(ts.indivs, Individual{ID: n.Individual, Population: n.Population})
		}
		ts.indivs[idx].Nodes = append(ts.indivs[idx].Nodes, n.ID)
	}
}

// SequenceLength returns the genome length L; trees cover [0, L).
func (ts *TreeSequence) SequenceLength() float64 { return ts.seqLen }

// Populations returns the population name table.
func (ts *TreeSequence) Populations() *PopulationTable { return ts.pops }

// NumNodes returns the number of nodes.
func (ts *TreeSequence) NumNodes() int { return len(ts.tables.Nodes) }

// Node returns node id.
func (ts *TreeSequence) Node(id int) Node { return ts.tables.Nodes[id] }

// Edges returns the edge table.  The caller must not modify it.
func (ts *TreeSequence) Edges() []Edge { return ts.tables.Edges }

// Migrations returns the migration records.  The caller must not modify them.
func (ts *TreeSequence) Migrations() []Migration { return ts.tables.Migrations }

// Sites returns the site table.  The caller must not modify it.
func (ts *TreeSequence) Sites() []Site { return ts.tables.Sites }

// Mutations returns the mutation table.  The caller must not modify it.
func (ts *TreeSequence) Mutations() []Mutation { return ts.tables.Mutations }

// SitePositions returns the positions of all sites, in increasing order.
func (ts *TreeSequence) SitePositions() []float64 {
	pos := make([]float64, len(ts.tables.Sites))
	for i, s := range ts.tables.Sites {
		pos[i] = s.Position
	}
	return pos
}

// Samples returns the sample node ids in increasing order.
func (ts *TreeSequence) Samples() []int { return ts.samples }

// SamplesOf returns the sample node ids of population pop.
func (ts *TreeSequence) SamplesOf(pop int) []int {
	var s []int
	for _, id := range ts.samples {
		if ts.tables.Nodes[id].Population == pop {
			s = append(s, id)
		}
	}
	return s
}

// Individuals returns the individuals owning sample nodes, in order of their
// first node.
func (ts *TreeSequence) Individuals() []Individual { return ts.indivs }

// Trees returns an iterator over the local trees, left to right.
func (ts *TreeSequence) Trees() *TreeIterator {
	it := &TreeIterator{ts: ts}
	it.tree.init(ts)
	return it
}

// NumTrees counts the local trees.
func (ts *TreeSequence) NumTrees() int {
	n := 0
	for it := ts.Trees(); it.Scan(); {
		n++
	}
	return n
}

// At returns a copy of the local tree covering pos, or nil if pos is outside
// [0, L).
func (ts *TreeSequence) At(pos float64) *Tree {
	var found *Tree
	ts.Sweep([]float64{pos}, func(_ int, t *Tree) {
		found = t.Copy()
	})
	return found
}

// Sweep calls fn(i, tree) for every position positions[i] in [0, L), with
// the local tree covering it.  The positions may be in any order; they are
// visited in increasing position order in a single pass over the trees.  The
// tree passed to fn is only valid during the call.
func (ts *TreeSequence) Sweep(positions []float64, fn func(i int, t *Tree)) {
	order := make([]int, len(positions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return positions[order[a]] < positions[order[b]] })
	k := 0
	for k < len(order) && positions[order[k]] < 0 {
		k++
	}
	it := ts.Trees()
	for k < len(order) && it.Scan() {
		t := it.Tree()
		for k < len(order) && positions[order[k]] < t.Right() {
			fn(order[k], t)
			k++
		}
	}
}
