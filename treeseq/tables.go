package treeseq

import (
	"fmt"
	"sort"

	"github.com/grailbio/base/errors"
)

// NullNode is the "no node" value of parent and individual columns, and the
// "no population" value of node population columns.
const NullNode = -1

// Node is a row of the node table.
type Node struct {
	ID         int     `tsv:"id"`
	IsSample   int     `tsv:"is_sample"`
	Time       float64 `tsv:"time"`
	Population int     `tsv:"population"`
	Individual int     `tsv:"individual"`
}

// Sample returns true iff the node is a sample.
func (n Node) Sample() bool { return n.IsSample != 0 }

// Edge is a row of the edge table: Parent is the parent of Child over
// [Left, Right).
type Edge struct {
	Left   float64 `tsv:"left"`
	Right  float64 `tsv:"right"`
	Parent int     `tsv:"parent"`
	Child  int     `tsv:"child"`
}

// Population is a row of the population table.
type Population struct {
	ID          int    `tsv:"id"`
	Name        string `tsv:"name"`
	Description string `tsv:"description"`
}

// Migration records that the lineage of Node over [Left, Right) moved from
// population Source to population Dest at Time (backwards in time, as the
// simulator records it).
type Migration struct {
	Left   float64 `tsv:"left"`
	Right  float64 `tsv:"right"`
	Node   int     `tsv:"node"`
	Source int     `tsv:"source"`
	Dest   int     `tsv:"dest"`
	Time   float64 `tsv:"time"`
}

// Site is a row of the site table.
type Site struct {
	ID             int     `tsv:"id"`
	Position       float64 `tsv:"position"`
	AncestralState string  `tsv:"ancestral_state"`
}

// Mutation is a row of the mutation table.
type Mutation struct {
	Site         int    `tsv:"site"`
	Node         int    `tsv:"node"`
	DerivedState string `tsv:"derived_state"`
}

// Tables is the raw table collection of a tree sequence.
type Tables struct {
	Nodes       []Node
	Edges       []Edge
	Populations []Population
	Migrations  []Migration
	Sites       []Site
	Mutations   []Mutation
	// SequenceLength is the genome length.  Zero means "the largest edge or
	// migration right end".
	SequenceLength float64
}

func invalidf(format string, args ...interface{}) error {
	return errors.E(errors.Invalid, fmt.Sprintf(format, args...))
}

// inferSequenceLength returns the largest right end of any edge or
// migration.  Sites are not considered: a site at the inferred length is out
// of range, and tables whose sites lie past every edge need an explicit
// SequenceLength.
func (t *Tables) inferSequenceLength() float64 {
	var l float64
	for _, e := range t.Edges {
		if e.Right > l {
			l = e.Right
		}
	}
	for _, m := range t.Migrations {
		if m.Right > l {
			l = m.Right
		}
	}
	return l
}

// validate checks the table invariants the tree iterator relies on.
func (t *Tables) validate() error {
	nNode := len(t.Nodes)
	nPop := len(t.Populations)
	for i, p := range t.Populations {
		if p.ID != i {
			return invalidf("population row %d has id %d", i, p.ID)
		}
	}
	for i, n := range t.Nodes {
		if n.ID != i {
			return invalidf("node row %d has id %d", i, n.ID)
		}
		if n.Population < NullNode || n.Population >= nPop {
			return invalidf("node %d: population %d out of range", i, n.Population)
		}
		if n.Individual < NullNode {
			return invalidf("node %d: invalid individual %d", i, n.Individual)
		}
	}
	L := t.SequenceLength
	if L < 0 {
		return invalidf("negative sequence length %v", L)
	}
	for i, e := range t.Edges {
		if !(e.Left >= 0 && e.Left < e.Right && e.Right <= L) {
			return invalidf("edge %d: bad interval [%v,%v) for sequence length %v", i, e.Left, e.Right, L)
		}
		if e.Parent < 0 || e.Parent >= nNode || e.Child < 0 || e.Child >= nNode {
			return invalidf("edge %d: node out of range (parent %d, child %d)", i, e.Parent, e.Child)
		}
		if t.Nodes[e.Parent].Time <= t.Nodes[e.Child].Time {
			return invalidf("edge %d: parent %d is not older than child %d", i, e.Parent, e.Child)
		}
	}
	// A child may have at most one parent at any position.
	byChild := make([]int, len(t.Edges))
	for i := range byChild {
		byChild[i] = i
	}
	sort.Slice(byChild, func(i, j int) bool {
		a, b := t.Edges[byChild[i]], t.Edges[byChild[j]]
		if a.Child != b.Child {
			return a.Child < b.Child
		}
		return a.Left < b.Left
	})
	for i := 1; i < len(byChild); i++ {
		a, b := t.Edges[byChild[i-1]], t.Edges[byChild[i]]
		if a.Child == b.Child && b.Left < a.Right {
			return invalidf("node %d has overlapping parent edges [%v,%v) and [%v,%v)",
				a.Child, a.Left, a.Right, b.Left, b.Right)
		}
	}
	for i, m := range t.Migrations {
		if !(m.Left >= 0 && m.Left < m.Right && m.Right <= L) {
			return invalidf("migration %d: bad interval [%v,%v)", i, m.Left, m.Right)
		}
		if m.Node < 0 || m.Node >= nNode {
			return invalidf("migration %d: node %d out of range", i, m.Node)
		}
		if m.Source < 0 || m.Source >= nPop || m.Dest < 0 || m.Dest >= nPop {
			return invalidf("migration %d: population out of range (source %d, dest %d)", i, m.Source, m.Dest)
		}
	}
	prevPos := -1.0
	for i, s := range t.Sites {
		if s.ID != i {
			return invalidf("site row %d has id %d", i, s.ID)
		}
		if s.Position < 0 || s.Position >= L {
			return invalidf("site %d: position %v out of range", i, s.Position)
		}
		if s.Position <= prevPos {
			return invalidf("site %d: positions not strictly increasing", i)
		}
		prevPos = s.Position
	}
	for i, m := range t.Mutations {
		if m.Site < 0 || m.Site >= len(t.Sites) {
			return invalidf("mutation %d: site %d out of range", i, m.Site)
		}
		if m.Node < 0 || m.Node >= nNode {
			return invalidf("mutation %d: node %d out of range", i, m.Node)
		}
	}
	return nil
}
