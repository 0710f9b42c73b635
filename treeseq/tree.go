package treeseq

import (
	"fmt"
	"math"

	"github.com/grailbio/coaltract/interval"
)

// Tree is the local tree over one genomic interval.  Trees yielded by a
// TreeIterator are overwritten by the next Scan; use Copy to keep one.
type Tree struct {
	ts          *TreeSequence
	index       int
	left, right float64
	parent      []int

	// mark/stamp implement O(1)-reset ancestor marking for MRCA and Root.
	mark  []uint32
	stamp uint32

	rootValid bool
	root      int
	numRoots  int
}

func (t *Tree) init(ts *TreeSequence) {
	t.ts = ts
	t.index = -1
	t.parent = make([]int, len(ts.tables.Nodes))
	for i := range t.parent {
		t.parent[i] = NullNode
	}
	t.mark = make([]uint32, len(ts.tables.Nodes))
}

// Copy returns an independent copy of the tree.
func (t *Tree) Copy() *Tree {
	c := &Tree{
		ts:        t.ts,
		index:     t.index,
		left:      t.left,
		right:     t.right,
		parent:    append([]int(nil), t.parent...),
		mark:      make([]uint32, len(t.mark)),
		rootValid: t.rootValid,
		root:      t.root,
		numRoots:  t.numRoots,
	}
	return c
}

// Index returns the 0-based position of the tree in the sequence.
func (t *Tree) Index() int { return t.index }

// Left returns the inclusive left end of the tree's interval.
func (t *Tree) Left() float64 { return t.left }

// Right returns the exclusive right end of the tree's interval.
func (t *Tree) Right() float64 { return t.right }

// Interval returns [Left, Right).
func (t *Tree) Interval() interval.Tract {
	return interval.Tract{Left: t.left, Right: t.right}
}

// TreeSequence returns the tree sequence the tree belongs to.
func (t *Tree) TreeSequence() *TreeSequence { return t.ts }

// Parent returns the parent of u in this tree, or NullNode.
func (t *Tree) Parent(u int) int { return t.parent[u] }

// Time returns the age of node u.
func (t *Tree) Time(u int) float64 { return t.ts.tables.Nodes[u].Time }

// Population returns the population id of node u.
func (t *Tree) Population(u int) int { return t.ts.tables.Nodes[u].Population }

func (t *Tree) nextStamp() uint32 {
	t.stamp++
	if t.stamp == 0 {
		for i := range t.mark {
			t.mark[i] = 0
		}
		t.stamp = 1
	}
	return t.stamp
}

// MRCA returns the most recent common ancestor of nodes u and v, or NullNode
// if they do not share an ancestor in this tree.
func (t *Tree) MRCA(u, v int) int {
	if u == v {
		return u
	}
	s := t.nextStamp()
	for w := u; w != NullNode; w = t.parent[w] {
		t.mark[w] = s
	}
	for w := v; w != NullNode; w = t.parent[w] {
		if t.mark[w] == s {
			return w
		}
	}
	return NullNode
}

// TMRCA returns the time of the MRCA of u and v, or NaN if there is none.
func (t *Tree) TMRCA(u, v int) float64 {
	w := t.MRCA(u, v)
	if w == NullNode {
		return math.NaN()
	}
	return t.Time(w)
}

func (t *Tree) computeRoots() {
	t.rootValid = true
	t.root = NullNode
	t.numRoots = 0
	s := t.nextStamp()
	for _, u := range t.ts.samples {
		w := u
		for t.parent[w] != NullNode {
			w = t.parent[w]
		}
		if t.mark[w] != s {
			t.mark[w] = s
			t.numRoots++
			t.root = w
		}
	}
	if t.numRoots != 1 {
		t.root = NullNode
	}
}

// Root returns the root of the tree if all samples share a single root, and
// NullNode otherwise.
func (t *Tree) Root() int {
	if !t.rootValid {
		t.computeRoots()
	}
	return t.root
}

// NumRoots returns the number of distinct roots above the samples.
func (t *Tree) NumRoots() int {
	if !t.rootValid {
		t.computeRoots()
	}
	return t.numRoots
}

// String returns a short description, e.g. "tree#3[100,250)".
func (t *Tree) String() string {
	return fmt.Sprintf("tree#%d%v", t.index, t.Interval())
}
