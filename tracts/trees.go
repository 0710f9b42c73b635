package tracts

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/coaltract/interval"
	"github.com/grailbio/coaltract/treeseq"
)

// TreePredicate decides whether a local tree belongs to a tract.
type TreePredicate func(*treeseq.Tree) bool

type treeIterator struct {
	it *treeseq.TreeIterator
}

func (t treeIterator) Scan() bool       { return t.it.Scan() }
func (t treeIterator) Segment() Segment { return t.it.Tree() }
func (t treeIterator) Err() error       { return t.it.Err() }

// Trees adapts a tree iterator to an Iterator whose segments are
// *treeseq.Tree.
func Trees(it *treeseq.TreeIterator) Iterator {
	return treeIterator{it}
}

// OnTrees turns a TreePredicate into a Predicate over the segments of Trees.
func OnTrees(pred TreePredicate) Predicate {
	return func(s Segment) bool {
		return pred(s.(*treeseq.Tree))
	}
}

// ScanTrees returns the maximal tracts of ts over which pred holds.
func ScanTrees(ts *treeseq.TreeSequence, pred TreePredicate) ([]interval.Tract, error) {
	return Scan(Trees(ts.Trees()), ts.SequenceLength(), OnTrees(pred))
}

func checkSample(ts *treeseq.TreeSequence, u int) error {
	if u < 0 || u >= ts.NumNodes() {
		return errors.E(errors.Invalid, fmt.Sprintf("node %d out of range [0,%d)", u, ts.NumNodes()))
	}
	return nil
}

// CoalescesIn returns a predicate that holds where the MRCA of nodes a and b
// exists and belongs to the population named pop.
func CoalescesIn(ts *treeseq.TreeSequence, pops *treeseq.PopulationTable, pop string, a, b int) (TreePredicate, error) {
	popID, err := pops.Lookup(pop)
	if err != nil {
		return nil, err
	}
	if err := checkSample(ts, a); err != nil {
		return nil, err
	}
	if err := checkSample(ts, b); err != nil {
		return nil, err
	}
	return func(t *treeseq.Tree) bool {
		m := t.MRCA(a, b)
		return m != treeseq.NullNode && t.Population(m) == popID
	}, nil
}

// BelowRoot returns a predicate that holds where nodes a and b have an MRCA
// that is not the root of the local tree, i.e. they share an ancestor more
// recent than the one shared with every other sample.  Where the samples
// have several roots, any existing MRCA qualifies.
func BelowRoot(ts *treeseq.TreeSequence, a, b int) (TreePredicate, error) {
	if err := checkSample(ts, a); err != nil {
		return nil, err
	}
	if err := checkSample(ts, b); err != nil {
		return nil, err
	}
	return func(t *treeseq.Tree) bool {
		m := t.MRCA(a, b)
		return m != treeseq.NullNode && m != t.Root()
	}, nil
}
