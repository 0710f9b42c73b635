package treeseq

// TreeIterator visits the local trees of a TreeSequence in genome order.
// Typical use:
//
//   it := ts.Trees()
//   for it.Scan() {
//     t := it.Tree()
//     ...
//   }
//   if err := it.Err(); err != nil { ... }
//
// Once Scan returns false, it never returns true again.  TreeIterators are
// not threadsafe.
type TreeIterator struct {
	ts    *TreeSequence
	tree  Tree
	left  float64
	j, k  int // next insertion / removal
	index int
	done  bool
}

// Scan advances to the next tree.  It returns false at the end of the
// sequence.
func (it *TreeIterator) Scan() bool {
	if it.done {
		return false
	}
	ts := it.ts
	edges := ts.tables.Edges
	m := len(edges)
	seqLen := ts.seqLen
	if !(it.j < m || it.left < seqLen) {
		it.done = true
		return false
	}
	for it.k < m && edges[ts.removal[it.k]].Right == it.left {
		it.tree.parent[edges[ts.removal[it.k]].Child] = NullNode
		it.k++
	}
	for it.j < m && edges[ts.insertion[it.j]].Left == it.left {
		e := edges[ts.insertion[it.j]]
		it.tree.parent[e.Child] = e.Parent
		it.j++
	}
	right := seqLen
	if it.j < m && edges[ts.insertion[it.j]].Left < right {
		right = edges[ts.insertion[it.j]].Left
	}
	if it.k < m && edges[ts.removal[it.k]].Right < right {
		right = edges[ts.removal[it.k]].Right
	}
	it.tree.left, it.tree.right = it.left, right
	it.tree.index = it.index
	it.tree.rootValid = false
	it.index++
	it.left = right
	return true
}

// Tree returns the current tree.  It is only valid until the next call to
// Scan.
func (it *TreeIterator) Tree() *Tree {
	return &it.tree
}

// Err returns the error that stopped the iteration, if any.  Iteration over
// validated tables cannot fail, so this is always nil; it exists so that
// TreeIterator can be used wherever a fallible sequence is expected.
func (it *TreeIterator) Err() error {
	return nil
}
