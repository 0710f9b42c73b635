package interval

import (
	"math"

	"github.com/biogo/store/interval"
)

// Index keeps individual, possibly overlapping tracts so that the tracts
// covering a position can be recovered.  The tree stores integer bounds
// widened to cover each tract; hits are checked against the exact tract.
type Index struct {
	tree   interval.IntTree
	tracts []Tract
}

type indexEntry struct {
	start, end int
	id         uintptr
}

func (e indexEntry) Overlap(b interval.IntRange) bool {
	return e.end > b.Start && e.start < b.End
}
func (e indexEntry) ID() uintptr              { return e.id }
func (e indexEntry) Range() interval.IntRange { return interval.IntRange{Start: e.start, End: e.end} }

type posQuery int

func (q posQuery) Overlap(b interval.IntRange) bool {
	return int(q) >= b.Start && int(q) < b.End
}

// maxIndexPos bounds the integer coordinates stored in the tree: 2^53, the
// largest range where float64 holds every integer, or the platform's int
// limit if smaller.
var maxIndexPos = int(math.Min(1<<53, float64(math.MaxInt)))

// clampPos converts a rounded, non-NaN coordinate to a tree coordinate in
// [lo, hi].  Starts and queries are clamped to [-maxIndexPos, maxIndexPos-1]
// and ends to [-maxIndexPos+1, maxIndexPos], so a clamped tract keeps a
// non-empty range that clamped queries still hit.
func clampPos(p float64, lo, hi int) int {
	switch {
	case p >= float64(hi):
		return hi
	case p <= float64(lo):
		return lo
	}
	return int(p)
}

func startPos(p float64) int { return clampPos(math.Floor(p), -maxIndexPos, maxIndexPos-1) }
func endPos(p float64) int   { return clampPos(math.Ceil(p), -maxIndexPos+1, maxIndexPos) }

// NewIndex builds an Index.  Tract #i is reported as id i.  Empty tracts and
// tracts with NaN ends are skipped.  Ends beyond maxIndexPos are clamped
// in the tree; Overlapping still reports hits by exact comparison.
func NewIndex(tracts []Tract) *Index {
	idx := &Index{tracts: tracts}
	for i, t := range tracts {
		if math.IsNaN(t.Left) || math.IsNaN(t.Right) {
			continue
		}
		e := indexEntry{
			start: startPos(t.Left),
			end:   endPos(t.Right),
			id:    uintptr(i),
		}
		if e.end <= e.start {
			continue
		}
		// Insert can only fail for entries with end < start, excluded above.
		if err := idx.tree.Insert(e, true); err != nil {
			panic(err)
		}
	}
	idx.tree.AdjustRanges()
	return idx
}

// Len returns the number of indexed tracts.
func (idx *Index) Len() int {
	return idx.tree.Len()
}

// Overlapping returns the ids of the tracts containing pos, in no particular
// order.
func (idx *Index) Overlapping(pos PosType) []int {
	if math.IsNaN(pos) {
		return []int{}
	}
	hits := idx.tree.Get(posQuery(startPos(pos)))
	ids := make([]int, 0, len(hits))
	for _, h := range hits {
		id := int(h.ID())
		if idx.tracts[id].Contains(pos) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Tract returns tract #id.
func (idx *Index) Tract(id int) Tract {
	return idx.tracts[id]
}
