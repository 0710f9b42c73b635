package interval

import (
	"sort"
)

// A Union stores its tracts as the flat, strictly increasing sequence of
// their endpoints.  The tracts [5,17) and [20,25) become {5, 17, 20, 25}; a
// position lies inside the union iff an odd number of endpoints are <= it.

// EndpointIndex is the number of endpoints <= some position.
type EndpointIndex uint32

// NewEndpointIndex returns the EndpointIndex of pos by binary search.
func NewEndpointIndex(pos PosType, endpoints []PosType) EndpointIndex {
	return EndpointIndex(sort.Search(len(endpoints), func(i int) bool { return endpoints[i] > pos }))
}

// Contained returns true iff the position lies inside a tract.
func (ei EndpointIndex) Contained() bool {
	return ei&1 != 0
}

// Update moves ei forward to newPos, which must not be smaller than the
// position ei currently describes.  It gallops from the current index,
// doubling the step until it overshoots, then bisects the last step; a sweep
// over sorted positions thus costs O(log gap) per query instead of
// O(log len(endpoints)).
func (ei *EndpointIndex) Update(newPos PosType, endpoints []PosType) {
	lo, hi := int(*ei), len(endpoints)
	for step, i := 1, lo; i < hi; step, i = step*2, i+step {
		if endpoints[i] > newPos {
			hi = i
			break
		}
		lo = i + 1
	}
	*ei = EndpointIndex(lo + sort.Search(hi-lo, func(i int) bool { return endpoints[lo+i] > newPos }))
}
