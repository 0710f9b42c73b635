package interval

import (
	"sort"
)

// Union is a set of disjoint, non-touching tracts, stored as a length-2N
// sequence of endpoints where the left end of tract #k is in element [2k] and
// the right end is in element [2k+1], in increasing order.
//
// A Union caches the result of the last Contains query, so it is not safe for
// concurrent use; Clone it for each goroutine.
type Union struct {
	endpoints []PosType
	// lastPos and lastIdx cache the previous Contains query.
	// lastIdx == NewEndpointIndex(lastPos, endpoints) whenever isSequential.
	lastPos      PosType
	lastIdx      EndpointIndex
	isSequential bool
}

// NewUnion merges the given tracts, which may be in any order and may
// overlap, touch or be empty.
func NewUnion(tracts []Tract) *Union {
	sorted := make([]Tract, 0, len(tracts))
	for _, t := range tracts {
		if !t.Empty() {
			sorted = append(sorted, t)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Left != sorted[j].Left {
			return sorted[i].Left < sorted[j].Left
		}
		return sorted[i].Right < sorted[j].Right
	})
	u := &Union{endpoints: make([]PosType, 0, 2*len(sorted))}
	if len(sorted) == 0 {
		return u
	}
	prev := sorted[0]
	for _, t := range sorted[1:] {
		if t.Left > prev.Right {
			u.endpoints = append(u.endpoints, prev.Left, prev.Right)
			prev = t
			continue
		}
		// Overlapping or touching; merge.
		if t.Right > prev.Right {
			prev.Right = t.Right
		}
	}
	u.endpoints = append(u.endpoints, prev.Left, prev.Right)
	return u
}

// newUnionFromEndpoints takes ownership of an already-merged endpoint slice.
func newUnionFromEndpoints(endpoints []PosType) *Union {
	return &Union{endpoints: endpoints}
}

// Contains checks whether pos lies inside one of the tracts.  Queries in
// nondecreasing position order are answered with a forward search from the
// previous answer.
func (u *Union) Contains(pos PosType) bool {
	if u.isSequential && pos >= u.lastPos {
		u.lastIdx.Update(pos, u.endpoints)
	} else {
		u.lastIdx = NewEndpointIndex(pos, u.endpoints)
		u.isSequential = true
	}
	u.lastPos = pos
	return u.lastIdx.Contained()
}

// Count returns how many of the given positions lie inside the union.  The
// positions need not be sorted, but sorted input is much faster.
func (u *Union) Count(positions []PosType) (n int) {
	for _, pos := range positions {
		if u.Contains(pos) {
			n++
		}
	}
	return
}

// Len returns the total number of bases covered.
func (u *Union) Len() (total PosType) {
	for i := 0; i < len(u.endpoints); i += 2 {
		total += u.endpoints[i+1] - u.endpoints[i]
	}
	return
}

// NumTracts returns the number of disjoint tracts.
func (u *Union) NumTracts() int {
	return len(u.endpoints) / 2
}

// Tracts returns the disjoint tracts in increasing order.
func (u *Union) Tracts() []Tract {
	tracts := make([]Tract, 0, len(u.endpoints)/2)
	for i := 0; i < len(u.endpoints); i += 2 {
		tracts = append(tracts, Tract{u.endpoints[i], u.endpoints[i+1]})
	}
	return tracts
}

// Invert returns the complement of the union within [0, seqLen).
func (u *Union) Invert(seqLen PosType) *Union {
	endpoints := make([]PosType, 0, len(u.endpoints)+2)
	prev := PosType(0)
	for i := 0; i < len(u.endpoints); i += 2 {
		left, right := u.endpoints[i], u.endpoints[i+1]
		if left >= seqLen {
			break
		}
		if left > prev {
			endpoints = append(endpoints, prev, left)
		}
		prev = right
	}
	if prev < seqLen {
		endpoints = append(endpoints, prev, seqLen)
	}
	return newUnionFromEndpoints(endpoints)
}

// Clone returns a new Union which shares the interval set, but has its own
// search state.
func (u *Union) Clone() *Union {
	return &Union{endpoints: u.endpoints}
}
