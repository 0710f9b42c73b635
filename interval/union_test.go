package interval

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestNewUnion(t *testing.T) {
	tests := []struct {
		in   []Tract
		want []PosType
	}{
		{nil, []PosType{}},
		{[]Tract{{5, 15}, {7, 17}, {20, 25}}, []PosType{5, 17, 20, 25}},
		// Unsorted, touching and empty input.
		{[]Tract{{20, 25}, {3, 3}, {10, 20}, {0, 5}}, []PosType{0, 5, 10, 25}},
		{[]Tract{{0, 100}, {10, 20}}, []PosType{0, 100}},
	}
	for _, tt := range tests {
		u := NewUnion(tt.in)
		expect.EQ(t, u.endpoints, tt.want)
	}
}

func TestUnionContains(t *testing.T) {
	u := NewUnion([]Tract{{5, 15}, {7, 17}, {20, 25}})
	in := map[PosType]bool{
		0: false, 4.5: false, 5: true, 16.9: true, 17: false,
		19: false, 20: true, 24: true, 25: false, 1000: false,
	}
	// Sequential queries take the forward-search path.
	for _, pos := range []PosType{0, 4.5, 5, 16.9, 17, 19, 20, 24, 25, 1000} {
		expect.EQ(t, u.Contains(pos), in[pos], "pos %v", pos)
	}
	// Out of order queries fall back to binary search.
	for _, pos := range []PosType{24, 0, 20, 5, 1000, 17} {
		expect.EQ(t, u.Contains(pos), in[pos], "pos %v", pos)
	}
}

func TestUnionLenAndCount(t *testing.T) {
	u := NewUnion([]Tract{{0, 20}, {30, 40}, {10, 25}})
	expect.EQ(t, u.Len(), PosType(35))
	expect.EQ(t, u.NumTracts(), 2)
	expect.EQ(t, u.Tracts(), []Tract{{0, 25}, {30, 40}})
	expect.EQ(t, u.Count([]PosType{1, 24, 25, 29, 30, 39.5, 40}), 4)
	expect.EQ(t, TotalLen([]Tract{{0, 20}, {30, 40}, {10, 25}}), PosType(45))
}

func TestUnionInvert(t *testing.T) {
	u := NewUnion([]Tract{{10, 20}, {30, 40}})
	expect.EQ(t, u.Invert(50).Tracts(), []Tract{{0, 10}, {20, 30}, {40, 50}})
	expect.EQ(t, u.Invert(35).Tracts(), []Tract{{0, 10}, {20, 30}})
	expect.EQ(t, NewUnion(nil).Invert(5).Tracts(), []Tract{{0, 5}})
	expect.EQ(t, NewUnion([]Tract{{0, 5}}).Invert(5).Tracts(), []Tract{})
}

func TestEndpointIndex(t *testing.T) {
	endpoints := []PosType{5, 17, 20, 25}
	ei := NewEndpointIndex(0, endpoints)
	expect.False(t, ei.Contained())
	ei.Update(6, endpoints)
	expect.True(t, ei.Contained())
	ei.Update(17, endpoints)
	expect.False(t, ei.Contained())
	ei.Update(21, endpoints)
	expect.True(t, ei.Contained())
	ei.Update(30, endpoints)
	expect.EQ(t, ei, EndpointIndex(4))

	// Galloping agrees with binary search for every start and target.
	long := []PosType{1, 3, 4, 8, 10, 11, 15, 20, 21, 30, 31, 40}
	for from := PosType(0); from < 42; from++ {
		for to := from; to < 42; to += 0.5 {
			ei := NewEndpointIndex(from, long)
			ei.Update(to, long)
			expect.EQ(t, ei, NewEndpointIndex(to, long), "from %v to %v", from, to)
		}
	}
}

func TestTract(t *testing.T) {
	tr := Tract{10, 20}
	expect.EQ(t, tr.Len(), PosType(10))
	expect.True(t, tr.Contains(10))
	expect.False(t, tr.Contains(20))
	expect.True(t, tr.Overlaps(Tract{19, 30}))
	expect.False(t, tr.Overlaps(Tract{20, 30}))
	expect.EQ(t, tr.String(), "[10,20)")
	expect.EQ(t, Tract{0.5, 1e6}.String(), "[0.5,1000000)")
}
