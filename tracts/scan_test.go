package tracts_test

import (
	"math/rand"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/coaltract/interval"
	"github.com/grailbio/coaltract/tracts"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

// labeled is a segment carrying a label instead of a tree.
type labeled struct {
	iv    interval.Tract
	label string
}

func (l labeled) Interval() interval.Tract { return l.iv }

func segs(in ...labeled) []tracts.Segment {
	out := make([]tracts.Segment, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func seg(left, right interval.PosType, label string) labeled {
	return labeled{interval.Tract{Left: left, Right: right}, label}
}

func isA(s tracts.Segment) bool { return s.(labeled).label == "A" }

func scan(t *testing.T, in []tracts.Segment, seqLen interval.PosType) []interval.Tract {
	out, err := tracts.Scan(tracts.NewSliceIterator(in), seqLen, isA)
	assert.NoError(t, err)
	return out
}

func TestScan(t *testing.T) {
	tests := []struct {
		name   string
		in     []tracts.Segment
		seqLen interval.PosType
		want   []interval.Tract
	}{
		{"example",
			segs(seg(0, 10, "A"), seg(10, 20, "A"), seg(20, 30, "B"), seg(30, 40, "A")),
			40,
			[]interval.Tract{{Left: 0, Right: 20}, {Left: 30, Right: 40}}},
		{"empty", nil, 0, []interval.Tract{}},
		{"emptywithlength", nil, 100, []interval.Tract{}},
		{"never", segs(seg(0, 100, "B")), 100, []interval.Tract{}},
		{"always",
			segs(seg(0, 1, "A"), seg(1, 2.5, "A"), seg(2.5, 100, "A")),
			100,
			[]interval.Tract{{Left: 0, Right: 100}}},
		{"middle",
			segs(seg(0, 10, "B"), seg(10, 20, "A"), seg(20, 30, "A"), seg(30, 40, "B")),
			40,
			[]interval.Tract{{Left: 10, Right: 30}}},
		{"alternating",
			segs(seg(0, 1, "A"), seg(1, 2, "B"), seg(2, 3, "A"), seg(3, 4, "B"), seg(4, 5, "A")),
			5,
			[]interval.Tract{{Left: 0, Right: 1}, {Left: 2, Right: 3}, {Left: 4, Right: 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expect.EQ(t, scan(t, tt.in, tt.seqLen), tt.want)
		})
	}
}

func TestScanPreconditions(t *testing.T) {
	tests := []struct {
		name   string
		in     []tracts.Segment
		seqLen interval.PosType
	}{
		{"notatzero", segs(seg(5, 10, "A")), 10},
		{"gap", segs(seg(0, 10, "A"), seg(11, 20, "A")), 20},
		{"overlap", segs(seg(0, 10, "A"), seg(9, 20, "A")), 20},
		{"emptysegment", segs(seg(0, 10, "A"), seg(10, 10, "A"), seg(10, 20, "B")), 20},
		{"inverted", segs(seg(0, 10, "A"), seg(10, 5, "A")), 20},
		{"pastend", segs(seg(0, 10, "A"), seg(10, 30, "A")), 20},
		{"short", segs(seg(0, 10, "A"), seg(10, 15, "A")), 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tracts.Scan(tracts.NewSliceIterator(tt.in), tt.seqLen, isA)
			expect.True(t, errors.Is(errors.Integrity, err), "err: %v", err)
			expect.Nil(t, out)
		})
	}
}

func TestEachEarlyStop(t *testing.T) {
	in := segs(seg(0, 1, "A"), seg(1, 2, "B"), seg(2, 3, "A"), seg(3, 4, "B"), seg(4, 5, "A"))
	var got []interval.Tract
	err := tracts.Each(tracts.NewSliceIterator(in), 5, isA, func(tr interval.Tract) bool {
		got = append(got, tr)
		return len(got) < 2
	})
	assert.NoError(t, err)
	expect.EQ(t, got, []interval.Tract{{Left: 0, Right: 1}, {Left: 2, Right: 3}})
}

type failingIterator struct {
	tracts.Iterator
	err error
}

func (f failingIterator) Err() error { return f.err }

func TestScanIteratorError(t *testing.T) {
	want := errors.E(errors.Integrity, "truncated input")
	it := failingIterator{tracts.NewSliceIterator(segs(seg(0, 10, "A"))), want}
	_, err := tracts.Scan(it, 20, isA)
	expect.EQ(t, err, want)
}

// randomSegments tiles [0, n*10) with n segments of random lengths and
// labels.
func randomSegments(r *rand.Rand, n int) ([]tracts.Segment, interval.PosType) {
	var out []tracts.Segment
	left := interval.PosType(0)
	for i := 0; i < n; i++ {
		right := left + interval.PosType(1+r.Intn(20))
		label := "B"
		if r.Intn(2) == 0 {
			label = "A"
		}
		out = append(out, seg(left, right, label))
		left = right
	}
	return out, left
}

// TestScanProperties checks the scan output against the input: tracts are
// ordered, non-empty and non-adjacent, every position inside a tract lies in
// an A segment, every A segment lies inside a tract, and scanning twice gives
// the same answer.
func TestScanProperties(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for iter := 0; iter < 200; iter++ {
		in, seqLen := randomSegments(r, r.Intn(30))
		out := scan(t, in, seqLen)
		for i, tr := range out {
			expect.True(t, tr.Left < tr.Right, "tract %v", tr)
			if i > 0 {
				expect.True(t, out[i-1].Right < tr.Left, "tracts %v %v not separated", out[i-1], tr)
			}
		}
		u := interval.NewUnion(out)
		expect.EQ(t, u.NumTracts(), len(out))
		for i, s := range in {
			iv := s.Interval()
			expect.EQ(t, u.Contains(iv.Left), isA(s), "segment %d %v", i, iv)
		}
		for _, tr := range out {
			if tr.Left > 0 {
				// The segment just before a tract must fail the predicate.
				for _, s := range in {
					if s.Interval().Right == tr.Left {
						expect.False(t, isA(s))
					}
				}
			}
		}
		expect.EQ(t, scan(t, in, seqLen), out)
	}
}

func TestScanAlwaysTrue(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for iter := 0; iter < 50; iter++ {
		in, seqLen := randomSegments(r, 1+r.Intn(30))
		for i, s := range in {
			in[i] = seg(s.Interval().Left, s.Interval().Right, "A")
		}
		expect.EQ(t, scan(t, in, seqLen), []interval.Tract{{Left: 0, Right: seqLen}})
		for i, s := range in {
			in[i] = seg(s.Interval().Left, s.Interval().Right, "B")
		}
		expect.EQ(t, scan(t, in, seqLen), []interval.Tract{})
	}
}
