package tracts

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/coaltract/interval"
)

// Segment is one element of the scanned sequence: an interval and whatever
// the predicate inspects about it.  *treeseq.Tree is a Segment.
type Segment interface {
	Interval() interval.Tract
}

// Iterator is a forward-only sequence of segments.  Segment returns the
// current element after Scan returns true; Err reports why Scan returned
// false, nil at the normal end.
type Iterator interface {
	Scan() bool
	Segment() Segment
	Err() error
}

// Predicate decides whether a segment belongs to a tract.
type Predicate func(Segment) bool

func integrityf(format string, args ...interface{}) error {
	return errors.E(errors.Integrity, fmt.Sprintf(format, args...))
}

// Each scans it once and calls fn with every maximal tract of consecutive
// segments satisfying pred, in genome order.  If fn returns false, the scan
// stops; a tract still open at that point is dropped.
//
// The segments must tile [0, seqLen) left to right without gaps or overlaps.
// A violation is reported as an errors.Integrity error; tracts already passed
// to fn are correct up to the violation.
func Each(it Iterator, seqLen interval.PosType, pred Predicate, fn func(interval.Tract) bool) error {
	var (
		open    bool
		left    interval.PosType
		prevEnd interval.PosType
		n       int
	)
	for it.Scan() {
		seg := it.Segment()
		iv := seg.Interval()
		if iv.Left != prevEnd {
			if n == 0 {
				return integrityf("tracts: first segment %v does not start at 0", iv)
			}
			return integrityf("tracts: segment %d %v does not start at the previous end %v", n, iv, interval.FormatPos(prevEnd))
		}
		if iv.Empty() {
			return integrityf("tracts: segment %d %v is empty", n, iv)
		}
		if iv.Right > seqLen {
			return integrityf("tracts: segment %d %v extends past the sequence length %v", n, iv, interval.FormatPos(seqLen))
		}
		prevEnd = iv.Right
		n++
		if pred(seg) {
			if !open {
				open = true
				left = iv.Left
			}
		} else if open {
			open = false
			if !fn(interval.Tract{Left: left, Right: iv.Left}) {
				return nil
			}
		}
	}
	if err := it.Err(); err != nil {
		return err
	}
	if n > 0 && prevEnd != seqLen {
		return integrityf("tracts: segments end at %v, not at the sequence length %v",
			interval.FormatPos(prevEnd), interval.FormatPos(seqLen))
	}
	if open {
		fn(interval.Tract{Left: left, Right: seqLen})
	}
	return nil
}

// Scan returns the maximal tracts of it satisfying pred; see Each.  The
// result is empty, not nil, when no segment qualifies.  On error no tracts
// are returned.
func Scan(it Iterator, seqLen interval.PosType, pred Predicate) ([]interval.Tract, error) {
	out := []interval.Tract{}
	if err := Each(it, seqLen, pred, func(t interval.Tract) bool {
		out = append(out, t)
		return true
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// SliceIterator iterates over an in-memory list of segments.
type SliceIterator struct {
	segs []Segment
	i    int
}

// NewSliceIterator returns an Iterator over segs.
func NewSliceIterator(segs []Segment) *SliceIterator {
	return &SliceIterator{segs: segs, i: -1}
}

// Scan implements Iterator.
func (s *SliceIterator) Scan() bool {
	if s.i+1 >= len(s.segs) {
		s.i = len(s.segs)
		return false
	}
	s.i++
	return true
}

// Segment implements Iterator.
func (s *SliceIterator) Segment() Segment { return s.segs[s.i] }

// Err implements Iterator.
func (s *SliceIterator) Err() error { return nil }
