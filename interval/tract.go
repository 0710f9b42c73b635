package interval

import (
	"math"
	"strconv"
)

// PosType is the coordinate type of a genomic position.
type PosType = float64

// PosTypeMax is larger than every valid position.
var PosTypeMax = PosType(math.Inf(1))

// Tract is the half-open genomic interval [Left, Right).
type Tract struct {
	Left  PosType
	Right PosType
}

// Len returns Right - Left.
func (t Tract) Len() PosType {
	return t.Right - t.Left
}

// Empty returns true iff the tract covers no positions.
func (t Tract) Empty() bool {
	return t.Right <= t.Left
}

// Contains checks whether pos lies in [Left, Right).
func (t Tract) Contains(pos PosType) bool {
	return pos >= t.Left && pos < t.Right
}

// Overlaps checks whether the two tracts share at least one position.
func (t Tract) Overlaps(o Tract) bool {
	return t.Left < o.Right && o.Left < t.Right
}

// String returns "[left,right)".
func (t Tract) String() string {
	return "[" + FormatPos(t.Left) + "," + FormatPos(t.Right) + ")"
}

// FormatPos prints a position with the shortest representation that
// round-trips; integral positions print without a decimal point.
func FormatPos(pos PosType) string {
	return strconv.FormatFloat(pos, 'f', -1, 64)
}

// TotalLen returns the summed length of the given tracts.  Overlapping tracts
// are counted once per tract; use NewUnion(tracts).Len() for covered length.
func TotalLen(tracts []Tract) (total PosType) {
	for _, t := range tracts {
		total += t.Len()
	}
	return
}
