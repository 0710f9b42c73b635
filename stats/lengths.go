package stats

import (
	"github.com/grailbio/coaltract/interval"
)

// LengthSummary describes the length distribution of a tract list.
type LengthSummary struct {
	Count          int
	Total          float64
	Mean, Min, Max float64
}

// TractLengths summarizes the lengths of tracts.  All fields are zero for
// an empty list.
func TractLengths(tracts []interval.Tract) (s LengthSummary) {
	for i, t := range tracts {
		l := t.Len()
		if i == 0 || l < s.Min {
			s.Min = l
		}
		if i == 0 || l > s.Max {
			s.Max = l
		}
		s.Total += l
	}
	s.Count = len(tracts)
	if s.Count > 0 {
		s.Mean = s.Total / float64(s.Count)
	}
	return
}
