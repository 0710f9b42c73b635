package stats

import (
	"io"
	"strconv"

	"github.com/grailbio/base/tsv"
	"github.com/grailbio/coaltract/interval"
	"github.com/grailbio/coaltract/treeseq"
)

// Introgression summarizes the migration tracts of one event.
type Introgression struct {
	SequenceLength float64
	NumTracts      int
	// TotalLength sums the tract lengths; sequence covered by several
	// tracts counts once per tract.
	TotalLength float64
	// CoveredLength is the length of the union of the tracts.
	CoveredLength float64
	NumSites      int
	NumMutations  int
	// SitesInTracts counts sites inside at least one tract.
	SitesInTracts int
	// SitesPerTract[i] counts the sites inside tract #i.
	SitesPerTract []int
}

// Proportion returns TotalLength relative to the sequence length.
func (s Introgression) Proportion() float64 {
	return s.TotalLength / s.SequenceLength
}

// CoveredProportion returns CoveredLength relative to the sequence length.
func (s Introgression) CoveredProportion() float64 {
	return s.CoveredLength / s.SequenceLength
}

// Summarize computes the introgression summary of migration tracts in ts,
// typically the output of tracts.MigrationTracts.
func Summarize(ts *treeseq.TreeSequence, tracts []interval.Tract) Introgression {
	s := Introgression{
		SequenceLength: ts.SequenceLength(),
		NumTracts:      len(tracts),
		TotalLength:    interval.TotalLen(tracts),
		NumSites:       len(ts.Sites()),
		NumMutations:   len(ts.Mutations()),
		SitesPerTract:  make([]int, len(tracts)),
	}
	union := interval.NewUnion(tracts)
	s.CoveredLength = union.Len()
	idx := interval.NewIndex(tracts)
	for _, pos := range ts.SitePositions() {
		if !union.Contains(pos) {
			continue
		}
		s.SitesInTracts++
		for _, id := range idx.Overlapping(pos) {
			s.SitesPerTract[id]++
		}
	}
	return s
}

// WriteSummary writes s as two-column key/value TSV.
func WriteSummary(w io.Writer, s Introgression) error {
	tw := tsv.NewWriter(w)
	for _, kv := range []struct{ key, value string }{
		{"sequence_length", FormatFloat(s.SequenceLength)},
		{"num_tracts", strconv.Itoa(s.NumTracts)},
		{"total_tract_length", FormatFloat(s.TotalLength)},
		{"covered_length", FormatFloat(s.CoveredLength)},
		{"proportion", FormatFloat(s.Proportion())},
		{"covered_proportion", FormatFloat(s.CoveredProportion())},
		{"num_sites", strconv.Itoa(s.NumSites)},
		{"num_mutations", strconv.Itoa(s.NumMutations)},
		{"sites_in_tracts", strconv.Itoa(s.SitesInTracts)},
	} {
		tw.WriteString(kv.key)
		tw.WriteString(kv.value)
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}
