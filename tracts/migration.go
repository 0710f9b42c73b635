package tracts

import (
	"github.com/grailbio/coaltract/interval"
	"github.com/grailbio/coaltract/treeseq"
)

// MigrationFilter selects migration records.  Empty population names and an
// unset time match everything.
type MigrationFilter struct {
	// Source and Dest are population names, resolved through the population
	// table and compared with the record's source and dest columns as the
	// simulator wrote them.
	Source, Dest string
	// Time, if HasTime, must equal the record time exactly, e.g. the time of
	// a pulse.
	Time    float64
	HasTime bool
}

type resolvedFilter struct {
	source, dest int
	time         float64
	hasTime      bool
}

func (f MigrationFilter) resolve(pops *treeseq.PopulationTable) (r resolvedFilter, err error) {
	r.source, r.dest = treeseq.NullNode, treeseq.NullNode
	if f.Source != "" {
		if r.source, err = pops.Lookup(f.Source); err != nil {
			return
		}
	}
	if f.Dest != "" {
		if r.dest, err = pops.Lookup(f.Dest); err != nil {
			return
		}
	}
	r.time, r.hasTime = f.Time, f.HasTime
	return
}

func (r resolvedFilter) match(m treeseq.Migration) bool {
	return (r.source == treeseq.NullNode || m.Source == r.source) &&
		(r.dest == treeseq.NullNode || m.Dest == r.dest) &&
		(!r.hasTime || m.Time == r.time)
}

// MigrationTracts returns the [left, right) bounds of the migration records
// matching f, in record order.  The records already carry explicit bounds, so
// no merging is done and the result may contain overlapping tracts (e.g. two
// sample lineages migrating over the same region); use interval.NewUnion for
// covered length.
func MigrationTracts(migs []treeseq.Migration, pops *treeseq.PopulationTable, f MigrationFilter) ([]interval.Tract, error) {
	r, err := f.resolve(pops)
	if err != nil {
		return nil, err
	}
	out := []interval.Tract{}
	for _, m := range migs {
		if r.match(m) {
			out = append(out, interval.Tract{Left: m.Left, Right: m.Right})
		}
	}
	return out, nil
}

// MigrationRecords is like MigrationTracts, but returns the matching records
// themselves.
func MigrationRecords(migs []treeseq.Migration, pops *treeseq.PopulationTable, f MigrationFilter) ([]treeseq.Migration, error) {
	r, err := f.resolve(pops)
	if err != nil {
		return nil, err
	}
	var out []treeseq.Migration
	for _, m := range migs {
		if r.match(m) {
			out = append(out, m)
		}
	}
	return out, nil
}
