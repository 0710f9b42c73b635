package demography

import (
	"fmt"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/coaltract/treeseq"
)

// Population is one deme of the model.
type Population struct {
	Name        string  `toml:"name"`
	InitialSize float64 `toml:"initial_size"`
	Description string  `toml:"description,omitempty"`
}

// Split merges the derived populations into the ancestral one at Time,
// going backwards in time.
type Split struct {
	Time      float64  `toml:"time"`
	Derived   []string `toml:"derived"`
	Ancestral string   `toml:"ancestral"`
}

// MigrationKind distinguishes continuous migration from a single pulse.
type MigrationKind string

const (
	// Continuous migration at a constant per-generation rate.
	Continuous MigrationKind = "continuous"
	// Pulse moves a proportion of the source lineages at one time.
	Pulse MigrationKind = "pulse"
)

// Migration is gene flow between two populations.  Source and Dest follow
// the simulator's backwards-in-time convention: lineages move from Source to
// Dest, i.e. Dest contributes migrants to Source forwards in time.
type Migration struct {
	Kind   MigrationKind `toml:"kind,omitempty"`
	Source string        `toml:"source"`
	Dest   string        `toml:"dest"`
	// Rate is used by continuous migration.
	Rate float64 `toml:"rate,omitempty"`
	// Time and Proportion are used by pulses.
	Time       float64 `toml:"time,omitempty"`
	Proportion float64 `toml:"proportion,omitempty"`
}

// IsPulse returns true for a pulse.  An empty Kind means continuous.
func (m Migration) IsPulse() bool { return m.Kind == Pulse }

// Sample draws Count individuals from a population.
type Sample struct {
	Population string `toml:"population"`
	Count      int    `toml:"count"`
	// Ploidy overrides Model.Ploidy when nonzero.
	Ploidy int `toml:"ploidy,omitempty"`
}

// Model is a complete simulation configuration.
type Model struct {
	// Name labels output files, e.g. "Mig".
	Name        string       `toml:"name"`
	Populations []Population `toml:"populations"`
	Splits      []Split      `toml:"splits,omitempty"`
	Migrations  []Migration  `toml:"migrations,omitempty"`
	Samples     []Sample     `toml:"samples"`
	Ploidy      int          `toml:"ploidy"`

	SequenceLength    float64 `toml:"sequence_length"`
	RecombinationRate float64 `toml:"recombination_rate"`
	MutationRate      float64 `toml:"mutation_rate"`
	// MutationModel is passed to the simulator, e.g. "jc69".  Empty selects
	// the simulator's default.
	MutationModel    string `toml:"mutation_model,omitempty"`
	RandomSeed       int64  `toml:"random_seed,omitempty"`
	RecordMigrations bool   `toml:"record_migrations,omitempty"`

	// PrefixOrder lists the populations in the order their sizes appear in
	// FilePrefix.  It defaults to declaration order.
	PrefixOrder []string `toml:"prefix_order,omitempty"`
}

func invalidf(format string, args ...interface{}) error {
	return errors.E(errors.Invalid, fmt.Sprintf(format, args...))
}

// Validate checks that the model is complete and self-consistent.
func (m *Model) Validate() error {
	if len(m.Populations) == 0 {
		return invalidf("demography: no populations")
	}
	names := map[string]bool{}
	for i, p := range m.Populations {
		if p.Name == "" {
			return invalidf("demography: population #%d has no name", i)
		}
		if names[p.Name] {
			return invalidf("demography: duplicate population %s", p.Name)
		}
		names[p.Name] = true
		if !(p.InitialSize > 0) {
			return invalidf("demography: population %s: initial size %v must be positive", p.Name, p.InitialSize)
		}
	}
	check := func(what, name string) error {
		if !names[name] {
			return invalidf("demography: %s: unknown population %q", what, name)
		}
		return nil
	}
	derived := map[string]bool{}
	for i, s := range m.Splits {
		what := fmt.Sprintf("split #%d", i)
		if s.Time < 0 {
			return invalidf("demography: %s: negative time %v", what, s.Time)
		}
		if len(s.Derived) == 0 {
			return invalidf("demography: %s: no derived populations", what)
		}
		if err := check(what, s.Ancestral); err != nil {
			return err
		}
		for _, d := range s.Derived {
			if err := check(what, d); err != nil {
				return err
			}
			if d == s.Ancestral {
				return invalidf("demography: %s: population %s is its own ancestor", what, d)
			}
			if derived[d] {
				return invalidf("demography: %s: population %s already split off", what, d)
			}
			derived[d] = true
		}
	}
	for i, mig := range m.Migrations {
		what := fmt.Sprintf("migration #%d", i)
		if err := check(what, mig.Source); err != nil {
			return err
		}
		if err := check(what, mig.Dest); err != nil {
			return err
		}
		if mig.Source == mig.Dest {
			return invalidf("demography: %s: source and dest are both %s", what, mig.Source)
		}
		switch mig.Kind {
		case "", Continuous:
			if mig.Rate < 0 {
				return invalidf("demography: %s: negative rate %v", what, mig.Rate)
			}
		case Pulse:
			if mig.Time < 0 {
				return invalidf("demography: %s: negative time %v", what, mig.Time)
			}
			if mig.Proportion < 0 || mig.Proportion > 1 {
				return invalidf("demography: %s: proportion %v outside [0,1]", what, mig.Proportion)
			}
		default:
			return invalidf("demography: %s: unknown kind %q", what, mig.Kind)
		}
	}
	if len(m.Samples) == 0 {
		return invalidf("demography: no samples")
	}
	for i, s := range m.Samples {
		if err := check(fmt.Sprintf("sample #%d", i), s.Population); err != nil {
			return err
		}
		if s.Count <= 0 {
			return invalidf("demography: sample #%d: count %d must be positive", i, s.Count)
		}
		if s.Ploidy < 0 {
			return invalidf("demography: sample #%d: negative ploidy %d", i, s.Ploidy)
		}
	}
	if m.Ploidy < 1 {
		return invalidf("demography: ploidy %d must be at least 1", m.Ploidy)
	}
	if !(m.SequenceLength > 0) {
		return invalidf("demography: sequence length %v must be positive", m.SequenceLength)
	}
	if m.RecombinationRate < 0 || m.MutationRate < 0 {
		return invalidf("demography: negative recombination or mutation rate")
	}
	for _, name := range m.PrefixOrder {
		if err := check("prefix_order", name); err != nil {
			return err
		}
	}
	return nil
}

// PopulationTable returns the population name table in declaration order.
func (m *Model) PopulationTable() (*treeseq.PopulationTable, error) {
	names := make([]string, len(m.Populations))
	for i, p := range m.Populations {
		names[i] = p.Name
	}
	return treeseq.NewPopulationTable(names)
}

// NumSamples returns the number of sampled individuals.
func (m *Model) NumSamples() int {
	n := 0
	for _, s := range m.Samples {
		n += s.Count
	}
	return n
}

// SamplePloidy returns the ploidy of the individuals of s.
func (m *Model) SamplePloidy(s Sample) int {
	if s.Ploidy > 0 {
		return s.Ploidy
	}
	return m.Ploidy
}

// EventKind is the type of a discrete demographic event.
type EventKind int

const (
	// SplitEvent is a population split.
	SplitEvent EventKind = iota
	// PulseEvent is a migration pulse.
	PulseEvent
)

// Event is a discrete demographic event; exactly one of Split and Pulse is
// meaningful, according to Kind.
type Event struct {
	Time  float64
	Kind  EventKind
	Split Split
	Pulse Migration
}

// String describes the event, e.g. "5000: split [Main Ghost] -> Anc".
func (e Event) String() string {
	switch e.Kind {
	case SplitEvent:
		return fmt.Sprintf("%v: split %v -> %s", e.Time, e.Split.Derived, e.Split.Ancestral)
	default:
		return fmt.Sprintf("%v: pulse %s -> %s proportion %v", e.Time, e.Pulse.Source, e.Pulse.Dest, e.Pulse.Proportion)
	}
}

// Events returns the splits and pulses sorted by time.  Events at the same
// time keep declaration order, splits first.
func (m *Model) Events() []Event {
	var events []Event
	for _, s := range m.Splits {
		events = append(events, Event{Time: s.Time, Kind: SplitEvent, Split: s})
	}
	for _, mig := range m.Migrations {
		if mig.IsPulse() {
			events = append(events, Event{Time: mig.Time, Kind: PulseEvent, Pulse: mig})
		}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Time < events[j].Time })
	return events
}

// Clone returns a deep copy of m.
func (m *Model) Clone() *Model {
	c := *m
	c.Populations = append([]Population(nil), m.Populations...)
	c.Splits = nil
	for _, s := range m.Splits {
		s.Derived = append([]string(nil), s.Derived...)
		c.Splits = append(c.Splits, s)
	}
	c.Migrations = append([]Migration(nil), m.Migrations...)
	c.Samples = append([]Sample(nil), m.Samples...)
	c.PrefixOrder = append([]string(nil), m.PrefixOrder...)
	return &c
}

// WithMigrationRate returns a copy of m whose continuous migration from
// source to dest has the given rate, adding one if m has none.
func (m *Model) WithMigrationRate(source, dest string, rate float64) *Model {
	c := m.Clone()
	for i, mig := range c.Migrations {
		if !mig.IsPulse() && mig.Source == source && mig.Dest == dest {
			c.Migrations[i].Rate = rate
			return c
		}
	}
	c.Migrations = append(c.Migrations, Migration{Kind: Continuous, Source: source, Dest: dest, Rate: rate})
	return c
}
