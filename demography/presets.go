package demography

import (
	"fmt"
	"sort"

	"github.com/grailbio/base/errors"
)

// IntroMigrationRates are the B->A migration rates swept with the "intro"
// preset.
var IntroMigrationRates = []float64{0, 0.01, 0.02, 0.03, 0.04, 0.05, 0.06, 0.07, 0.08, 0.09, 0.1}

var presets = map[string]func() *Model{
	// Two populations diverged from a common ancestor, with continuous
	// migration from Main to Ghost; only Main is sampled.
	"mig": func() *Model {
		return &Model{
			Name: "Mig",
			Populations: []Population{
				{Name: "Main", InitialSize: 10000},
				{Name: "Ghost", InitialSize: 10000},
				{Name: "Anc", InitialSize: 10000},
			},
			Splits:            []Split{{Time: 5000, Derived: []string{"Main", "Ghost"}, Ancestral: "Anc"}},
			Migrations:        []Migration{{Kind: Continuous, Source: "Main", Dest: "Ghost", Rate: 0.029}},
			Samples:           []Sample{{Population: "Main", Count: 10}},
			Ploidy:            2,
			SequenceLength:    1e4,
			RecombinationRate: 1e-8,
			MutationRate:      2e-8,
			MutationModel:     "jc69",
			PrefixOrder:       []string{"Anc", "Main", "Ghost"},
		}
	},
	// A single panmictic population.
	"nomig": func() *Model {
		return &Model{
			Name:              "NoMig",
			Populations:       []Population{{Name: "Main", InitialSize: 10000}},
			Samples:           []Sample{{Population: "Main", Count: 100}},
			Ploidy:            2,
			SequenceLength:    1e5,
			RecombinationRate: 1e-8,
			MutationRate:      2e-8,
			MutationModel:     "jc69",
		}
	},
	// A and B split from Anc after the outgroup C; a pulse at generation
	// 1000 moves 10% of B's lineages into A, going backwards in time.
	// Migrations are recorded so that the introgressed tracts can be
	// recovered.
	"pulse": func() *Model {
		return &Model{
			Name: "Pulse",
			Populations: []Population{
				{Name: "Anc", InitialSize: 5000},
				{Name: "A", InitialSize: 5000},
				{Name: "B", InitialSize: 5000},
				{Name: "C", InitialSize: 5000, Description: "outgroup"},
			},
			Splits: []Split{
				{Time: 50000, Derived: []string{"C"}, Ancestral: "Anc"},
				{Time: 10000, Derived: []string{"A", "B"}, Ancestral: "Anc"},
			},
			Migrations: []Migration{{Kind: Pulse, Source: "B", Dest: "A", Time: 1000, Proportion: 0.1}},
			Samples: []Sample{
				{Population: "A", Count: 20},
				{Population: "B", Count: 20},
				{Population: "C", Count: 1},
			},
			Ploidy:            2,
			SequenceLength:    2e6,
			RecombinationRate: 1e-8,
			MutationRate:      2e-8,
			RandomSeed:        42,
			RecordMigrations:  true,
		}
	},
	// ((A,B)AB,C)ABC with continuous B -> A migration, haploid samples; the
	// rate is swept over IntroMigrationRates for TMRCA ratios.
	"intro": func() *Model {
		return &Model{
			Name: "Intro",
			Populations: []Population{
				{Name: "A", InitialSize: 1000},
				{Name: "B", InitialSize: 1000},
				{Name: "C", InitialSize: 1000},
				{Name: "AB", InitialSize: 1000},
				{Name: "ABC", InitialSize: 1000},
			},
			Splits: []Split{
				{Time: 5000, Derived: []string{"A", "B"}, Ancestral: "AB"},
				{Time: 10000, Derived: []string{"AB", "C"}, Ancestral: "ABC"},
			},
			Migrations: []Migration{{Kind: Continuous, Source: "B", Dest: "A", Rate: 0.01}},
			Samples: []Sample{
				{Population: "A", Count: 5, Ploidy: 1},
				{Population: "B", Count: 5, Ploidy: 1},
				{Population: "C", Count: 1, Ploidy: 1},
			},
			Ploidy:            1,
			SequenceLength:    1e4,
			RecombinationRate: 1e-7,
			MutationRate:      1e-7,
			RandomSeed:        42,
		}
	},
}

// Preset returns a fresh copy of the named built-in model.
func Preset(name string) (*Model, error) {
	fn, ok := presets[name]
	if !ok {
		return nil, errors.E(errors.NotExist, fmt.Sprintf("demography: no preset %q (have %v)", name, PresetNames()))
	}
	return fn(), nil
}

// PresetNames lists the built-in models.
func PresetNames() []string {
	var names []string
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
