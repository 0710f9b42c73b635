package demography

import (
	"math"
	"strconv"
	"strings"
)

// FilePrefix returns the base name of the output files of simulation run
// id, e.g.
//
//   msprime_Mig_ID_1_samples_size_10_chrlen_10000.0_N_anc_10000_N_main_10000_N_ghost_10000_tau_5000_m_0.029_mu_2e-08_rho_1e-08
//
// Population sizes follow PrefixOrder, then one tau per split, one m per
// continuous migration, one t_pulse/p_pulse pair per pulse, then the
// mutation and recombination rates.
func (m *Model) FilePrefix(id string) string {
	var b strings.Builder
	field := func(key, value string) {
		b.WriteString("_")
		b.WriteString(key)
		b.WriteString("_")
		b.WriteString(value)
	}
	b.WriteString("msprime_")
	b.WriteString(m.Name)
	field("ID", id)
	field("samples_size", strconv.Itoa(m.NumSamples()))
	field("chrlen", pyFloat(m.SequenceLength))
	for _, name := range m.prefixOrder() {
		for _, p := range m.Populations {
			if p.Name == name {
				field("N_"+strings.ToLower(name), formatCount(p.InitialSize))
			}
		}
	}
	for _, s := range m.Splits {
		field("tau", formatCount(s.Time))
	}
	for _, mig := range m.Migrations {
		if mig.IsPulse() {
			field("t_pulse", formatCount(mig.Time))
			field("p_pulse", pyFloat(mig.Proportion))
		} else {
			field("m", pyFloat(mig.Rate))
		}
	}
	field("mu", pyFloat(m.MutationRate))
	field("rho", pyFloat(m.RecombinationRate))
	return b.String()
}

func (m *Model) prefixOrder() []string {
	if len(m.PrefixOrder) > 0 {
		return m.PrefixOrder
	}
	names := make([]string, len(m.Populations))
	for i, p := range m.Populations {
		names[i] = p.Name
	}
	return names
}

// pyFloat formats v the way Python's repr prints a float: integral values
// keep a ".0" and very small or large magnitudes switch to exponent form,
// e.g. 10000.0, 0.029, 2e-08.
func pyFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatCount prints population sizes and times, which are integral in
// practice, without a decimal point.
func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
