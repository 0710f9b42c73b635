package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/coaltract/treeseq"
)

// Triple names the three sample nodes of a TMRCA comparison.  A and B are
// the ingroup pair and C the outgroup: X = TMRCA(A, B), XY = TMRCA(A, C),
// and Y = XY - X.
type Triple struct {
	A, B, C int
}

// TripleOf picks the first sample node of each of the three named
// populations.
func TripleOf(ts *treeseq.TreeSequence, a, b, c string) (Triple, error) {
	var nodes [3]int
	for i, name := range []string{a, b, c} {
		pop, err := ts.Populations().Lookup(name)
		if err != nil {
			return Triple{}, err
		}
		s := ts.SamplesOf(pop)
		if len(s) == 0 {
			return Triple{}, errors.E(errors.NotExist, fmt.Sprintf("population %s has no samples", name))
		}
		nodes[i] = s[0]
	}
	return Triple{nodes[0], nodes[1], nodes[2]}, nil
}

func (tr Triple) check(ts *treeseq.TreeSequence) error {
	for _, u := range []int{tr.A, tr.B, tr.C} {
		if u < 0 || u >= ts.NumNodes() {
			return errors.E(errors.Invalid, fmt.Sprintf("node %d out of range [0,%d)", u, ts.NumNodes()))
		}
	}
	return nil
}

// TMRCARow holds the TMRCA statistics of a triple at one position.  X, Y
// and XY are NaN where the nodes have no common ancestor.
type TMRCARow struct {
	ID       int
	Position float64
	// Param is the model parameter the tree sequence was simulated with,
	// e.g. a migration rate in a sweep.
	Param        float64
	X, Y, XY     float64
	XToXY, YToXY Ratio
}

// TMRCAAt computes the TMRCA statistics of tr in tree t.
func TMRCAAt(t *treeseq.Tree, tr Triple) TMRCARow {
	x := t.TMRCA(tr.A, tr.B)
	xy := t.TMRCA(tr.A, tr.C)
	y := xy - x
	return TMRCARow{
		X:     x,
		Y:     y,
		XY:    xy,
		XToXY: Div(x, xy),
		YToXY: Div(y, xy),
	}
}

// SampleTMRCA draws n positions uniformly from [0, L) and computes the
// TMRCA statistics of tr at each.  Rows are numbered 1..n in draw order; the
// trees are visited in one pass.  A tree sequence of length zero is an
// errors.Invalid error.
func SampleTMRCA(ts *treeseq.TreeSequence, tr Triple, n int, rng *rand.Rand) ([]TMRCARow, error) {
	if err := tr.check(ts); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("negative sample count %d", n))
	}
	seqLen := ts.SequenceLength()
	if !(seqLen > 0) {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("cannot sample positions from sequence length %v", seqLen))
	}
	positions := make([]float64, n)
	for i := range positions {
		positions[i] = rng.Float64() * seqLen
		if positions[i] >= seqLen {
			positions[i] = math.Nextafter(seqLen, 0)
		}
	}
	// Rows Sweep does not reach stay NA.
	rows := make([]TMRCARow, n)
	for i := range rows {
		rows[i] = TMRCARow{
			ID:       i + 1,
			Position: positions[i],
			X:        math.NaN(),
			Y:        math.NaN(),
			XY:       math.NaN(),
		}
	}
	ts.Sweep(positions, func(i int, t *treeseq.Tree) {
		rows[i] = TMRCAAt(t, tr)
		rows[i].ID = i + 1
		rows[i].Position = positions[i]
	})
	return rows, nil
}

// WriteTMRCACSV writes rows as CSV with the header
//
//	id,<param>,tmrca_X,tmrca_Y,tmrca_XY,tmrca_XtoXY,tmrca_YtoXY
//
// param names the Param column; it defaults to "param".
func WriteTMRCACSV(w io.Writer, param string, rows []TMRCARow) error {
	if param == "" {
		param = "param"
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", param, "tmrca_X", "tmrca_Y", "tmrca_XY", "tmrca_XtoXY", "tmrca_YtoXY"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			strconv.Itoa(r.ID),
			FormatFloat(r.Param),
			FormatFloat(r.X),
			FormatFloat(r.Y),
			FormatFloat(r.XY),
			r.XToXY.String(),
			r.YToXY.String(),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
