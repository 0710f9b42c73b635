package stats_test

import (
	"bytes"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/coaltract/interval"
	"github.com/grailbio/coaltract/stats"
	"github.com/grailbio/coaltract/tracts"
	"github.com/grailbio/coaltract/treeseq"
	"github.com/grailbio/coaltract/treeseq/treeseqtest"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestDiv(t *testing.T) {
	expect.EQ(t, stats.Div(1, 4), stats.Ratio{Value: 0.25, Defined: true})
	expect.EQ(t, stats.Div(0, 4), stats.Ratio{Value: 0, Defined: true})
	expect.EQ(t, stats.Div(1, 0), stats.Undefined)
	expect.EQ(t, stats.Div(0, 0), stats.Undefined)
	expect.EQ(t, stats.Div(1, -2), stats.Undefined)
	expect.EQ(t, stats.Div(math.NaN(), 2), stats.Undefined)
	expect.EQ(t, stats.Div(1, math.Inf(1)), stats.Undefined)
	expect.EQ(t, stats.Undefined.String(), "NA")
	expect.EQ(t, stats.Div(1, 8).String(), "0.125")
	expect.EQ(t, stats.FormatFloat(math.NaN()), "NA")
	expect.EQ(t, stats.FormatFloat(50), "50")
}

func TestTMRCAAt(t *testing.T) {
	ts := treeseqtest.ThreePopulation(t)
	tr := stats.Triple{A: 0, B: 1, C: 2}
	for _, tt := range []struct {
		pos          float64
		x, y, xy     float64
		xToXY, yToXY float64
	}{
		{10, 10, 40, 50, 0.2, 0.8},
		{50, 20, 30, 50, 0.4, 0.6},
		{80, 60, -10, 50, 1.2, -0.2},
	} {
		row := stats.TMRCAAt(ts.At(tt.pos), tr)
		expect.EQ(t, row.X, tt.x, "pos %v", tt.pos)
		expect.EQ(t, row.Y, tt.y, "pos %v", tt.pos)
		expect.EQ(t, row.XY, tt.xy, "pos %v", tt.pos)
		expect.True(t, row.XToXY.Defined)
		expect.True(t, math.Abs(row.XToXY.Value-tt.xToXY) < 1e-12, "pos %v: %v", tt.pos, row.XToXY)
		expect.True(t, math.Abs(row.YToXY.Value-tt.yToXY) < 1e-12, "pos %v: %v", tt.pos, row.YToXY)
	}
}

func TestTMRCAUndefined(t *testing.T) {
	ts := treeseqtest.ThreePopulation(t)
	// The MRCA of a node with itself is the node, at time zero.
	row := stats.TMRCAAt(ts.At(10), stats.Triple{A: 0, B: 0, C: 0})
	expect.EQ(t, row.XY, 0.0)
	expect.EQ(t, row.XToXY, stats.Undefined)
	expect.EQ(t, row.YToXY, stats.Undefined)
}

func TestTripleOf(t *testing.T) {
	ts := treeseqtest.ThreePopulation(t)
	tr, err := stats.TripleOf(ts, "C", "B", "A")
	assert.NoError(t, err)
	expect.EQ(t, tr, stats.Triple{A: 2, B: 1, C: 0})
	_, err = stats.TripleOf(ts, "A", "B", "Ghost")
	expect.True(t, errors.Is(errors.NotExist, err), "err: %v", err)
}

func TestSampleTMRCA(t *testing.T) {
	ts := treeseqtest.ThreePopulation(t)
	tr := stats.Triple{A: 0, B: 1, C: 2}
	rows, err := stats.SampleTMRCA(ts, tr, 100, rand.New(rand.NewSource(42)))
	assert.NoError(t, err)
	expect.EQ(t, len(rows), 100)
	for i, row := range rows {
		expect.EQ(t, row.ID, i+1)
		expect.True(t, row.Position >= 0 && row.Position < ts.SequenceLength(), "pos %v", row.Position)
		want := stats.TMRCAAt(ts.At(row.Position), tr)
		expect.EQ(t, row.X, want.X, "row %d", row.ID)
		expect.EQ(t, row.XY, want.XY, "row %d", row.ID)
	}

	// Same seed, same positions.
	again, err := stats.SampleTMRCA(ts, tr, 100, rand.New(rand.NewSource(42)))
	assert.NoError(t, err)
	expect.EQ(t, again, rows)

	_, err = stats.SampleTMRCA(ts, stats.Triple{A: 0, B: 1, C: 99}, 1, rand.New(rand.NewSource(0)))
	expect.True(t, errors.Is(errors.Invalid, err), "err: %v", err)
}

func TestSampleTMRCAZeroLength(t *testing.T) {
	ts, err := treeseq.New(treeseq.Tables{
		Populations: []treeseq.Population{{ID: 0, Name: "A"}},
		Nodes: []treeseq.Node{
			{ID: 0, IsSample: 1, Population: 0, Individual: treeseq.NullNode},
			{ID: 1, IsSample: 1, Population: 0, Individual: treeseq.NullNode},
			{ID: 2, IsSample: 1, Population: 0, Individual: treeseq.NullNode},
		},
	})
	assert.NoError(t, err)
	expect.EQ(t, ts.SequenceLength(), 0.0)
	rows, err := stats.SampleTMRCA(ts, stats.Triple{A: 0, B: 1, C: 2}, 3, rand.New(rand.NewSource(1)))
	expect.True(t, errors.Is(errors.Invalid, err), "err: %v", err)
	expect.EQ(t, len(rows), 0)
}

func TestWriteTMRCACSV(t *testing.T) {
	rows := []stats.TMRCARow{
		{ID: 1, Param: 0.01, X: 10, Y: 40, XY: 50, XToXY: stats.Div(10, 50), YToXY: stats.Div(40, 50)},
		{ID: 2, Param: 0.01, X: 0, Y: 0, XY: 0, XToXY: stats.Undefined, YToXY: stats.Undefined},
		{ID: 3, Param: 0.01, X: math.NaN(), Y: math.NaN(), XY: math.NaN()},
	}
	var buf bytes.Buffer
	assert.NoError(t, stats.WriteTMRCACSV(&buf, "mig_rate", rows))
	expect.EQ(t, buf.String(), strings.Join([]string{
		"id,mig_rate,tmrca_X,tmrca_Y,tmrca_XY,tmrca_XtoXY,tmrca_YtoXY",
		"1,0.01,10,40,50,0.2,0.8",
		"2,0.01,0,0,0,NA,NA",
		"3,0.01,NA,NA,NA,NA,NA",
		"",
	}, "\n"))

	buf.Reset()
	assert.NoError(t, stats.WriteTMRCACSV(&buf, "", nil))
	expect.EQ(t, buf.String(), "id,param,tmrca_X,tmrca_Y,tmrca_XY,tmrca_XtoXY,tmrca_YtoXY\n")
}

func TestSummarize(t *testing.T) {
	ts := treeseqtest.ThreePopulation(t)
	migs, err := tracts.MigrationTracts(ts.Migrations(), ts.Populations(),
		tracts.MigrationFilter{Source: "B", Dest: "A", Time: 5, HasTime: true})
	assert.NoError(t, err)
	s := stats.Summarize(ts, migs)
	expect.EQ(t, s, stats.Introgression{
		SequenceLength: 100,
		NumTracts:      2,
		TotalLength:    60,
		CoveredLength:  50,
		NumSites:       5,
		NumMutations:   5,
		SitesInTracts:  3,
		SitesPerTract:  []int{2, 2},
	})
	expect.EQ(t, s.Proportion(), 0.6)
	expect.EQ(t, s.CoveredProportion(), 0.5)

	var buf bytes.Buffer
	assert.NoError(t, stats.WriteSummary(&buf, s))
	expect.True(t, strings.Contains(buf.String(), "total_tract_length\t60\n"), buf.String())
	expect.True(t, strings.Contains(buf.String(), "sites_in_tracts\t3\n"), buf.String())
}

func TestSummarizeEmpty(t *testing.T) {
	ts := treeseqtest.ThreePopulation(t)
	s := stats.Summarize(ts, []interval.Tract{})
	expect.EQ(t, s.NumTracts, 0)
	expect.EQ(t, s.TotalLength, 0.0)
	expect.EQ(t, s.SitesInTracts, 0)
	expect.EQ(t, s.Proportion(), 0.0)
}

func TestTractLengths(t *testing.T) {
	expect.EQ(t, stats.TractLengths(nil), stats.LengthSummary{})
	expect.EQ(t, stats.TractLengths([]interval.Tract{{Left: 0, Right: 10}, {Left: 20, Right: 50}, {Left: 60, Right: 65}}),
		stats.LengthSummary{Count: 3, Total: 45, Mean: 15, Min: 5, Max: 30})
}
