package tracts_test

import (
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/coaltract/interval"
	"github.com/grailbio/coaltract/tracts"
	"github.com/grailbio/coaltract/treeseq/treeseqtest"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestMigrationTracts(t *testing.T) {
	ts := treeseqtest.ThreePopulation(t)
	tests := []struct {
		name string
		f    tracts.MigrationFilter
		want []interval.Tract
	}{
		{"all", tracts.MigrationFilter{},
			[]interval.Tract{{Left: 0, Right: 30}, {Left: 20, Right: 50}, {Left: 60, Right: 80}}},
		{"BtoA", tracts.MigrationFilter{Source: "B", Dest: "A"},
			[]interval.Tract{{Left: 0, Right: 30}, {Left: 20, Right: 50}}},
		{"fromC", tracts.MigrationFilter{Source: "C"},
			[]interval.Tract{{Left: 60, Right: 80}}},
		{"toB", tracts.MigrationFilter{Dest: "B"}, []interval.Tract{}},
		{"time", tracts.MigrationFilter{Dest: "A", Time: 7, HasTime: true},
			[]interval.Tract{{Left: 60, Right: 80}}},
		{"zerotime", tracts.MigrationFilter{Time: 0, HasTime: true}, []interval.Tract{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tracts.MigrationTracts(ts.Migrations(), ts.Populations(), tt.f)
			assert.NoError(t, err)
			expect.EQ(t, got, tt.want)
		})
	}
}

func TestMigrationTractsUnion(t *testing.T) {
	ts := treeseqtest.ThreePopulation(t)
	got, err := tracts.MigrationTracts(ts.Migrations(), ts.Populations(), tracts.MigrationFilter{Source: "B"})
	assert.NoError(t, err)
	u := interval.NewUnion(got)
	expect.EQ(t, u.Tracts(), []interval.Tract{{Left: 0, Right: 50}})
	expect.EQ(t, interval.TotalLen(got), interval.PosType(60))
}

func TestMigrationRecords(t *testing.T) {
	ts := treeseqtest.ThreePopulation(t)
	recs, err := tracts.MigrationRecords(ts.Migrations(), ts.Populations(), tracts.MigrationFilter{Source: "B"})
	assert.NoError(t, err)
	expect.EQ(t, len(recs), 2)
	expect.EQ(t, recs[1].Node, 1)

	_, err = tracts.MigrationTracts(ts.Migrations(), ts.Populations(), tracts.MigrationFilter{Dest: "Ghost"})
	expect.True(t, errors.Is(errors.NotExist, err), "err: %v", err)
}
