package treeseq

import (
	"encoding/binary"
	"math"

	farm "github.com/dgryski/go-farm"
)

// rowHasher chains farm hashes over table rows.  Each row is serialized into
// buf and hashed with the running hash as the seed, so both the row contents
// and the row order contribute.
type rowHasher struct {
	h   uint64
	buf []byte
}

func (r *rowHasher) int(v int) {
	r.buf = binary.LittleEndian.AppendUint64(r.buf, uint64(int64(v)))
}

func (r *rowHasher) float(v float64) {
	r.buf = binary.LittleEndian.AppendUint64(r.buf, math.Float64bits(v))
}

func (r *rowHasher) string(s string) {
	r.int(len(s))
	r.buf = append(r.buf, s...)
}

func (r *rowHasher) endRow() {
	r.h = farm.Hash64WithSeed(r.buf, r.h)
	r.buf = r.buf[:0]
}

// endTable mixes in the row count so that rows cannot migrate between
// adjacent tables without changing the checksum.
func (r *rowHasher) endTable(n int) {
	r.int(n)
	r.endRow()
}

// Checksum returns a fingerprint of the tables and the sequence length.
// Reruns of a model with a fixed random seed yield equal checksums.
func (ts *TreeSequence) Checksum() uint64 {
	t := &ts.tables
	r := rowHasher{}
	r.float(ts.seqLen)
	r.endRow()
	for _, n := range t.Nodes {
		r.int(n.ID)
		r.int(n.IsSample)
		r.float(n.Time)
		r.int(n.Population)
		r.int(n.Individual)
		r.endRow()
	}
	r.endTable(len(t.Nodes))
	for _, e := range t.Edges {
		r.float(e.Left)
		r.float(e.Right)
		r.int(e.Parent)
		r.int(e.Child)
		r.endRow()
	}
	r.endTable(len(t.Edges))
	for _, p := range t.Populations {
		r.int(p.ID)
		r.string(p.Name)
		r.string(p.Description)
		r.endRow()
	}
	r.endTable(len(t.Populations))
	for _, m := range t.Migrations {
		r.float(m.Left)
		r.float(m.Right)
		r.int(m.Node)
		r.int(m.Source)
		r.int(m.Dest)
		r.float(m.Time)
		r.endRow()
	}
	r.endTable(len(t.Migrations))
	for _, s := range t.Sites {
		r.int(s.ID)
		r.float(s.Position)
		r.string(s.AncestralState)
		r.endRow()
	}
	r.endTable(len(t.Sites))
	for _, m := range t.Mutations {
		r.int(m.Site)
		r.int(m.Node)
		r.string(m.DerivedState)
		r.endRow()
	}
	r.endTable(len(t.Mutations))
	return r.h
}
