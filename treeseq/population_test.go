package treeseq

import (
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestPopulationTable(t *testing.T) {
	p, err := NewPopulationTable([]string{"Anc", "A", "", "C"})
	assert.NoError(t, err)
	expect.EQ(t, p.Len(), 4)
	id, ok := p.ID("A")
	expect.True(t, ok)
	expect.EQ(t, id, 1)
	_, ok = p.ID("")
	expect.False(t, ok)
	expect.EQ(t, p.Name(3), "C")
	expect.EQ(t, p.Name(2), "pop2")
	expect.EQ(t, p.Name(-1), "pop-1")

	_, err = p.Lookup("B")
	expect.True(t, errors.Is(errors.NotExist, err))
	id, err = p.Lookup("Anc")
	assert.NoError(t, err)
	expect.EQ(t, id, 0)

	_, err = NewPopulationTable([]string{"A", "B", "A"})
	expect.True(t, errors.Is(errors.Invalid, err))
}
