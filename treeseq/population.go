package treeseq

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// PopulationTable maps population names to ids and back.  It is built once,
// from the simulator's population list, and passed to the analyses that need
// it; callers should never assume a particular id for a name.
type PopulationTable struct {
	names []string
	ids   map[string]int
}

// NewPopulationTable builds a table where names[i] has id i.  Names must be
// unique.  Empty names are allowed but cannot be looked up.
func NewPopulationTable(names []string) (*PopulationTable, error) {
	p := &PopulationTable{
		names: append([]string(nil), names...),
		ids:   make(map[string]int, len(names)),
	}
	for id, name := range names {
		if name == "" {
			continue
		}
		if prev, ok := p.ids[name]; ok {
			return nil, errors.E(errors.Invalid,
				fmt.Sprintf("population name %q used by ids %d and %d", name, prev, id))
		}
		p.ids[name] = id
	}
	return p, nil
}

// Len returns the number of populations.
func (p *PopulationTable) Len() int {
	return len(p.names)
}

// Names returns the population names, indexed by id.
func (p *PopulationTable) Names() []string {
	return p.names
}

// ID returns the id of the named population.
func (p *PopulationTable) ID(name string) (int, bool) {
	id, ok := p.ids[name]
	return id, ok
}

// Lookup is like ID, but returns a NotExist error for unknown names.
func (p *PopulationTable) Lookup(name string) (int, error) {
	id, ok := p.ids[name]
	if !ok {
		return NullNode, errors.E(errors.NotExist, fmt.Sprintf("unknown population %q (have %v)", name, p.names))
	}
	return id, nil
}

// Name returns the name of population id.  Unnamed or out-of-range
// populations are reported as "pop<id>".
func (p *PopulationTable) Name(id int) string {
	if id >= 0 && id < len(p.names) && p.names[id] != "" {
		return p.names[id]
	}
	return fmt.Sprintf("pop%d", id)
}
