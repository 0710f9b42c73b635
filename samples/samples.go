// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package samples names the sampled individuals and haplotypes of a tree
// sequence after their populations, and writes the migration-event files
// consumed by ARGweaver-D.
package samples

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/tsv"
	"github.com/grailbio/coaltract/treeseq"
)

// Label names one sampled individual.
type Label struct {
	// Name is "<pop>_<k>", k counting the individuals of the population from
	// zero.
	Name       string
	Population int
	// Nodes are the individual's sample nodes in haplotype order.
	Nodes []int
}

// Haplotype names one sample node.
type Haplotype struct {
	// Name is "<individual>_<h>", h counting from one.
	Name string
	Node int
}

// Labels names the sampled individuals of ts in order of their first sample
// node.  Population names come from the tree sequence's population table.
// A sample node that belongs to no individual is labeled on its own.
func Labels(ts *treeseq.TreeSequence) []Label {
	pops := ts.Populations()
	byID := map[int]treeseq.Individual{}
	for _, ind := range ts.Individuals() {
		byID[ind.ID] = ind
	}
	counts := make(map[int]int)
	seen := map[int]bool{}
	var labels []Label
	add := func(pop int, nodes []int) {
		labels = append(labels, Label{
			Name:       fmt.Sprintf("%s_%d", pops.Name(pop), counts[pop]),
			Population: pop,
			Nodes:      nodes,
		})
		counts[pop]++
	}
	for _, u := range ts.Samples() {
		n := ts.Node(u)
		if n.Individual == treeseq.NullNode {
			add(n.Population, []int{u})
			continue
		}
		if seen[n.Individual] {
			continue
		}
		seen[n.Individual] = true
		ind := byID[n.Individual]
		add(ind.Population, ind.Nodes)
	}
	return labels
}

// Haplotypes names every sample node after its individual's label.
func Haplotypes(labels []Label) []Haplotype {
	var haps []Haplotype
	for _, l := range labels {
		for h, u := range l.Nodes {
			haps = append(haps, Haplotype{Name: fmt.Sprintf("%s_%d", l.Name, h+1), Node: u})
		}
	}
	return haps
}

// WriteLabels writes one line per label: name, population name and the
// comma-separated sample nodes.
func WriteLabels(w io.Writer, pops *treeseq.PopulationTable, labels []Label) error {
	tw := tsv.NewWriter(w)
	for _, l := range labels {
		nodes := make([]string, len(l.Nodes))
		for i, u := range l.Nodes {
			nodes[i] = strconv.Itoa(u)
		}
		tw.WriteString(l.Name)
		tw.WriteString(pops.Name(l.Population))
		tw.WriteString(strings.Join(nodes, ","))
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}
