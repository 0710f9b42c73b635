// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*
Package treeseq loads tree sequences produced by a coalescent simulator and
walks their local trees.

A tree sequence is a set of tables (nodes, edges, populations and optionally
migrations, sites and mutations).  The local tree at a genome position is
defined by the edges whose [left, right) span contains it; consecutive local
trees differ by a few edge removals and insertions, so TreeIterator visits
all of them left to right in a single pass over two sorted edge orders.

Tables are read from a directory of header-named TSV files, one per table:

  nodes.tsv        id is_sample time population individual
  edges.tsv        left right parent child
  populations.tsv  id name description
  migrations.tsv   left right node source dest time       (optional)
  sites.tsv        id position ancestral_state             (optional)
  mutations.tsv    site node derived_state                 (optional)

Each file may be gzipped (nodes.tsv.gz etc).  Population ids are row
numbers; the population name is the only supported way to refer to a
population from outside this package (see PopulationTable).
*/
package treeseq
