// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*
bio-coaltract simulates tree sequences under demographic models with msprime
and extracts genomic tracts from them: the tracts carried by migrating
lineages, the tracts where two samples coalesce inside a population or below
the root, and summary statistics over them.

Sample usage:

    bio-coaltract simulate -out sims preset:pulse
    bio-coaltract migrating -source B -dest A -time 1000 -out b2a.bed.gz sims/<prefix>.tables
    bio-coaltract summary -source B -dest A -time 1000 sims/<prefix>.tables
    bio-coaltract coalescing -pop A -nodes 0,1 sims/<prefix>.tables

    bio-coaltract simulate -out sims -rates 0,0.05,0.1 preset:intro > runs.txt
    bio-coaltract tmrca -pops A,B,C $(cat runs.txt) > tmrca_data.csv
*/
package main

import (
	"github.com/grailbio/coaltract/cmd/bio-coaltract/cmd"
)

func main() {
	cmd.Run()
}
