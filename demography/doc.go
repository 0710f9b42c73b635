// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*Package demography describes the demographic model a tree sequence is
  simulated under: populations, population splits, continuous migration
  and migration pulses, the samples drawn, and the genome parameters.

  A Model is read from a TOML file, e.g.

    name = "Mig"
    sequence_length = 1e4
    recombination_rate = 1e-8
    mutation_rate = 2e-8
    mutation_model = "jc69"
    ploidy = 2

    [[populations]]
    name = "Main"
    initial_size = 10000

    [[populations]]
    name = "Ghost"
    initial_size = 10000

    [[populations]]
    name = "Anc"
    initial_size = 10000

    [[splits]]
    time = 5000
    derived = ["Main", "Ghost"]
    ancestral = "Anc"

    [[migrations]]
    source = "Main"
    dest = "Ghost"
    rate = 0.029

    [[samples]]
    population = "Main"
    count = 10

  or taken from one of the built-in presets (see Preset).  Populations are
  numbered in declaration order, which is the order the simulator assigns
  population ids.  Times are in generations before the present.
*/
package demography
