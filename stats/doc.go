// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package stats computes summary statistics over a tree sequence: the
// amount of introgressed sequence carried by migration tracts, and TMRCA
// ratios of a sample triple at random positions.
package stats
