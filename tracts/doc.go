// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package tracts extracts maximal genomic tracts over which a condition on
// the local genealogy holds, e.g. "samples a and b coalesce inside
// population A" or "a and b share an ancestor below the root".
//
// Scan consumes an ordered, gap-free sequence of (interval, local tree)
// segments exactly once, keeping only the left end of the open tract, so it
// works as a streaming consumer.  Migration records, which already carry
// their own bounds, are filtered by MigrationTracts instead.
package tracts
