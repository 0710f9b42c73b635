// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package simulate runs the external coalescent simulator (msprime) on a
// demography.Model.  A Python driver is rendered from the model and executed
// as a subprocess; it writes a .trees file, a VCF, and the text tables read
// by treeseq.Load.
package simulate

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/coaltract/demography"
	pkgerrors "github.com/pkg/errors"
)

// DefaultPython is the interpreter used when Opts.Python is empty.
const DefaultPython = "python3"

// Opts controls Run.
type Opts struct {
	// Python is the interpreter with msprime installed.
	Python string
	// OutDir receives the outputs.  It defaults to the current directory.
	OutDir string
	// ID identifies the run in the output names.  It defaults to "1".
	ID string
	// DryRun writes the driver script without executing it.
	DryRun bool
}

// Result lists the files of a run.
type Result struct {
	Prefix    string
	Script    string
	Trees     string
	VCF       string
	TablesDir string
}

func outputs(dir, prefix string) Result {
	base := filepath.Join(dir, prefix)
	return Result{
		Prefix:    prefix,
		Script:    base + ".py",
		Trees:     base + ".trees",
		VCF:       base + ".vcf",
		TablesDir: base + ".tables",
	}
}

// Run writes the driver script for m and, unless opts.DryRun, executes it.
// The interpreter's output is logged line by line.  Canceling ctx kills the
// interpreter.
func Run(ctx context.Context, m *demography.Model, opts Opts) (Result, error) {
	if opts.Python == "" {
		opts.Python = DefaultPython
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	if opts.ID == "" {
		opts.ID = "1"
	}
	res := outputs(opts.OutDir, m.FilePrefix(opts.ID))
	script, err := Script(m, opts.OutDir, res.Prefix)
	if err != nil {
		return res, err
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return res, pkgerrors.Wrapf(err, "simulate: create %s", opts.OutDir)
	}
	if err := writeScript(ctx, res.Script, script); err != nil {
		return res, pkgerrors.Wrapf(err, "simulate: write %s", res.Script)
	}
	if opts.DryRun {
		log.Printf("simulate: wrote %s (dry run)", res.Script)
		return res, nil
	}
	log.Printf("simulate: running %s %s", opts.Python, res.Script)
	stdout := &lineLogger{printf: log.Printf}
	stderr := &lineLogger{printf: log.Error.Printf}
	cmd := exec.CommandContext(ctx, opts.Python, res.Script)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err = cmd.Run()
	stdout.flush()
	stderr.flush()
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return res, pkgerrors.Wrapf(err, "simulate: %s %s", opts.Python, res.Script)
		}
		return res, errors.E(errors.Unavailable, "simulate: start "+opts.Python, err)
	}
	log.Printf("simulate: wrote %s, %s and %s", res.Trees, res.VCF, res.TablesDir)
	return res, nil
}

func writeScript(ctx context.Context, path, script string) error {
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	e := errors.Once{}
	_, err = io.WriteString(out.Writer(ctx), script)
	e.Set(err)
	e.Set(out.Close(ctx))
	return e.Err()
}

// lineLogger logs each complete line written to it.
type lineLogger struct {
	printf  func(string, ...interface{})
	partial []byte
}

func (l *lineLogger) Write(p []byte) (int, error) {
	n := len(p)
	for {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			break
		}
		l.partial = append(l.partial, p[:i]...)
		l.printf("simulate: %s", l.partial)
		l.partial = l.partial[:0]
		p = p[i+1:]
	}
	l.partial = append(l.partial, p...)
	return n, nil
}

func (l *lineLogger) flush() {
	if len(l.partial) > 0 {
		l.printf("simulate: %s", l.partial)
		l.partial = l.partial[:0]
	}
}
