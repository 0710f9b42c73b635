package treeseq

import (
	"context"
	"io"
	"os"

	gerrors "github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Table file base names within a tree sequence directory.
const (
	NodesFile       = "nodes.tsv"
	EdgesFile       = "edges.tsv"
	PopulationsFile = "populations.tsv"
	MigrationsFile  = "migrations.tsv"
	SitesFile       = "sites.tsv"
	MutationsFile   = "mutations.tsv"
)

// LoadOpts controls Load.
type LoadOpts struct {
	// SequenceLength overrides the genome length.  If zero, the largest edge
	// or migration right end is used.
	SequenceLength float64
}

// Load reads the tables in dir and builds a TreeSequence.  The nodes, edges
// and populations tables are required; the others default to empty.
func Load(ctx context.Context, dir string, opts LoadOpts) (*TreeSequence, error) {
	tables := Tables{SequenceLength: opts.SequenceLength}
	readers := []struct {
		name     string
		required bool
		read     func(r *tsv.Reader) error
	}{
		{NodesFile, true, func(r *tsv.Reader) error {
			for {
				var row Node
				if err := r.Read(&row); err != nil {
					return eofOK(err)
				}
				tables.Nodes = append(tables.Nodes, row)
			}
		}},
		{EdgesFile, true, func(r *tsv.Reader) error {
			for {
				var row Edge
				if err := r.Read(&row); err != nil {
					return eofOK(err)
				}
				tables.Edges = append(tables.Edges, row)
			}
		}},
		{PopulationsFile, true, func(r *tsv.Reader) error {
			for {
				var row Population
				if err := r.Read(&row); err != nil {
					return eofOK(err)
				}
				tables.Populations = append(tables.Populations, row)
			}
		}},
		{MigrationsFile, false, func(r *tsv.Reader) error {
			for {
				var row Migration
				if err := r.Read(&row); err != nil {
					return eofOK(err)
				}
				tables.Migrations = append(tables.Migrations, row)
			}
		}},
		{SitesFile, false, func(r *tsv.Reader) error {
			for {
				var row Site
				if err := r.Read(&row); err != nil {
					return eofOK(err)
				}
				tables.Sites = append(tables.Sites, row)
			}
		}},
		{MutationsFile, false, func(r *tsv.Reader) error {
			for {
				var row Mutation
				if err := r.Read(&row); err != nil {
					return eofOK(err)
				}
				tables.Mutations = append(tables.Mutations, row)
			}
		}},
	}
	for _, tr := range readers {
		path, err := findTable(ctx, dir, tr.name)
		if err != nil {
			return nil, err
		}
		if path == "" {
			if tr.required {
				return nil, gerrors.E(gerrors.NotExist, "treeseq.Load: missing table", file.Join(dir, tr.name))
			}
			continue
		}
		if err := readTable(ctx, path, tr.read); err != nil {
			return nil, errors.Wrapf(err, "treeseq.Load: %s", path)
		}
	}
	log.Debug.Printf("treeseq.Load %s: %d nodes, %d edges, %d migrations, %d sites",
		dir, len(tables.Nodes), len(tables.Edges), len(tables.Migrations), len(tables.Sites))
	ts, err := New(tables)
	if err != nil {
		return nil, errors.Wrapf(err, "treeseq.Load: %s", dir)
	}
	return ts, nil
}

func eofOK(err error) error {
	if err == io.EOF {
		return nil
	}
	return err
}

// findTable returns the path of table name in dir, trying the gzipped
// variant second.  It returns "" if neither exists.
func findTable(ctx context.Context, dir, name string) (string, error) {
	for _, p := range []string{file.Join(dir, name), file.Join(dir, name+".gz")} {
		_, err := file.Stat(ctx, p)
		if err == nil {
			return p, nil
		}
		if !gerrors.Is(gerrors.NotExist, err) && !os.IsNotExist(err) {
			return "", err
		}
	}
	return "", nil
}

func readTable(ctx context.Context, path string, fn func(r *tsv.Reader) error) (err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(in.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return err
		}
		defer gz.Close() // nolint: errcheck
		reader = gz
	}
	r := tsv.NewReader(reader)
	r.HasHeaderRow = true
	r.UseHeaderNames = true
	return fn(r)
}
