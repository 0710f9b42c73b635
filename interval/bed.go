package interval

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/klauspost/compress/gzip"
)

// getTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved.  Any (group of) characters <= ' ' is
// treated as a delimiter.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// BEDOpts defines behavior of this package's BED-loading function(s).
type BEDOpts struct {
	// Invert causes the complement of each chromosome's interval-union to be
	// returned, within [0, SequenceLength).
	Invert bool
	// SequenceLength is required when Invert is set.
	SequenceLength PosType
}

// BEDUnion is a chromosome-keyed collection of Unions.
type BEDUnion struct {
	nameMap map[string]*Union
	// names lists the chromosomes in file order.
	names []string
}

// Chroms returns the chromosome names in the order they appeared.
func (b *BEDUnion) Chroms() []string {
	return b.names
}

// Get returns the union for the given chromosome, or nil if the chromosome
// was not mentioned.
func (b *BEDUnion) Get(chrom string) *Union {
	return b.nameMap[chrom]
}

// ContainsByName checks whether pos on chromosome chrom is covered.
func (b *BEDUnion) ContainsByName(chrom string, pos PosType) bool {
	u := b.nameMap[chrom]
	if u == nil {
		return false
	}
	return u.Contains(pos)
}

func scanBEDUnion(scanner *bufio.Scanner, opts BEDOpts) (bedUnion BEDUnion, err error) {
	if opts.Invert && opts.SequenceLength <= 0 {
		err = errors.E(errors.Invalid, "interval.scanBEDUnion: Invert requires a positive SequenceLength")
		return
	}
	bedUnion.nameMap = make(map[string]*Union)
	var tokens [3][]byte
	lineIdx := 0
	prevChr := ""
	var chrTracts []Tract
	var prevStart PosType
	flush := func() {
		u := NewUnion(chrTracts)
		if opts.Invert {
			u = u.Invert(opts.SequenceLength)
		}
		bedUnion.nameMap[prevChr] = u
		bedUnion.names = append(bedUnion.names, prevChr)
	}
	for scanner.Scan() {
		lineIdx++
		curLine := scanner.Bytes()
		if len(curLine) > 0 && curLine[0] == '#' {
			continue
		}
		nToken := getTokens(tokens[:], curLine)
		if nToken != 3 {
			if nToken == 0 {
				continue
			}
			err = fmt.Errorf("interval.scanBEDUnion: line %d has fewer tokens than expected", lineIdx)
			return
		}
		var start, end PosType
		if start, err = strconv.ParseFloat(gunsafe.BytesToString(tokens[1]), 64); err != nil {
			return
		}
		if end, err = strconv.ParseFloat(gunsafe.BytesToString(tokens[2]), 64); err != nil {
			return
		}
		if start < 0 || end < start {
			err = fmt.Errorf("interval.scanBEDUnion: invalid coordinate pair on line %d", lineIdx)
			return
		}
		if prevChr != gunsafe.BytesToString(tokens[0]) {
			if prevChr != "" {
				flush()
			}
			// tokens[0] points into the scanner buffer; copy before keeping it.
			prevChr = string(tokens[0])
			if _, found := bedUnion.nameMap[prevChr]; found {
				err = fmt.Errorf("interval.scanBEDUnion: unsorted input (split chromosome %v)", prevChr)
				return
			}
			chrTracts = nil
			prevStart = start
		}
		if start < prevStart {
			err = fmt.Errorf("interval.scanBEDUnion: unsorted input on line %d", lineIdx)
			return
		}
		prevStart = start
		chrTracts = append(chrTracts, Tract{start, end})
	}
	if err = scanner.Err(); err != nil {
		return
	}
	if prevChr != "" {
		flush()
	}
	return
}

// NewBEDUnion loads the intervals from a sorted (by chromosome, then start)
// BED, merging touching/overlapping intervals and eliminating empty ones in
// the process.
func NewBEDUnion(reader io.Reader, opts BEDOpts) (bedUnion BEDUnion, err error) {
	scanner := bufio.NewScanner(reader)
	if bedUnion, err = scanBEDUnion(scanner, opts); err != nil {
		return
	}
	var total PosType
	for _, u := range bedUnion.nameMap {
		total += u.Len()
	}
	log.Debug.Printf("BED loaded, %d chromosome(s), %v base(s) covered", len(bedUnion.names), total)
	return
}

// NewBEDUnionFromPath is a wrapper for NewBEDUnion that takes a path instead
// of an io.Reader.  Gzipped input is detected by file extension.
func NewBEDUnionFromPath(ctx context.Context, path string, opts BEDOpts) (bedUnion BEDUnion, err error) {
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(infile.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	return NewBEDUnion(reader, opts)
}

// WriteBED writes the tracts as three-column BED lines on chromosome chrom.
func WriteBED(w io.Writer, chrom string, tracts []Tract) error {
	tw := tsv.NewWriter(w)
	for _, t := range tracts {
		tw.WriteString(chrom)
		tw.WriteString(FormatPos(t.Left))
		tw.WriteString(FormatPos(t.Right))
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteBEDToPath is a wrapper for WriteBED that creates path, gzipping the
// output if the path ends in .gz.
func WriteBEDToPath(ctx context.Context, path, chrom string, tracts []Tract) error {
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "create", path)
	}
	e := errors.Once{}
	w := io.Writer(out.Writer(ctx))
	var gz *gzip.Writer
	if fileio.DetermineType(path) == fileio.Gzip {
		gz = gzip.NewWriter(w)
		w = gz
	}
	e.Set(WriteBED(w, chrom, tracts))
	if gz != nil {
		e.Set(gz.Close())
	}
	e.Set(out.Close(ctx))
	if err := e.Err(); err != nil {
		return errors.E(err, "write", path)
	}
	return nil
}
