package samples

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/coaltract/treeseq"
)

// Hapmig describes one migration event for ARGweaver-D: the haplotypes that
// may carry migrant sequence from Source into Recipient at Time.
type Hapmig struct {
	Event      string
	Recipient  string
	Source     string
	Time       float64
	Haplotypes []string
}

// WriteHapmig writes one line per haplotype:
//
//   <event>_<hap>  <recipient id>  <source id>  <time>  <hap>
//
// Population ids are resolved through pops.
func WriteHapmig(w io.Writer, pops *treeseq.PopulationTable, h Hapmig) error {
	recipient, err := pops.Lookup(h.Recipient)
	if err != nil {
		return err
	}
	source, err := pops.Lookup(h.Source)
	if err != nil {
		return err
	}
	if h.Event == "" {
		return errors.E(errors.Invalid, "hapmig: empty event name")
	}
	tw := tsv.NewWriter(w)
	for _, hap := range h.Haplotypes {
		tw.WriteString(h.Event + "_" + hap)
		tw.WriteString(strconv.Itoa(recipient))
		tw.WriteString(strconv.Itoa(source))
		tw.WriteString(strconv.FormatFloat(h.Time, 'f', -1, 64))
		tw.WriteString(hap)
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// ReadSMCNames returns the haplotype names listed on the NAMES line of an
// ARGweaver .smc file.
func ReadSMCNames(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if fields[0] == "NAMES" {
			return fields[1:], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, errors.E(errors.NotExist, "smc: no NAMES line")
}
