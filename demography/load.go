package demography

import (
	"context"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
)

// Parse decodes a TOML model and validates it.  Unknown keys are rejected.
func Parse(r io.Reader) (*Model, error) {
	m := &Model{}
	md, err := toml.NewDecoder(r).Decode(m)
	if err != nil {
		return nil, errors.E(errors.Invalid, "demography: parse", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.E(errors.Invalid, "demography: unknown keys: "+strings.Join(keys, ", "))
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads a model from path, or returns the preset of that name if path
// has the form "preset:<name>".
func Load(ctx context.Context, path string) (m *Model, err error) {
	if name := strings.TrimPrefix(path, "preset:"); name != path {
		return Preset(name)
	}
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if m, err = Parse(in.Reader(ctx)); err != nil {
		return nil, errors.E(err, path)
	}
	log.Debug.Printf("demography: loaded model %s from %s: %d populations, %d events",
		m.Name, path, len(m.Populations), len(m.Events()))
	return m, nil
}

// Write encodes m as TOML.
func (m *Model) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(m)
}
