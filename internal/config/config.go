// Package config loads an optional build manifest describing output
// defaults for a compilation, grounded on the corpus's depm.LoadModule
// TOML-decode-then-validate shape.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// Manifest is the on-disk shape of an optional `aotc.toml` build manifest,
// read from the path the CLI's --config flag names. Every field has a
// sensible zero value, so a missing manifest is equivalent to an empty one.
type Manifest struct {
	Output   string `toml:"output"`
	EmitIR   bool   `toml:"emit-ir"`
	LogLevel string `toml:"log-level"`
}

// Load reads and decodes the manifest at path. A missing file is not an
// error — it returns a zero-value Manifest — since the manifest is
// optional; a malformed one is.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	m := &Manifest{}
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}
