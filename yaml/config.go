// Package yaml loads extraction heuristics from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/artex"
	yamlv3 "gopkg.in/yaml.v3"
)

// LoadConfig reads the YAML file at path over artex.DefaultConfig and
// validates the result. Keys absent from the file keep their defaults;
// unknown keys are rejected with EINVALID. Durations use Go syntax
// ("72h").
func LoadConfig(path string) (artex.Config, error) {
	cfg := artex.DefaultConfig()

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, artex.Errorf(artex.ENOTFOUND, "config file %s not found", path)
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := Decode(bytes.NewReader(b), &cfg); err != nil {
		return artex.DefaultConfig(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays the YAML document read from r on cfg and validates the
// result. An empty document leaves cfg unchanged.
func Decode(r io.Reader, cfg *artex.Config) error {
	dec := yamlv3.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return artex.Errorf(artex.EINVALID, "parse yaml: %v", err)
	}
	return cfg.Validate()
}
