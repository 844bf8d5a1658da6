package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	reporterrors "mcra/internal/errors"
)

// LoadFile merges a YAML config file into c. Keys absent from the file keep
// their current value. A missing file returns an error satisfying os.IsNotExist.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return reporterrors.Configf("parse %s: %v", path, err)
	}
	return nil
}
