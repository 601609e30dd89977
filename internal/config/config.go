// Package config loads the optional grayproc.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/erinpentecost/grayproc/internal/logging"
	"github.com/erinpentecost/grayproc/internal/point"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "grayproc.yaml"

// Config holds the settings read from grayproc.yaml.
type Config struct {
	// Workers is the number of row bands convolved at once.
	Workers  int    `yaml:"workers"`
	LogLevel string `yaml:"log_level"`
	// OutputDir receives results; empty means next to the input file.
	OutputDir    string `yaml:"output_dir"`
	ConvertColor bool   `yaml:"convert_color"`

	Brightness int     `yaml:"brightness"`
	Contrast   float64 `yaml:"contrast"`
	Threshold  int     `yaml:"threshold"`
}

// Default is the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Workers:   4,
		LogLevel:  "info",
		Contrast:  1.0,
		Threshold: 128,
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := Decode(f, cfg); err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays the YAML document in r onto cfg and validates the result.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	return cfg.Validate()
}

// Validate rejects settings no operation could run with.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Threshold < 0 || c.Threshold > 255 {
		return fmt.Errorf("threshold %d outside 0..255", c.Threshold)
	}
	if err := point.CheckFactor(c.Contrast); err != nil {
		return fmt.Errorf("contrast: %w", err)
	}
	return nil
}
