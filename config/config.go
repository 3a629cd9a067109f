// Package config holds the run configuration of the tspnet tools: problem
// size, network dimensions, inference hyperparameters and execution knobs.
//
// Configurations are YAML documents. Keys that are absent keep their
// Default value; unknown keys are rejected.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tspnet/ptrnet"
	"github.com/katalvlaran/tspnet/tsp"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full set of run parameters.
type Config struct {
	Cities int `yaml:"cities"` // N, cities per instance
	Batch  int `yaml:"batch"`  // instances per batch

	Embed  int `yaml:"embed"`
	Hidden int `yaml:"hidden"`

	ClipLogits float64 `yaml:"clip_logits"`
	SoftmaxT   float64 `yaml:"softmax_t"`
	Glimpses   int     `yaml:"n_glimpse"`

	// InitMin and InitMax bound the uniform parameter initialization.
	InitMin float64 `yaml:"init_min"`
	InitMax float64 `yaml:"init_max"`

	// DecodeType is "greedy" or "sampling".
	DecodeType string `yaml:"decode_type"`

	// Device is an execution hint; it is logged and otherwise ignored.
	Device string `yaml:"device"`

	Seed    uint64 `yaml:"seed"`
	Workers int    `yaml:"workers"` // 0 ⇒ GOMAXPROCS

	// MaxExactCities is the ceiling of the exact solver.
	MaxExactCities int `yaml:"max_exact_cities"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Cities:         20,
		Batch:          512,
		Embed:          128,
		Hidden:         128,
		ClipLogits:     10,
		SoftmaxT:       1.0,
		Glimpses:       1,
		InitMin:        -0.08,
		InitMax:        0.08,
		DecodeType:     "greedy",
		Device:         "cpu",
		Seed:           1,
		Workers:        0,
		MaxExactCities: tsp.DefaultMaxCities,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Cities < 1:
		return errors.Wrapf(ErrInvalidConfig, "cities=%d must be at least 1", c.Cities)
	case c.Batch < 1:
		return errors.Wrapf(ErrInvalidConfig, "batch=%d must be at least 1", c.Batch)
	case c.Embed < 1 || c.Hidden < 1:
		return errors.Wrapf(ErrInvalidConfig, "embed=%d hidden=%d must be positive", c.Embed, c.Hidden)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "workers=%d must be non-negative", c.Workers)
	case c.MaxExactCities < 2 || c.MaxExactCities > tsp.HardMaxCities:
		return errors.Wrapf(ErrInvalidConfig, "max_exact_cities=%d must be in [2, %d]", c.MaxExactCities, tsp.HardMaxCities)
	case !(c.InitMin <= c.InitMax):
		return errors.Wrapf(ErrInvalidConfig, "init range [%v, %v] is empty", c.InitMin, c.InitMax)
	}
	if err := c.Hyper().Validate(); err != nil {
		return invalid(err)
	}
	if _, err := c.Policy(); err != nil {
		return invalid(err)
	}
	return nil
}

// invalid marks err as a configuration error; both ErrInvalidConfig and the
// sentinels inside err stay matchable with errors.Is.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}

// Dims returns the network widths.
func (c Config) Dims() ptrnet.Dims {
	return ptrnet.Dims{Embed: c.Embed, Hidden: c.Hidden}
}

// Hyper returns the inference hyperparameters.
func (c Config) Hyper() ptrnet.Hyper {
	return ptrnet.Hyper{ClipLogits: c.ClipLogits, SoftmaxTemperature: c.SoftmaxT, Glimpses: c.Glimpses}
}

// Policy returns the selector named by DecodeType.
func (c Config) Policy() (ptrnet.Selector, error) {
	return ptrnet.ParsePolicy(c.DecodeType)
}

// Parse decodes a YAML document over Default and validates the result.
// An empty document yields Default.
func Parse(data []byte) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, invalid(err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: reading %q", path)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, errors.WithMessagef(err, "config file %q", path)
	}
	return c, nil
}

// Marshal renders c as YAML; Parse(Marshal(c)) returns c.
func (c Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "config: marshal")
	}
	return out, nil
}
