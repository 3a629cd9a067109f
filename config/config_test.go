package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspnet/config"
	"github.com/katalvlaran/tspnet/ptrnet"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	require.Equal(t, 20, c.Cities)
	require.Equal(t, 512, c.Batch)
	require.Equal(t, ptrnet.Dims{Embed: 128, Hidden: 128}, c.Dims())
	require.Equal(t, ptrnet.Hyper{ClipLogits: 10, SoftmaxTemperature: 1, Glimpses: 1}, c.Hyper())
	sel, err := c.Policy()
	require.NoError(t, err)
	require.Equal(t, ptrnet.Greedy{}, sel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"cities", func(c *config.Config) { c.Cities = 0 }},
		{"batch", func(c *config.Config) { c.Batch = -1 }},
		{"hidden", func(c *config.Config) { c.Hidden = 0 }},
		{"clip", func(c *config.Config) { c.ClipLogits = 0 }},
		{"temperature", func(c *config.Config) { c.SoftmaxT = -1 }},
		{"glimpses", func(c *config.Config) { c.Glimpses = -2 }},
		{"init range", func(c *config.Config) { c.InitMin, c.InitMax = 1, 0 }},
		{"decode type", func(c *config.Config) { c.DecodeType = "beam" }},
		{"workers", func(c *config.Config) { c.Workers = -1 }},
		{"exact ceiling", func(c *config.Config) { c.MaxExactCities = 99 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := config.Default()
			tc.mutate(&c)
			require.ErrorIs(t, c.Validate(), config.ErrInvalidConfig)
		})
	}
}

func TestParse(t *testing.T) {
	c, err := config.Parse([]byte("cities: 8\ndecode_type: sampling\nn_glimpse: 0\n"))
	require.NoError(t, err)
	want := config.Default()
	want.Cities = 8
	want.DecodeType = "sampling"
	want.Glimpses = 0
	require.Equal(t, want, c)

	c, err = config.Parse(nil)
	require.NoError(t, err)
	require.Equal(t, config.Default(), c)

	_, err = config.Parse([]byte("citys: 8\n"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Parse([]byte("cities: [1, 2\n"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Parse([]byte("batch: 0\n"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestValidate_KeepsCause(t *testing.T) {
	c := config.Default()
	c.DecodeType = "beam"
	err := c.Validate()
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	require.ErrorIs(t, err, ptrnet.ErrUnknownPolicy)
	require.Contains(t, err.Error(), "beam")

	c = config.Default()
	c.ClipLogits = -1
	err = c.Validate()
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	require.ErrorIs(t, err, ptrnet.ErrInvalidInit)

	_, err = config.Parse([]byte("decode_type: beam\n"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	require.ErrorIs(t, err, ptrnet.ErrUnknownPolicy)
}

func TestMarshalRoundTrip(t *testing.T) {
	c := config.Default()
	c.Cities = 12
	c.SoftmaxT = 2.5
	c.Seed = 42
	c.Device = "cuda:0"
	data, err := c.Marshal()
	require.NoError(t, err)

	back, err := config.Parse(data)
	require.NoError(t, err)
	require.Equal(t, c, back)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch: 4\nhidden: 16\nembed: 16\n"), 0o600))
	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, c.Batch)
	require.Equal(t, ptrnet.Dims{Embed: 16, Hidden: 16}, c.Dims())

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
