package dash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:5000", cfg.Backend.URL)
	assert.Equal(t, ModeSplit, cfg.Backend.Mode)
	assert.Equal(t, "localhost:8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Zero(t, cfg.IMDb.Year)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "titledash.yaml")
	config := []byte(`
backend:
  url: http://backend.local:5000/api
  mode: combined
  rate: 2.5
imdb:
  year: 2019
log:
  level: debug
  json: true
`)
	require.NoError(t, os.WriteFile(file, config, 0o644))
	t.Setenv("TITLEDASH_SERVER_ADDR", ":9090")

	v, err := NewViper(file)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "http://backend.local:5000/api", cfg.Backend.URL)
	assert.Equal(t, ModeCombined, cfg.Backend.Mode)
	assert.Equal(t, 2.5, cfg.Backend.Rate)
	assert.Equal(t, 4, cfg.Backend.Burst)
	assert.Equal(t, 2019, cfg.IMDb.Year)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, ":9090", cfg.Server.Addr)

	src, err := cfg.DataSource()
	require.NoError(t, err)
	assert.IsType(t, &HttpSource{}, src)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	data := []struct {
		Name   string
		Update func(*Config)
		Hint   bool
	}{
		{
			Name:   "mode",
			Update: func(c *Config) { c.Backend.Mode = "batch" },
			Hint:   true,
		},
		{
			Name: "source",
			Update: func(c *Config) {
				c.Backend.URL = ""
				c.Source.Workbook = ""
			},
			Hint: true,
		},
		{
			Name:   "rate",
			Update: func(c *Config) { c.Backend.Rate = -1 },
		},
		{
			Name:   "year",
			Update: func(c *Config) { c.IMDb.Year = -2019 },
		},
	}
	for _, d := range data {
		t.Run(d.Name, func(t *testing.T) {
			cfg := Default()
			d.Update(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			if d.Hint {
				assert.NotEmpty(t, errors.FlattenHints(err))
			}
		})
	}
}

func TestConfigDataSource(t *testing.T) {
	cfg := Default()
	cfg.Source.Workbook = "titles.xlsx"
	src, err := cfg.DataSource()
	require.NoError(t, err)
	assert.Equal(t, WorkbookSource{Path: "titles.xlsx"}, src)

	cfg = Default()
	cfg.Backend.URL = "ftp://backend.local"
	_, err = cfg.DataSource()
	assert.Error(t, err)
}
