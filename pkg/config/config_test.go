package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := Default()
	cfg.StartURL = "https://a.com/start"
	return cfg
}

func TestValidate_DefaultsWithSeedAreValid(t *testing.T) {
	cfg := validConfig()
	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "MissingStartURL", mutate: func(c *Config) { c.StartURL = "" }},
		{name: "BadScheme", mutate: func(c *Config) { c.StartURL = "ftp://a.com/x" }},
		{name: "NoHost", mutate: func(c *Config) { c.StartURL = "https:///x" }},
		{name: "NegativeDepth", mutate: func(c *Config) { c.MaxDepth = -1 }},
		{name: "EmptyOutputFile", mutate: func(c *Config) { c.OutputFile = "" }},
		{name: "BadPrimaryEndpoint", mutate: func(c *Config) { c.Lookup.PrimaryEndpoint = "not a url" }},
		{name: "EmptyKeyParam", mutate: func(c *Config) { c.Lookup.KeyParam = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			_, err := cfg.Validate()
			assert.Error(t, err)
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	cfg := validConfig()
	cfg.LinkDelay = 0
	cfg.MaxDepth = 10

	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Len(t, warnings, 2)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
max_depth: 2
output_file: custom.csv
lookup:
  non_prod_marker: sandbox
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.MaxDepth)
	assert.Equal(t, "custom.csv", cfg.OutputFile)
	assert.Equal(t, "sandbox", cfg.Lookup.NonProdMarker)
	// Untouched fields keep defaults
	assert.Equal(t, 1*time.Second, cfg.LinkDelay)
	assert.Equal(t, "key", cfg.Lookup.KeyParam)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
