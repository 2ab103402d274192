package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"svcmap-crawler/pkg/utils"
)

// DefaultUserAgent is sent on every render and lookup request.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36 svcmap-crawler/1.0"

// FetchConfig holds settings for the JS-rendering page fetcher
type FetchConfig struct {
	UserAgent    string        `yaml:"user_agent,omitempty"`
	RenderBudget time.Duration `yaml:"render_budget,omitempty"` // Internal rendering budget (network-idle wait)
	Timeout      time.Duration `yaml:"timeout,omitempty"`       // Outer hard wall-clock navigation timeout
}

// LookupConfig holds settings for the external lookup service client
type LookupConfig struct {
	PrimaryEndpoint   string        `yaml:"primary_endpoint,omitempty"`
	SecondaryEndpoint string        `yaml:"secondary_endpoint,omitempty"` // Non-production variant
	NonProdMarker     string        `yaml:"non_prod_marker,omitempty"`    // Substring routing a URL to the secondary endpoint
	KeyParam          string        `yaml:"key_param,omitempty"`          // Query parameter carrying the scheme-stripped URL
	UserAgent         string        `yaml:"user_agent,omitempty"`
	Timeout           time.Duration `yaml:"timeout,omitempty"`
}

// Config holds the full configuration for one crawl run
type Config struct {
	StartURL   string        `yaml:"start_url"`
	MaxDepth   int           `yaml:"max_depth"`
	OutputFile string        `yaml:"output_file,omitempty"`
	LinkDelay  time.Duration `yaml:"link_delay,omitempty"` // Pause after each discovered-link lookup
	Fetch      FetchConfig   `yaml:"fetch,omitempty"`
	Lookup     LookupConfig  `yaml:"lookup,omitempty"`
}

// Default returns the built-in configuration. CLI flags and an optional
// YAML file override individual fields.
func Default() Config {
	return Config{
		MaxDepth:   3,
		OutputFile: "services.csv",
		LinkDelay:  1 * time.Second,
		Fetch: FetchConfig{
			UserAgent:    DefaultUserAgent,
			RenderBudget: 20 * time.Second,
			Timeout:      30 * time.Second,
		},
		Lookup: LookupConfig{
			PrimaryEndpoint:   "https://whereis.svc.example.com/api/lookup",
			SecondaryEndpoint: "https://whereis.staging.svc.example.com/api/lookup",
			NonProdMarker:     "staging",
			KeyParam:          "key",
			UserAgent:         DefaultUserAgent,
			Timeout:           10 * time.Second,
		},
	}
}

// Load reads a YAML config file over the defaults. Fields absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: reading config file '%s': %w", utils.ErrFilesystem, path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parsing config file '%s': %w", utils.ErrConfigValidation, path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for fatal problems and returns
// non-fatal warnings. A non-nil error means the crawl must not start.
func (c *Config) Validate() (warnings []string, err error) {
	u, parseErr := url.Parse(c.StartURL)
	if parseErr != nil {
		return warnings, fmt.Errorf("%w: invalid starting URL '%s': %w", utils.ErrConfigValidation, c.StartURL, parseErr)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return warnings, fmt.Errorf("%w: starting URL '%s' must use http or https", utils.ErrConfigValidation, c.StartURL)
	}
	if u.Hostname() == "" {
		return warnings, fmt.Errorf("%w: starting URL '%s' has no host", utils.ErrConfigValidation, c.StartURL)
	}
	if c.MaxDepth < 0 {
		return warnings, fmt.Errorf("%w: max depth must be non-negative, got %d", utils.ErrConfigValidation, c.MaxDepth)
	}
	if c.OutputFile == "" {
		return warnings, fmt.Errorf("%w: output file must be set", utils.ErrConfigValidation)
	}
	for _, endpoint := range []string{c.Lookup.PrimaryEndpoint, c.Lookup.SecondaryEndpoint} {
		eu, endpointErr := url.Parse(endpoint)
		if endpointErr != nil || eu.Scheme == "" || eu.Host == "" {
			return warnings, fmt.Errorf("%w: invalid lookup endpoint '%s'", utils.ErrConfigValidation, endpoint)
		}
	}
	if c.Lookup.KeyParam == "" {
		return warnings, fmt.Errorf("%w: lookup key parameter must be set", utils.ErrConfigValidation)
	}
	if c.LinkDelay <= 0 {
		warnings = append(warnings, "link_delay is disabled; discovered-link lookups will not be throttled")
	}
	if c.MaxDepth > 5 {
		warnings = append(warnings, fmt.Sprintf("max_depth %d is high; crawl duration grows with every level", c.MaxDepth))
	}
	return warnings, nil
}
