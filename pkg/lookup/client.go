// Package lookup calls the external service that maps a site URL to its
// backing microservice.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"svcmap-crawler/pkg/config"
	"svcmap-crawler/pkg/models"
	"svcmap-crawler/pkg/parse"
	"svcmap-crawler/pkg/utils"
)

// Client performs one lookup call for one URL. One attempt, no retries.
type Client interface {
	Lookup(ctx context.Context, target string) (models.LookupResult, error)
}

// HTTPClient is the production lookup client. It selects the secondary
// (non-production) endpoint when the target URL contains the configured
// marker substring, sends the scheme-stripped target as the key parameter,
// and decodes the JSON response against the declared result schema.
type HTTPClient struct {
	client *http.Client
	cfg    config.LookupConfig
	log    *logrus.Logger
}

// NewHTTPClient creates an HTTPClient with the configured fixed timeout.
func NewHTTPClient(cfg config.LookupConfig, log *logrus.Logger) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		log:    log,
	}
}

// Lookup calls the lookup service for one URL and parses its result. Any
// transport failure, non-success status, or missing/empty field is an error;
// the caller decides what to do with it.
func (c *HTTPClient) Lookup(ctx context.Context, target string) (models.LookupResult, error) {
	endpoint := c.cfg.PrimaryEndpoint
	if c.cfg.NonProdMarker != "" && strings.Contains(target, c.cfg.NonProdMarker) {
		endpoint = c.cfg.SecondaryEndpoint
	}
	reqURL := fmt.Sprintf("%s?%s=%s", endpoint, c.cfg.KeyParam, url.QueryEscape(parse.SchemeStripped(target)))

	lookupLog := c.log.WithFields(logrus.Fields{"url": target, "endpoint": endpoint})
	lookupLog.Debug("Calling lookup service...")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.LookupResult{}, fmt.Errorf("%w: creating lookup request for '%s': %w", utils.ErrRequestCreation, target, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return models.LookupResult{}, fmt.Errorf("%w: calling lookup service for '%s': %w", utils.ErrLookup, target, err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.LookupResult{}, fmt.Errorf("%w: status %s for '%s'", utils.ErrLookup, resp.Status, target)
	}

	var result models.LookupResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.LookupResult{}, fmt.Errorf("%w: decoding lookup response for '%s': %w", utils.ErrDecode, target, err)
	}
	if result.FriendlyURL == "" || result.ServiceURL == "" || result.K8sEnabled == "" {
		return models.LookupResult{}, fmt.Errorf("%w: lookup response for '%s' is missing required fields", utils.ErrDecode, target)
	}

	lookupLog.WithField("service_url", result.ServiceURL).Debug("Lookup succeeded")
	return result, nil
}
