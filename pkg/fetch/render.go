package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"svcmap-crawler/pkg/config"
	"svcmap-crawler/pkg/utils"
)

// Renderer fetches pages through a headless JS-capable browser so that
// client-rendered links are present in the returned HTML. Each fetch runs in
// a fresh browser context with a fixed user-agent override; navigation waits
// for network idle (the rendering budget) under a hard wall-clock timeout.
type Renderer struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     config.FetchConfig
	log     *logrus.Logger
}

// NewRenderer starts the playwright driver and launches headless chromium.
// A failure here means the rendering dependency is absent or broken and the
// crawl must not start.
func NewRenderer(cfg config.FetchConfig, log *logrus.Logger) (*Renderer, error) {
	pw, err := playwright.Run(&playwright.RunOptions{SkipInstallBrowsers: true})
	if err != nil {
		return nil, fmt.Errorf("%w: starting playwright driver: %w", utils.ErrDependencyMissing, err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		if stopErr := pw.Stop(); stopErr != nil {
			log.Warnf("Failed to stop playwright driver after launch error: %v", stopErr)
		}
		return nil, fmt.Errorf("%w: launching headless chromium: %w", utils.ErrDependencyMissing, err)
	}

	return &Renderer{pw: pw, browser: browser, cfg: cfg, log: log}, nil
}

// Fetch renders one URL and returns the resulting HTML. Any navigation or
// rendering failure, including an empty render, is reported as a fetch error.
func (r *Renderer) Fetch(ctx context.Context, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fetchLog := r.log.WithField("url", pageURL)
	fetchLog.Debug("Rendering page...")

	browserCtx, err := r.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(r.cfg.UserAgent),
	})
	if err != nil {
		return "", fmt.Errorf("%w: creating browser context for '%s': %w", utils.ErrFetch, pageURL, err)
	}
	defer browserCtx.Close()

	// Outer hard bound on every page operation in this context
	browserCtx.SetDefaultNavigationTimeout(float64(r.cfg.Timeout.Milliseconds()))

	page, err := browserCtx.NewPage()
	if err != nil {
		return "", fmt.Errorf("%w: opening page for '%s': %w", utils.ErrFetch, pageURL, err)
	}

	if _, err := page.Goto(pageURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(float64(r.cfg.RenderBudget.Milliseconds())),
	}); err != nil {
		return "", fmt.Errorf("%w: rendering '%s': %w", utils.ErrFetch, pageURL, err)
	}

	html, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("%w: reading rendered content of '%s': %w", utils.ErrFetch, pageURL, err)
	}
	if strings.TrimSpace(html) == "" {
		return "", fmt.Errorf("%w: renderer returned empty output for '%s'", utils.ErrFetch, pageURL)
	}

	fetchLog.WithField("bytes", len(html)).Debug("Page rendered")
	return html, nil
}

// Close shuts down the browser and the playwright driver.
func (r *Renderer) Close() {
	if err := r.browser.Close(); err != nil {
		r.log.Warnf("Failed to close browser: %v", err)
	}
	if err := r.pw.Stop(); err != nil {
		r.log.Warnf("Failed to stop playwright driver: %v", err)
	}
}
