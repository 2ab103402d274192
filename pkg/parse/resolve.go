package parse

import (
	"fmt"
	"net/url"
	"strings"

	"svcmap-crawler/pkg/utils"
)

// Resolve turns a page-relative href into an absolute URL. Rules, in order:
//  1. An href that is already absolute (http:// or https://) is returned unchanged.
//  2. A protocol-relative href (//host/...) is prefixed with https:.
//  3. A root-relative href (/path) is appended to the base's scheme+host.
//  4. Anything else is appended to the base's directory component (base with
//     its final path segment removed), then every /./ segment is collapsed.
//
// Dot-dot path segments are NOT normalized; a href climbing above its
// directory keeps the literal ".." in the result.
func Resolve(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	// Fragment-only references and non-HTTP schemes (mailto:, tel:, ...)
	// are not resolvable page locations; they pass through unchanged for
	// the validator to reject.
	if strings.HasPrefix(href, "#") || hasScheme(href) {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return schemeAndHost(base) + href
	}

	resolved := directory(base) + href
	for strings.Contains(resolved, "/./") {
		resolved = strings.ReplaceAll(resolved, "/./", "/")
	}
	return resolved
}

// hasScheme reports whether href carries a scheme prefix (a colon before
// any path, query, or fragment delimiter).
func hasScheme(href string) bool {
	for i := 0; i < len(href); i++ {
		switch href[i] {
		case ':':
			return i > 0
		case '/', '?', '#':
			return false
		}
	}
	return false
}

// schemeAndHost returns the scheme://host prefix of an absolute URL.
func schemeAndHost(base string) string {
	rest := base
	prefix := ""
	if i := strings.Index(base, "://"); i >= 0 {
		prefix = base[:i+3]
		rest = base[i+3:]
	}
	if j := strings.Index(rest, "/"); j >= 0 {
		rest = rest[:j]
	}
	return prefix + rest
}

// directory returns the base URL with its final path segment removed,
// keeping the trailing slash. A base without a path yields base + "/".
func directory(base string) string {
	pathStart := 0
	if i := strings.Index(base, "://"); i >= 0 {
		pathStart = i + 3
	}
	lastSlash := strings.LastIndex(base[pathStart:], "/")
	if lastSlash < 0 {
		return base + "/"
	}
	return base[:pathStart+lastSlash+1]
}

// SeedHost extracts the lowercased host component of the seed URL. The crawl
// scope is restricted to this host for the whole run.
func SeedHost(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: parsing seed URL '%s': %w", utils.ErrParsing, rawURL, err)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", fmt.Errorf("%w: seed URL '%s' has no host", utils.ErrParsing, rawURL)
	}
	return host, nil
}

// Host extracts the lowercased host of any absolute URL, or "" if the URL
// cannot be parsed or carries no host.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// SchemeStripped removes a leading http:// or https:// from a URL. The
// lookup service keys entries by host+path, not by scheme.
func SchemeStripped(rawURL string) string {
	if rest, ok := strings.CutPrefix(rawURL, "https://"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(rawURL, "http://"); ok {
		return rest
	}
	return rawURL
}
