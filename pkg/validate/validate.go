// Package validate decides whether a resolved URL is eligible for crawling.
package validate

import (
	"net/url"
	"strings"
)

// Schemes that are never crawlable.
var skippedSchemes = []string{"mailto:", "tel:", "javascript:", "ftp:", "data:"}

// Path extensions pointing at binary or non-HTML assets.
var skippedExtensions = []string{
	"pdf", "jpg", "jpeg", "png", "gif", "css", "js", "ico", "xml", "zip",
	"doc", "docx", "xls", "xlsx", "ppt", "pptx",
}

// IsValid reports whether a resolved URL should be looked up and enqueued.
// Rejects page fragments, non-HTTP schemes, hosts other than the seed host
// (case-insensitive), and paths ending in a skipped extension (the query
// string is ignored for the extension check).
func IsValid(rawURL, seedHost string) bool {
	if rawURL == "" || strings.HasPrefix(rawURL, "#") {
		return false
	}

	lower := strings.ToLower(rawURL)
	for _, scheme := range skippedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return false
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.EqualFold(u.Hostname(), seedHost) {
		return false
	}

	if i := strings.LastIndex(u.Path, "."); i >= 0 {
		ext := strings.ToLower(u.Path[i+1:])
		for _, skipped := range skippedExtensions {
			if ext == skipped {
				return false
			}
		}
	}
	return true
}
