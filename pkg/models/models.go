package models

// LookupResult holds the decoded response of the lookup service for one URL.
// A result is only usable when all three fields are non-empty; the lookup
// client enforces that before returning one.
type LookupResult struct {
	FriendlyURL string `json:"friendlyUrl"`
	ServiceURL  string `json:"microserviceUrl"`
	K8sEnabled  string `json:"k8sEnabled"`
}

// CrawlStats accumulates counters for the duration of a crawl.
// It is owned and mutated exclusively by the crawler and read once at the end.
type CrawlStats struct {
	Processed       int // Successful lookups (one per output row, seed included)
	Failed          int // Fetch and lookup failures combined
	Visited         int // URLs that began processing
	MaxDepthReached int // Deepest level at which a URL began processing
}
