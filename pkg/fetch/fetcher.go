package fetch

import "context"

// PageFetcher retrieves fully rendered HTML for a URL. One attempt per URL,
// no retries; the implementation bounds itself with its own timeouts.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}
