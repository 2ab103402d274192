// Package queue holds the crawl frontier: per-depth pending-URL buckets
// drained in strictly increasing depth order by the crawler.
package queue

import (
	"github.com/sirupsen/logrus"
)

// Frontier maps depth to an ordered FIFO bucket of pending URLs. Buckets for
// depths beyond the bound are never created; the crawler enforces BFS order
// by draining depths strictly increasing from 0.
type Frontier struct {
	maxDepth int
	buckets  map[int][]string
	log      *logrus.Logger
}

// NewFrontier creates an empty frontier bounded at maxDepth.
func NewFrontier(maxDepth int, log *logrus.Logger) *Frontier {
	return &Frontier{
		maxDepth: maxDepth,
		buckets:  make(map[int][]string),
		log:      log,
	}
}

// Enqueue appends a URL to the bucket for depth, preserving insertion order.
// A depth beyond the bound is a logged no-op.
func (f *Frontier) Enqueue(url string, depth int) {
	if depth > f.maxDepth {
		f.log.WithFields(logrus.Fields{"url": url, "depth": depth, "max_depth": f.maxDepth}).
			Debug("Skipping enqueue beyond max depth")
		return
	}
	f.buckets[depth] = append(f.buckets[depth], url)
}

// Drain returns and clears the bucket for depth. Returns nil when the
// bucket is empty or was never created.
func (f *Frontier) Drain(depth int) []string {
	urls := f.buckets[depth]
	delete(f.buckets, depth)
	return urls
}

// Len reports how many URLs are pending at depth.
func (f *Frontier) Len(depth int) int {
	return len(f.buckets[depth])
}
