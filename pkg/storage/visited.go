// Package storage provides the in-process membership sets used for crawl
// deduplication. Nothing persists between runs.
package storage

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// VisitedSet tracks URLs that have begun processing. Membership is checked
// advisorily before a URL is enqueued and authoritatively when it is
// dequeued; the same URL may therefore sit in a frontier bucket more than
// once but is only ever processed once.
type VisitedSet struct {
	set mapset.Set[string]
}

// NewVisitedSet creates an empty visited set. The crawl loop is strictly
// sequential, so the thread-unsafe variant is sufficient.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{set: mapset.NewThreadUnsafeSet[string]()}
}

// Contains reports whether the URL has begun processing.
func (v *VisitedSet) Contains(url string) bool {
	return v.set.Contains(url)
}

// MarkVisited records that the URL has begun processing.
func (v *VisitedSet) MarkVisited(url string) {
	v.set.Add(url)
}

// Count returns how many URLs have been marked visited.
func (v *VisitedSet) Count() int {
	return v.set.Cardinality()
}

// PageLinkSet suppresses duplicate hrefs found on a single rendered page.
// It lives for the duration of one page's processing and is then discarded.
type PageLinkSet struct {
	set mapset.Set[string]
}

// NewPageLinkSet creates an empty per-page link set.
func NewPageLinkSet() *PageLinkSet {
	return &PageLinkSet{set: mapset.NewThreadUnsafeSet[string]()}
}

// Contains reports whether the link was already seen on this page.
func (p *PageLinkSet) Contains(url string) bool {
	return p.set.Contains(url)
}

// Add records a link as seen on this page.
func (p *PageLinkSet) Add(url string) {
	p.set.Add(url)
}
