// Package extract turns rendered HTML into raw href strings.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"svcmap-crawler/pkg/utils"
)

// LinkExtractor produces raw href attribute values from anchor elements in
// document order. The output may contain blank or duplicate entries; the
// caller filters them.
type LinkExtractor interface {
	Hrefs(html string) ([]string, error)
}

// AnchorExtractor is the goquery-backed production extractor.
type AnchorExtractor struct{}

// NewAnchorExtractor creates an AnchorExtractor.
func NewAnchorExtractor() *AnchorExtractor {
	return &AnchorExtractor{}
}

// Hrefs returns every a[href] attribute value in document order.
func (e *AnchorExtractor) Hrefs(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing HTML: %w", utils.ErrParsing, err)
	}

	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, element *goquery.Selection) {
		href, _ := element.Attr("href")
		hrefs = append(hrefs, href)
	})
	return hrefs, nil
}
