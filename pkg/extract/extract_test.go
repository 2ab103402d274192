package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchorExtractor_DocumentOrder(t *testing.T) {
	html := `<html><body>
		<a href="/first">one</a>
		<p><a href="second.html">two</a></p>
		<div><a href="https://a.com/third">three</a></div>
	</body></html>`

	hrefs, err := NewAnchorExtractor().Hrefs(html)
	require.NoError(t, err)
	assert.Equal(t, []string{"/first", "second.html", "https://a.com/third"}, hrefs)
}

func TestAnchorExtractor_BlanksAndDuplicatesPreserved(t *testing.T) {
	// The extractor is a thin boundary: filtering blanks and duplicates is
	// the caller's job.
	html := `<html><body>
		<a href="">blank</a>
		<a href="/x">x</a>
		<a href="/x">x again</a>
	</body></html>`

	hrefs, err := NewAnchorExtractor().Hrefs(html)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "/x", "/x"}, hrefs)
}

func TestAnchorExtractor_AnchorsWithoutHrefSkipped(t *testing.T) {
	html := `<html><body><a name="top">no href</a><a href="/y">y</a></body></html>`

	hrefs, err := NewAnchorExtractor().Hrefs(html)
	require.NoError(t, err)
	assert.Equal(t, []string{"/y"}, hrefs)
}

func TestAnchorExtractor_NoAnchors(t *testing.T) {
	hrefs, err := NewAnchorExtractor().Hrefs("<html><body><p>nothing here</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, hrefs)
}
