package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolindex/toolindex/goquery"
)

const baseURL = "https://example.com"
const categoryURL = "https://example.com/ai-tools/code-assistant"

func TestParseCards_ExtractsFields(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/tool/copilot">
			<img src="/img/copilot.png">
			<h3>Copilot</h3>
			<p>Pair programming with AI.</p>
		</a>
	</body></html>`

	refs, err := goquery.ParseCards(html, baseURL, categoryURL)
	require.NoError(t, err)
	require.Len(t, refs, 1)

	ref := refs[0]
	assert.Equal(t, "Copilot", ref.Name)
	assert.Equal(t, "https://example.com/tool/copilot", ref.URL)
	assert.Equal(t, "copilot", ref.Slug)
	assert.Equal(t, "https://example.com/img/copilot.png", ref.ImageURL)
	assert.Equal(t, "Pair programming with AI.", ref.ShortDescription)
	assert.Equal(t, "code-assistant", ref.Category)
}

func TestParseCards_DedupesBySlugLastWins(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/tool/copilot"><h3>First Name</h3></a>
		<a href="/tool/copilot"><h3>Second Name</h3></a>
	</body></html>`

	refs, err := goquery.ParseCards(html, baseURL, categoryURL)
	require.NoError(t, err)

	require.Len(t, refs, 1, "two cards sharing a slug collapse to one reference")
	assert.Equal(t, "Second Name", refs[0].Name, "the later card's fields win")
}

func TestParseCards_FallsBackToAnchorText(t *testing.T) {
	t.Parallel()

	html := `<a href="/tool/tiny">Tiny tool without heading</a>`

	refs, err := goquery.ParseCards(html, baseURL, categoryURL)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Tiny tool without heading", refs[0].Name)
}

func TestParseCards_IgnoresNonToolAnchors(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/about">About</a>
		<a href="/tool/real"><h2>Real</h2></a>
	</body></html>`

	refs, err := goquery.ParseCards(html, baseURL, categoryURL)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "real", refs[0].Slug)
}

func TestParseCards_EmptyPage(t *testing.T) {
	t.Parallel()

	refs, err := goquery.ParseCards("<html><body></body></html>", baseURL, categoryURL)
	require.NoError(t, err)
	assert.Empty(t, refs)
}
