package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

func extract(t *testing.T, page string) string {
	t.Helper()
	text, err := New().Extract(context.Background(), &domain.RawDocument{Content: []byte(page)})
	require.NoError(t, err)
	return text
}

func TestExtract_TitleAndBody(t *testing.T) {
	page := `<html><head><title>Defense Doctrine</title><style>p{color:red}</style></head>
<body><nav>Home | About</nav><p>Preemptive   defense</p><p>policy &amp; law</p>
<script>alert("x")</script></body></html>`

	assert.Equal(t, "Defense Doctrine\nPreemptive defense\npolicy & law", extract(t, page))
}

func TestExtract_PrefersMain(t *testing.T) {
	page := `<body><div>sidebar</div><main><h1>Heading</h1><p>Main text</p></main></body>`

	assert.Equal(t, "Heading\nMain text", extract(t, page))
}

func TestExtract_BlocksSeparated(t *testing.T) {
	page := `<body><ul><li>one</li><li>two</li></ul><p>three<br>four</p></body>`

	text := extract(t, page)
	assert.Equal(t, []string{"one", "two", "three", "four"}, splitLines(text))
}

func TestExtract_Empty(t *testing.T) {
	assert.Empty(t, extract(t, ""))
}

func TestExtract_Nil(t *testing.T) {
	_, err := New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtractor_Metadata(t *testing.T) {
	e := New()
	assert.Equal(t, "html", e.Name())
	assert.Contains(t, e.SupportedMIMETypes(), "text/html")
	assert.Contains(t, e.SupportedExtensions(), ".htm")
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}
