package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"heading", "# Title\n\nBody", "Title\n\nBody"},
		{"emphasis", "**bold** and *italic* and ~~gone~~", "bold and italic and gone"},
		{"link", "see [the docs](https://example.com)", "see the docs"},
		{"image keeps alt", "![diagram](a.png)", "diagram"},
		{"inline code", "run `go test`", "run go test"},
		{"code block keeps body", "```go\nfmt.Println()\n```", "fmt.Println()"},
		{"lists", "- one\n* two\n3. three", "one\ntwo\nthree"},
		{"blockquote", "> quoted", "quoted"},
		{"front matter", "---\ntitle: x\n---\nBody", "Body"},
		{"snake case kept", "use max_tokens", "use max_tokens"},
		{"crlf", "a\r\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Strip(tt.input))
		})
	}
}

func TestExtract(t *testing.T) {
	e := New()
	text, err := e.Extract(context.Background(), &domain.RawDocument{Content: []byte("## Defense\n\nPreemptive **defense** policy")})

	require.NoError(t, err)
	assert.Equal(t, "Defense\n\nPreemptive defense policy", text)
}

func TestExtract_InvalidUTF8(t *testing.T) {
	_, err := New().Extract(context.Background(), &domain.RawDocument{Content: []byte{0xC3, 0x28}})
	assert.ErrorIs(t, err, domain.ErrUnreadable)
}

func TestExtractor_Metadata(t *testing.T) {
	e := New()
	assert.Equal(t, "markdown", e.Name())
	assert.Equal(t, []string{"text/markdown", "text/x-markdown"}, e.SupportedMIMETypes())
	assert.Contains(t, e.SupportedExtensions(), ".md")
}
