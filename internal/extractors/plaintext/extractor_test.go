package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

func TestExtractor_Metadata(t *testing.T) {
	e := New()
	assert.Equal(t, "plaintext", e.Name())
	assert.Contains(t, e.SupportedMIMETypes(), "text/plain")
	assert.Contains(t, e.SupportedMIMETypes(), "text/csv")
	assert.Contains(t, e.SupportedExtensions(), ".txt")
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		expected string
		err      error
	}{
		{"utf8", []byte("preemptive defense policy"), "preemptive defense policy", nil},
		{"multibyte", []byte("naïve café"), "naïve café", nil},
		{"bom stripped", append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...), "hello", nil},
		{"nul dropped", []byte("a\x00b"), "ab", nil},
		{"empty", nil, "", nil},
		{"latin1 rejected", []byte{'c', 'a', 'f', 0xE9}, "", domain.ErrUnreadable},
		{"binary rejected", []byte{0xFF, 0xFE, 0x00, 0x80}, "", domain.ErrUnreadable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := New().Extract(context.Background(), &domain.RawDocument{Content: tt.content})
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestExtract_Nil(t *testing.T) {
	_, err := New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
