package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// createTestDOCX creates a minimal DOCX file in memory.
func createTestDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	ct, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = ct.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`))
	require.NoError(t, err)

	if documentXML != "" {
		doc, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, err = doc.Write([]byte(documentXML))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}

const ns = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func TestExtract_Paragraphs(t *testing.T) {
	body := `<?xml version="1.0"?><w:document ` + ns + `><w:body>
<w:p><w:r><w:t>Preemptive </w:t></w:r><w:r><w:t>defense</w:t></w:r></w:p>
<w:p></w:p>
<w:p><w:r><w:t>policy</w:t><w:tab/><w:t>review</w:t></w:r></w:p>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>in a table</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
</w:body></w:document>`

	text, err := New().Extract(context.Background(), &domain.RawDocument{Content: createTestDOCX(t, body)})

	require.NoError(t, err)
	assert.Equal(t, "Preemptive defense\npolicy review\nin a table", text)
}

func TestExtract_IgnoresNonTextCharData(t *testing.T) {
	body := `<w:document ` + ns + `><w:body><w:p><w:pPr>style</w:pPr><w:r><w:t>kept</w:t></w:r></w:p></w:body></w:document>`

	text, err := New().Extract(context.Background(), &domain.RawDocument{Content: createTestDOCX(t, body)})

	require.NoError(t, err)
	assert.Equal(t, "kept", text)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{"not a zip", []byte("plain text pretending")},
		{"missing document.xml", createTestDOCX(t, "")},
		{"malformed xml", createTestDOCX(t, `<w:document `+ns+`><w:body><w:p>`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Extract(context.Background(), &domain.RawDocument{Content: tt.content})
			assert.ErrorIs(t, err, domain.ErrUnreadable)
		})
	}
}

func TestExtractor_Metadata(t *testing.T) {
	e := New()
	assert.Equal(t, "docx", e.Name())
	assert.Equal(t, []string{MIMEType}, e.SupportedMIMETypes())
	assert.Equal(t, []string{".docx"}, e.SupportedExtensions())
}
