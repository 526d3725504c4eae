// Package pdf provides an Extractor for PDF documents.
// Text is extracted page by page; pages are separated by a blank line.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
	"github.com/custodia-labs/grokpedia/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name identifies the extractor in logs.
func (e *Extractor) Name() string {
	return "pdf"
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// SupportedExtensions returns the file extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Extract returns the plain text of every page that yields any.
// A page that fails to decode is skipped; a document where no page
// decodes is unreadable.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawDocument) (text string, err error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %v", domain.ErrUnreadable, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnreadable, err)
	}

	var (
		pages  []string
		failed int
	)
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			failed++
			logger.Debug("pdf %s: page %d: %v", raw.Item.Name, i, err)
			continue
		}
		if s := strings.TrimSpace(content); s != "" {
			pages = append(pages, s)
		}
	}

	if total > 0 && failed == total {
		return "", fmt.Errorf("%w: no decodable pages", domain.ErrUnreadable)
	}
	return strings.Join(pages, "\n\n"), nil
}
