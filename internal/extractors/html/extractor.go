// Package html provides an Extractor for HTML documents.
// It extracts readable text, dropping scripts, styles and navigation.
package html

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles HTML documents.
type Extractor struct{}

// New creates a new HTML extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name identifies the extractor in logs.
func (e *Extractor) Name() string {
	return "html"
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// SupportedExtensions returns the file extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

const (
	noise  = "script, style, noscript, svg, nav, header, footer, iframe, template"
	blocks = "p, div, br, hr, li, tr, td, th, h1, h2, h3, h4, h5, h6, blockquote, pre, section, article, table"
)

// Main content selectors, tried in order before falling back to body.
var mainSelectors = []string{"main", "article", "[role=main]", "#content", ".content"}

// Extract returns the title followed by the readable body text.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw.Content))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnreadable, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find(noise).Remove()
	doc.Find(blocks).Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml("\n")
	})

	body := mainContent(doc)
	text := cleanText(body)
	if title != "" && !strings.HasPrefix(text, title) {
		text = strings.TrimSpace(title + "\n" + text)
	}
	return text, nil
}

func mainContent(doc *goquery.Document) string {
	for _, selector := range mainSelectors {
		if s := doc.Find(selector); s.Length() > 0 {
			return s.First().Text()
		}
	}
	return doc.Find("body").Text()
}

// cleanText collapses runs of spaces and drops blank lines.
func cleanText(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
