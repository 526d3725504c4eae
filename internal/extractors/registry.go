package extractors

import (
	"context"
	"fmt"
	"mime"
	"path"
	"sort"
	"strings"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
	"github.com/custodia-labs/grokpedia/internal/extractors/docx"
	"github.com/custodia-labs/grokpedia/internal/extractors/html"
	"github.com/custodia-labs/grokpedia/internal/extractors/markdown"
	"github.com/custodia-labs/grokpedia/internal/extractors/pdf"
	"github.com/custodia-labs/grokpedia/internal/extractors/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps MIME types and file extensions to extractors.
type Registry struct {
	byMIME      map[string]driven.Extractor
	byExtension map[string]driven.Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byMIME:      make(map[string]driven.Extractor),
		byExtension: make(map[string]driven.Extractor),
	}
}

// NewDefaultRegistry creates a registry with every built-in extractor.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// RegisterDefaults registers all built-in extractors with the registry.
// Plain text goes first so format-specific extractors override it for
// types it also lists, such as text/html.
func RegisterDefaults(r *Registry) {
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(docx.New())
	r.Register(pdf.New())
}

// Register adds an extractor. Later registrations win on conflicts.
func (r *Registry) Register(e driven.Extractor) {
	for _, m := range e.SupportedMIMETypes() {
		r.byMIME[m] = e
	}
	for _, ext := range e.SupportedExtensions() {
		r.byExtension[strings.ToLower(ext)] = e
	}
}

// SupportedMIMETypes returns all MIME types that can be extracted, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	types := make([]string, 0, len(r.byMIME))
	for m := range r.byMIME {
		types = append(types, m)
	}
	sort.Strings(types)
	return types
}

// Lookup returns the extractor for raw, or nil if none matches.
// The declared MIME type wins; the item name's extension is the fallback.
func (r *Registry) Lookup(raw *domain.RawDocument) driven.Extractor {
	if e, ok := r.byMIME[baseMIME(raw.MIMEType)]; ok {
		return e
	}
	for _, name := range []string{raw.Item.Name, raw.URI} {
		if ext := strings.ToLower(path.Ext(name)); ext != "" {
			if e, ok := r.byExtension[ext]; ok {
				return e
			}
		}
	}
	return nil
}

// Extract dispatches raw to its extractor.
func (r *Registry) Extract(ctx context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}
	e := r.Lookup(raw)
	if e == nil {
		return "", fmt.Errorf("%w: %q (%s)", domain.ErrUnsupportedType, raw.Item.Name, raw.MIMEType)
	}
	text, err := e.Extract(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", e.Name(), err)
	}
	return text, nil
}

// baseMIME drops parameters such as charset and lower-cases the type.
func baseMIME(m string) string {
	if m == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(m); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(m))
}
