package connectors

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/grokpedia/internal/connectors/dropbox"
	"github.com/custodia-labs/grokpedia/internal/connectors/filesystem"
	"github.com/custodia-labs/grokpedia/internal/connectors/github"
	"github.com/custodia-labs/grokpedia/internal/connectors/google"
	"github.com/custodia-labs/grokpedia/internal/connectors/google/drive"
	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.ConnectorFactory = (*Factory)(nil)

// OpenFunc builds a connector for a root URI.
type OpenFunc func(ctx context.Context, root string) (driven.Connector, error)

// Factory resolves root URIs to connectors by scheme.
type Factory struct {
	openers map[string]OpenFunc
}

// NewFactory creates a factory with the built-in connectors, using the
// credentials from settings.
func NewFactory(settings domain.ConnectorSettings) *Factory {
	f := &Factory{openers: make(map[string]OpenFunc)}

	f.Register(filesystem.Scheme, func(_ context.Context, root string) (driven.Connector, error) {
		return filesystem.New(root)
	})

	f.Register(drive.Scheme, func(ctx context.Context, root string) (driven.Connector, error) {
		folderID, err := drive.ParseRoot(root)
		if err != nil {
			return nil, err
		}
		svc, err := google.NewDriveService(ctx, google.Credentials{
			File:  settings.GoogleCredentialsFile,
			Token: settings.GoogleToken,
		})
		if err != nil {
			return nil, err
		}
		return drive.New(svc, folderID, nil), nil
	})

	f.Register(github.Scheme, func(ctx context.Context, root string) (driven.Connector, error) {
		r, err := github.ParseRoot(root)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		return github.New(github.NewClientWithToken(ctx, settings.GitHubToken), r), nil
	})

	f.Register(dropbox.Scheme, func(_ context.Context, root string) (driven.Connector, error) {
		p, err := dropbox.ParseRoot(root)
		if err != nil {
			return nil, err
		}
		api, err := dropbox.NewClient(settings.DropboxToken)
		if err != nil {
			return nil, err
		}
		return dropbox.New(api, p), nil
	})

	return f
}

// Register adds or replaces the opener for a scheme.
func (f *Factory) Register(scheme string, open OpenFunc) {
	f.openers[scheme] = open
}

// Open returns a connector for the root. A root without a scheme is a local path.
func (f *Factory) Open(ctx context.Context, root string) (driven.Connector, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("%w: empty root", domain.ErrInvalidInput)
	}

	scheme := Scheme(root)
	open, ok := f.openers[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: no connector for scheme %q", domain.ErrUnsupportedType, scheme)
	}
	return open(ctx, root)
}

// SupportedSchemes returns the registered schemes in sorted order.
func (f *Factory) SupportedSchemes() []string {
	schemes := make([]string, 0, len(f.openers))
	for s := range f.openers {
		schemes = append(schemes, s)
	}
	sort.Strings(schemes)
	return schemes
}

// Scheme returns the URI scheme of a root, or "file" for plain paths.
func Scheme(root string) string {
	if i := strings.Index(root, "://"); i > 0 {
		return strings.ToLower(root[:i])
	}
	return filesystem.Scheme
}
