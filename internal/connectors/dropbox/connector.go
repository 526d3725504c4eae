// Package dropbox implements a connector for Dropbox folders.
//
// Roots have the form dropbox://{path}; dropbox:// alone is the account root.
// Item IDs are lower-cased Dropbox paths.
package dropbox

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"

	"github.com/custodia-labs/grokpedia/internal/connectors/mimetypes"
	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
)

// Scheme is the URI scheme for Dropbox roots.
const Scheme = "dropbox"

// MaxDownloadSize caps downloaded content.
const MaxDownloadSize = 20 * 1024 * 1024

// API is the subset of files.Client the connector calls.
type API interface {
	ListFolder(arg *files.ListFolderArg) (*files.ListFolderResult, error)
	ListFolderContinue(arg *files.ListFolderContinueArg) (*files.ListFolderResult, error)
	Download(arg *files.DownloadArg) (*files.FileMetadata, io.ReadCloser, error)
}

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector walks a Dropbox folder.
type Connector struct {
	api    API
	root   string
	mu     sync.Mutex
	closed bool
}

// ParseRoot returns the Dropbox path of a dropbox:// URI.
// The account root is the empty string, as the API expects.
func ParseRoot(uri string) (string, error) {
	p, ok := strings.CutPrefix(uri, Scheme+"://")
	if !ok {
		return "", fmt.Errorf("%w: not a %s root: %s", domain.ErrInvalidInput, Scheme, uri)
	}
	p = strings.Trim(p, "/")
	if p == "" {
		return "", nil
	}
	return "/" + p, nil
}

// NewClient creates a files client authenticated with an access token.
func NewClient(token string) (API, error) {
	if token == "" {
		return nil, fmt.Errorf("dropbox: no access token: %w", domain.ErrAuthRequired)
	}
	return files.New(dropbox.Config{Token: token, LogLevel: dropbox.LogOff}), nil
}

// New creates a connector rooted at a Dropbox path.
func New(api API, root string) *Connector {
	return &Connector{api: api, root: root}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "dropbox"
}

// RootID returns the Dropbox path the connector was opened at.
func (c *Connector) RootID() string {
	return c.root
}

// URI returns the dropbox:// form of the root path.
func (c *Connector) URI() string {
	return Scheme + "://" + c.root
}

// ListChildren lists a folder, following the continuation cursor.
// Deleted entries are dropped.
func (c *Connector) ListChildren(ctx context.Context, containerID string) ([]domain.Item, error) {
	if err := c.check(ctx); err != nil {
		return nil, err
	}

	res, err := c.api.ListFolder(files.NewListFolderArg(containerID))
	if err != nil {
		return nil, wrapError(err, "list "+containerID)
	}

	var items []domain.Item
	for {
		for _, entry := range res.Entries {
			if item, ok := metadataItem(entry); ok {
				items = append(items, item)
			}
		}
		if !res.HasMore {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err = c.api.ListFolderContinue(files.NewListFolderContinueArg(res.Cursor))
		if err != nil {
			return nil, wrapError(err, "list "+containerID)
		}
	}

	return items, nil
}

// Read downloads a file.
func (c *Connector) Read(ctx context.Context, item domain.Item) (*domain.RawDocument, error) {
	if err := c.check(ctx); err != nil {
		return nil, err
	}

	meta, rc, err := c.api.Download(files.NewDownloadArg(item.ID))
	if err != nil {
		return nil, wrapError(err, "download "+item.ID)
	}
	defer rc.Close()

	content, err := io.ReadAll(io.LimitReader(rc, MaxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", item.ID, err)
	}
	if len(content) > MaxDownloadSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", item.ID, MaxDownloadSize)
	}

	uri := Scheme + "://" + strings.TrimPrefix(item.ID, "/")
	if meta != nil && meta.PathDisplay != "" {
		uri = Scheme + "://" + strings.TrimPrefix(meta.PathDisplay, "/")
	}

	mimeType := item.MIMEType
	if mimeType == "" {
		mimeType = mimetypes.ByName(item.Name)
	}

	return &domain.RawDocument{
		Item:     item,
		URI:      uri,
		MIMEType: mimeType,
		Content:  content,
	}, nil
}

// Close marks the connector closed.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *Connector) check(ctx context.Context) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return domain.ErrConnectorClosed
	}
	return ctx.Err()
}

func metadataItem(entry files.IsMetadata) (domain.Item, bool) {
	switch m := entry.(type) {
	case *files.FolderMetadata:
		return domain.Item{ID: m.PathLower, Name: m.Name, IsContainer: true}, true
	case *files.FileMetadata:
		return domain.Item{
			ID:       m.PathLower,
			Name:     m.Name,
			MIMEType: mimetypes.ByName(m.Name),
			Size:     int64(m.Size),
		}, true
	default:
		return domain.Item{}, false
	}
}

// wrapError maps Dropbox error summaries onto domain errors.
// The SDK reports endpoint errors as summaries such as "path/not_found/..".
func wrapError(err error, operation string) error {
	summary := err.Error()
	switch {
	case strings.Contains(summary, "not_found"):
		return fmt.Errorf("%s: %w: %w", operation, domain.ErrNotFound, err)
	case strings.Contains(summary, "too_many_requests"), strings.Contains(summary, "too_many_write_operations"):
		return fmt.Errorf("%s: %w: %w", operation, domain.ErrRateLimited, err)
	case strings.Contains(summary, "invalid_access_token"), strings.Contains(summary, "expired_access_token"):
		return fmt.Errorf("%s: %w: %w", operation, domain.ErrAuthInvalid, err)
	}
	return fmt.Errorf("%s: %w", operation, err)
}
