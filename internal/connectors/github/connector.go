package github

import (
	"context"
	"fmt"
	"path"
	"sync"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/grokpedia/internal/connectors/mimetypes"
	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector reads files from one repository. Item IDs are repository paths.
type Connector struct {
	client *Client
	root   Root
	mu     sync.Mutex
	closed bool
}

// New creates a new GitHub connector.
func New(client *Client, root Root) *Connector {
	return &Connector{client: client, root: root}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "github"
}

// RootID returns the repository path the connector was opened at.
func (c *Connector) RootID() string {
	return c.root.Path
}

// URI returns the github:// form of the repository root.
func (c *Connector) URI() string {
	return c.root.String()
}

// ListChildren lists a directory. A path naming a file lists as that file.
func (c *Connector) ListChildren(ctx context.Context, containerID string) ([]domain.Item, error) {
	if err := c.check(ctx); err != nil {
		return nil, err
	}

	file, dir, err := c.client.GetContents(ctx, c.root.Owner, c.root.Repo, containerID, c.root.Ref)
	if err != nil {
		return nil, err
	}
	if file != nil {
		return []domain.Item{contentItem(file)}, nil
	}

	items := make([]domain.Item, 0, len(dir))
	for _, entry := range dir {
		switch entry.GetType() {
		case "dir", "file":
		default:
			// Submodules and symlinks point outside the tree.
			continue
		}
		if entry.GetType() == "file" && mimetypes.IsBinary(entry.GetName()) {
			continue
		}
		items = append(items, contentItem(entry))
	}
	return items, nil
}

// Read fetches a file's bytes. Files over 1MB come back without inline
// content and are downloaded instead.
func (c *Connector) Read(ctx context.Context, item domain.Item) (*domain.RawDocument, error) {
	if err := c.check(ctx); err != nil {
		return nil, err
	}

	file, _, err := c.client.GetContents(ctx, c.root.Owner, c.root.Repo, item.ID, c.root.Ref)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, fmt.Errorf("%s is a directory: %w", item.ID, domain.ErrInvalidInput)
	}

	var content []byte
	if file.GetEncoding() == "none" {
		content, err = c.client.DownloadContents(ctx, c.root.Owner, c.root.Repo, item.ID, c.root.Ref)
		if err != nil {
			return nil, err
		}
	} else {
		decoded, err := file.GetContent()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", item.ID, domain.ErrUnreadable)
		}
		content = []byte(decoded)
	}

	mimeType := item.MIMEType
	if mimeType == "" {
		mimeType = mimetypes.ByName(item.ID)
	}

	return &domain.RawDocument{
		Item:     item,
		URI:      c.fileURI(item.ID),
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

// fileURI builds the browsable URL of a file.
func (c *Connector) fileURI(p string) string {
	ref := c.root.Ref
	if ref == "" {
		ref = "HEAD"
	}
	return fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s", c.root.Owner, c.root.Repo, ref, p)
}

func contentItem(rc *gh.RepositoryContent) domain.Item {
	item := domain.Item{
		ID:          rc.GetPath(),
		Name:        rc.GetName(),
		IsContainer: rc.GetType() == "dir",
		Size:        int64(rc.GetSize()),
	}
	if item.Name == "" {
		item.Name = path.Base(item.ID)
	}
	if !item.IsContainer {
		item.MIMEType = mimetypes.ByName(item.Name)
	}
	return item
}
