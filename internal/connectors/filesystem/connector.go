// Package filesystem reads documents from a local directory tree.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/grokpedia/internal/connectors/mimetypes"
	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
)

// Scheme is the URI scheme for local paths.
const Scheme = "file"

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector lists and reads files below a root directory.
// Item IDs are absolute paths with symlinks resolved, so a link back to an
// ancestor shows up as an already visited container.
type Connector struct {
	rootPath string
	mu       sync.Mutex
	closed   bool
}

// New creates a connector for a root given as a path or file:// URI.
func New(root string) (*Connector, error) {
	p := strings.TrimPrefix(root, Scheme+"://")
	if p == "" {
		return nil, fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", p, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	return &Connector{rootPath: abs}, nil
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "filesystem"
}

// RootID returns the absolute root path.
func (c *Connector) RootID() string {
	return c.rootPath
}

// URI returns the file:// form of the resolved root path.
func (c *Connector) URI() string {
	return Scheme + "://" + filepath.ToSlash(c.rootPath)
}

// ListChildren returns the entries of a directory in name order.
// A root that is a regular file lists as itself.
func (c *Connector) ListChildren(ctx context.Context, containerID string) ([]domain.Item, error) {
	if err := c.check(ctx); err != nil {
		return nil, err
	}

	info, err := os.Stat(containerID)
	if err != nil {
		return nil, wrapError(err, containerID)
	}
	if !info.IsDir() {
		return []domain.Item{fileItem(containerID, info)}, nil
	}

	entries, err := os.ReadDir(containerID)
	if err != nil {
		return nil, wrapError(err, containerID)
	}

	items := make([]domain.Item, 0, len(entries))
	for _, entry := range entries {
		p := filepath.Join(containerID, entry.Name())

		// Follow links so the walk sees what they point at. Entries that
		// cannot be resolved are listed as leaves so that Read reports them.
		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(p)
			if err != nil {
				items = append(items, brokenItem(p, entry.Name()))
				continue
			}
			p = target
		}

		fi, err := os.Stat(p)
		if err != nil {
			items = append(items, brokenItem(p, entry.Name()))
			continue
		}
		if fi.IsDir() {
			items = append(items, domain.Item{ID: p, Name: entry.Name(), IsContainer: true})
			continue
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		item := fileItem(p, fi)
		item.Name = entry.Name()
		items = append(items, item)
	}

	return items, nil
}

// Read loads a file's bytes.
func (c *Connector) Read(ctx context.Context, item domain.Item) (*domain.RawDocument, error) {
	if err := c.check(ctx); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(item.ID)
	if err != nil {
		return nil, wrapError(err, item.ID)
	}

	mimeType := item.MIMEType
	if mimeType == "" {
		mimeType = mimetypes.ByName(item.Name)
	}

	return &domain.RawDocument{
		Item:     item,
		URI:      Scheme + "://" + filepath.ToSlash(item.ID),
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

func fileItem(p string, info fs.FileInfo) domain.Item {
	return domain.Item{
		ID:       p,
		Name:     filepath.Base(p),
		MIMEType: mimetypes.ByName(p),
		Size:     info.Size(),
	}
}

func brokenItem(p, name string) domain.Item {
	return domain.Item{ID: p, Name: name, MIMEType: mimetypes.ByName(name)}
}

func wrapError(err error, p string) error {
	if os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", p, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", p, err)
}
