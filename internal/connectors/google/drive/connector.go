// Package drive implements a connector for Google Drive folders.
//
// Roots have the form gdrive://{folderID}; gdrive://root (or an empty ID)
// names the user's My Drive. Google Docs and Slides are exported as plain
// text and Sheets as CSV. Other files are downloaded up to MaxDownloadSize.
package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/grokpedia/internal/connectors/google"
	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
)

// Scheme is the URI scheme for Drive roots.
const Scheme = "gdrive"

// Google Workspace MIME types.
const (
	MimeTypeGoogleDoc    = "application/vnd.google-apps.document"
	MimeTypeGoogleSheet  = "application/vnd.google-apps.spreadsheet"
	MimeTypeGoogleSlides = "application/vnd.google-apps.presentation"
	MimeTypeFolder       = "application/vnd.google-apps.folder"
	MimeTypeShortcut     = "application/vnd.google-apps.shortcut"
	mimeTypeAppsPrefix   = "application/vnd.google-apps."
)

// Export formats for Google Workspace files.
const (
	ExportMimeText = "text/plain"
	ExportMimeCSV  = "text/csv"
)

const (
	// MaxDownloadSize caps exported and downloaded content.
	MaxDownloadSize = 10 * 1024 * 1024

	pageSize   = 200
	listFields = "nextPageToken, files(id, name, mimeType, size, shortcutDetails)"
)

// exportFormats maps Workspace types to the format they are exported as.
var exportFormats = map[string]string{
	MimeTypeGoogleDoc:    ExportMimeText,
	MimeTypeGoogleSlides: ExportMimeText,
	MimeTypeGoogleSheet:  ExportMimeCSV,
}

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector walks a Drive folder. Item IDs are Drive file IDs.
type Connector struct {
	svc     *drive.Service
	rootID  string
	limiter *google.RateLimiter
	mu      sync.Mutex
	closed  bool
}

// ParseRoot returns the folder ID of a gdrive:// URI.
func ParseRoot(uri string) (string, error) {
	id, ok := strings.CutPrefix(uri, Scheme+"://")
	if !ok {
		return "", fmt.Errorf("%w: not a %s root: %s", domain.ErrInvalidInput, Scheme, uri)
	}
	id = strings.Trim(id, "/")
	if id == "" {
		id = "root"
	}
	return id, nil
}

// New creates a connector over an existing Drive service.
func New(svc *drive.Service, rootID string, limiter *google.RateLimiter) *Connector {
	if limiter == nil {
		limiter = google.NewRateLimiter(google.DriveRateLimit)
	}
	return &Connector{svc: svc, rootID: rootID, limiter: limiter}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "gdrive"
}

// RootID returns the folder ID the connector was opened at.
func (c *Connector) RootID() string {
	return c.rootID
}

// URI returns the gdrive:// form of the root folder.
func (c *Connector) URI() string {
	return Scheme + "://" + c.rootID
}

// ListChildren pages through the non-trashed children of a folder,
// folders first and then by name. Shortcuts resolve to their targets.
func (c *Connector) ListChildren(ctx context.Context, containerID string) ([]domain.Item, error) {
	if err := c.check(ctx); err != nil {
		return nil, err
	}

	var items []domain.Item
	pageToken := ""
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		call := c.svc.Files.List().Context(ctx).
			Q(fmt.Sprintf("'%s' in parents and trashed=false", containerID)).
			Fields(listFields).
			PageSize(pageSize).
			OrderBy("folder,name").
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		res, err := call.Do()
		if err != nil {
			return nil, c.wrapError(err, "list "+containerID)
		}

		for _, f := range res.Files {
			items = append(items, fileItem(f))
		}

		if res.NextPageToken == "" {
			break
		}
		pageToken = res.NextPageToken
	}

	return items, nil
}

// Read exports Workspace files and downloads everything else.
// Workspace types without a text export give domain.ErrUnsupportedType.
func (c *Connector) Read(ctx context.Context, item domain.Item) (*domain.RawDocument, error) {
	if err := c.check(ctx); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	mimeType := item.MIMEType
	var content []byte
	var err error

	if export, ok := exportFormats[item.MIMEType]; ok {
		content, err = c.export(ctx, item.ID, export)
		mimeType = export
	} else if strings.HasPrefix(item.MIMEType, mimeTypeAppsPrefix) {
		return nil, fmt.Errorf("%s (%s): %w", item.Name, item.MIMEType, domain.ErrUnsupportedType)
	} else {
		content, err = c.download(ctx, item.ID)
	}
	if err != nil {
		return nil, err
	}

	return &domain.RawDocument{
		Item:     item,
		URI:      "https://drive.google.com/file/d/" + item.ID,
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

func (c *Connector) export(ctx context.Context, fileID, mimeType string) ([]byte, error) {
	resp, err := c.svc.Files.Export(fileID, mimeType).Context(ctx).Download()
	if err != nil {
		return nil, c.wrapError(err, "export "+fileID)
	}
	defer resp.Body.Close()
	return readLimited(resp.Body, fileID)
}

func (c *Connector) download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := c.svc.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, c.wrapError(err, "download "+fileID)
	}
	defer resp.Body.Close()
	return readLimited(resp.Body, fileID)
}

// wrapError maps the error and backs the limiter off on rate limiting.
func (c *Connector) wrapError(err error, operation string) error {
	if google.IsRateLimited(err) {
		c.limiter.Backoff(retryAfter(err))
	}
	return fmt.Errorf("%s: %w", operation, google.WrapError(err))
}

func retryAfter(err error) time.Duration {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func readLimited(r io.Reader, fileID string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fileID, err)
	}
	if len(data) > MaxDownloadSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", fileID, MaxDownloadSize)
	}
	return data, nil
}

func fileItem(f *drive.File) domain.Item {
	id, mimeType := f.Id, f.MimeType
	if f.MimeType == MimeTypeShortcut && f.ShortcutDetails != nil {
		id, mimeType = f.ShortcutDetails.TargetId, f.ShortcutDetails.TargetMimeType
	}
	return domain.Item{
		ID:          id,
		Name:        f.Name,
		MIMEType:    mimeType,
		IsContainer: mimeType == MimeTypeFolder,
		Size:        f.Size,
	}
}
