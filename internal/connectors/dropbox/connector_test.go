package dropbox

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// fakeAPI serves a fixed folder tree.
type fakeAPI struct {
	pages     map[string][]*files.ListFolderResult
	contents  map[string]string
	listErr   error
	continued []string
}

func (f *fakeAPI) ListFolder(arg *files.ListFolderArg) (*files.ListFolderResult, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	pages, ok := f.pages[arg.Path]
	if !ok {
		return nil, errors.New("path/not_found/..")
	}
	return pages[0], nil
}

func (f *fakeAPI) ListFolderContinue(arg *files.ListFolderContinueArg) (*files.ListFolderResult, error) {
	f.continued = append(f.continued, arg.Cursor)
	path, _, _ := strings.Cut(arg.Cursor, "#")
	return f.pages[path][1], nil
}

func (f *fakeAPI) Download(arg *files.DownloadArg) (*files.FileMetadata, io.ReadCloser, error) {
	body, ok := f.contents[arg.Path]
	if !ok {
		return nil, nil, errors.New("path/not_found/")
	}
	meta := &files.FileMetadata{}
	meta.PathDisplay = "/Docs/Notes.md"
	return meta, io.NopCloser(strings.NewReader(body)), nil
}

func folder(name, path string) *files.FolderMetadata {
	m := &files.FolderMetadata{}
	m.Name = name
	m.PathLower = path
	return m
}

func file(name, path string, size uint64) *files.FileMetadata {
	m := &files.FileMetadata{Size: size}
	m.Name = name
	m.PathLower = path
	return m
}

func newFake() *fakeAPI {
	return &fakeAPI{
		pages: map[string][]*files.ListFolderResult{
			"/docs": {
				{
					Entries: []files.IsMetadata{folder("Guides", "/docs/guides"), file("Notes.md", "/docs/notes.md", 9)},
					Cursor:  "/docs#1",
					HasMore: true,
				},
				{
					Entries: []files.IsMetadata{&files.DeletedMetadata{}, file("a.pdf", "/docs/a.pdf", 100)},
				},
			},
		},
		contents: map[string]string{"/docs/notes.md": "# Notes\n"},
	}
}

func TestParseRoot(t *testing.T) {
	tests := []struct {
		uri     string
		want    string
		wantErr bool
	}{
		{uri: "dropbox://", want: ""},
		{uri: "dropbox://Docs", want: "/Docs"},
		{uri: "dropbox:///Docs/Guides/", want: "/Docs/Guides"},
		{uri: "file:///tmp", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := ParseRoot(tt.uri)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient("")
	assert.ErrorIs(t, err, domain.ErrAuthRequired)

	api, err := NewClient("token")
	require.NoError(t, err)
	assert.NotNil(t, api)
}

func TestConnector_ListChildren(t *testing.T) {
	api := newFake()
	c := New(api, "/docs")
	assert.Equal(t, "/docs", c.RootID())
	assert.Equal(t, "dropbox:///docs", c.URI())
	assert.Equal(t, "dropbox", c.Type())

	items, err := c.ListChildren(context.Background(), c.RootID())
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, domain.Item{ID: "/docs/guides", Name: "Guides", IsContainer: true}, items[0])
	assert.Equal(t, domain.Item{ID: "/docs/notes.md", Name: "Notes.md", MIMEType: "text/markdown", Size: 9}, items[1])
	assert.Equal(t, "application/pdf", items[2].MIMEType)
	assert.Equal(t, []string{"/docs#1"}, api.continued)
}

func TestConnector_ListChildren_Errors(t *testing.T) {
	t.Run("missing folder", func(t *testing.T) {
		c := New(newFake(), "/gone")
		_, err := c.ListChildren(context.Background(), c.RootID())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("expired token", func(t *testing.T) {
		api := newFake()
		api.listErr = errors.New("expired_access_token/")
		c := New(api, "/docs")
		_, err := c.ListChildren(context.Background(), c.RootID())
		assert.ErrorIs(t, err, domain.ErrAuthInvalid)
	})

	t.Run("rate limited", func(t *testing.T) {
		api := newFake()
		api.listErr = errors.New("too_many_requests/")
		c := New(api, "/docs")
		_, err := c.ListChildren(context.Background(), c.RootID())
		assert.ErrorIs(t, err, domain.ErrRateLimited)
	})
}

func TestConnector_Read(t *testing.T) {
	c := New(newFake(), "/docs")

	raw, err := c.Read(context.Background(), domain.Item{ID: "/docs/notes.md", Name: "Notes.md", MIMEType: "text/markdown"})
	require.NoError(t, err)
	assert.Equal(t, "# Notes\n", string(raw.Content))
	assert.Equal(t, "text/markdown", raw.MIMEType)
	assert.Equal(t, "dropbox://Docs/Notes.md", raw.URI)

	_, err = c.Read(context.Background(), domain.Item{ID: "/docs/missing.txt"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConnector_Closed(t *testing.T) {
	c := New(newFake(), "/docs")
	require.NoError(t, c.Close())

	_, err := c.ListChildren(context.Background(), c.RootID())
	assert.ErrorIs(t, err, domain.ErrConnectorClosed)
}
