package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// Credentials selects how a Google API client authenticates.
type Credentials struct {
	// File is a service-account or authorised-user JSON file.
	File string

	// Token is an OAuth access token, used when File is empty.
	Token string
}

// ClientOptions returns the option set for the credentials.
// Returns domain.ErrAuthRequired when neither is configured.
func (c Credentials) ClientOptions(scopes ...string) ([]option.ClientOption, error) {
	switch {
	case c.File != "":
		return []option.ClientOption{
			option.WithCredentialsFile(c.File),
			option.WithScopes(scopes...),
		}, nil
	case c.Token != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.Token})
		return []option.ClientOption{option.WithTokenSource(ts)}, nil
	default:
		return nil, fmt.Errorf("google: no credentials file or token: %w", domain.ErrAuthRequired)
	}
}

// NewDriveService creates a read-only Google Drive API service.
// Extra options are appended after the credential options.
func NewDriveService(ctx context.Context, creds Credentials, extra ...option.ClientOption) (*drive.Service, error) {
	opts, err := creds.ClientOptions(drive.DriveReadonlyScope)
	if err != nil {
		return nil, err
	}
	svc, err := drive.NewService(ctx, append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return svc, nil
}
