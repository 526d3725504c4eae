// Package github implements a connector for files in a GitHub repository.
//
// A root has the form github://{owner}/{repo}[/{path}][@{ref}]. Directories
// under the path are containers; files are leaves. Listing uses the Contents
// API and large files (over 1MB, reported with encoding "none") are fetched
// through DownloadContents.
//
// # Authentication
//
// A personal access token or OAuth access token is sent through an oauth2
// static token source. Without a token the connector still reads public
// repositories at the unauthenticated limit of 60 requests per hour.
//
// # Rate Limiting
//
// Requests go through a dual-strategy limiter:
//
//  1. Proactive throttling: a token bucket holds requests to roughly 1.2 per
//     second, under the 5,000 per hour authenticated limit.
//
//  2. Reactive handling: X-RateLimit-Remaining and X-RateLimit-Reset are
//     tracked and requests wait for the reset when the quota runs low.
//
// # Errors
//
// API failures are returned as [APIError] or [RateLimitError]. Both unwrap
// to domain sentinels ([domain.ErrNotFound], [domain.ErrAuthInvalid],
// [domain.ErrRateLimited]) so callers test them with errors.Is.
package github
