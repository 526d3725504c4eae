// Package google provides shared infrastructure for Google API connectors:
// service construction from credentials, googleapi error mapping and
// rate limiting.
//
// # Credentials
//
// A service-account or authorised-user JSON file (the format read by
// GOOGLE_APPLICATION_CREDENTIALS) is preferred. An OAuth access token can be
// supplied instead; it is used as-is through a static token source and is not
// refreshed.
//
// # OAuth2 Scopes
//
//   - https://www.googleapis.com/auth/drive.readonly
package google
