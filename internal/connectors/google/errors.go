package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	return statusCode(err) == http.StatusUnauthorized
}

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	return statusCode(err) == http.StatusForbidden
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return statusCode(err) == http.StatusNotFound
}

// IsRateLimited returns true if the error indicates rate limiting.
// Drive reports per-user limits as 403 with a rateLimitExceeded reason.
func IsRateLimited(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	if gerr.Code == http.StatusTooManyRequests {
		return true
	}
	if gerr.Code == http.StatusForbidden {
		for _, item := range gerr.Errors {
			if item.Reason == "rateLimitExceeded" || item.Reason == "userRateLimitExceeded" {
				return true
			}
		}
	}
	return false
}

// WrapError attaches the matching domain error to a Google API error.
// The original error stays in the chain.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var target error
	switch {
	case IsRateLimited(err):
		target = domain.ErrRateLimited
	case IsUnauthorized(err):
		target = domain.ErrAuthInvalid
	case IsForbidden(err):
		target = domain.ErrAuthRequired
	case IsNotFound(err):
		target = domain.ErrNotFound
	default:
		return err
	}
	return fmt.Errorf("%w: %w", target, err)
}

func statusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}
