package query

import "errors"

// ErrNoContextService indicates that no context service was provided.
var ErrNoContextService = errors.New("context service is required")
