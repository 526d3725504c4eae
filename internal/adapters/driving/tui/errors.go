package tui

import "errors"

// ErrMissingContextService is returned when the context service is not provided.
var ErrMissingContextService = errors.New("tui: context service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
