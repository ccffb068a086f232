package search

import "errors"

// ErrCancelled is returned when cooperative cancellation is observed between
// documents. The call returns no partial result; the caller may retry.
// Request-level validation failures are reported as
// *models.InvalidConfigurationError instead and are never retried.
var ErrCancelled = errors.New("search cancelled")
