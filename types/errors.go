package types

import (
	"errors"
	"fmt"
)

// Error taxonomy of the engine. The serving boundary maps these to
// transport-level codes; everything else propagates as a generic failure.
var (
	// ErrNotFound - unknown product id. Recoverable, 404-equivalent.
	ErrNotFound = errors.New("product not found")
	// ErrPolicyUnavailable - no active (or loadable) policy. Recoverable,
	// 503-equivalent, distinct from ErrNotFound so callers can tell
	// "no such product" from "model not ready".
	ErrPolicyUnavailable = errors.New("no active policy available")
)

// ConfigurationError is fatal at startup of a training or evaluation run
// (empty context table, malformed hyperparameters).
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

func Configuration(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// UsageError is a programmer error (step before reset, action out of the
// declared bounds). Not retried.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return "usage error: " + e.Reason
}

func Usage(format string, args ...any) error {
	return &UsageError{Reason: fmt.Sprintf(format, args...)}
}

func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}
