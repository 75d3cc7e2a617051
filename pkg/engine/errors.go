package engine

import (
	"errors"
	"fmt"

	"sheetstep/pkg/grid"
)

// ConfigError marks an invocation that is invalid before any network
// call is made.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func configErr(field, reason string) error {
	return &ConfigError{Field: field, Reason: reason}
}

// IsConfig reports whether err stems from invalid invocation
// configuration.
func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// ErrShapeMismatch wraps grid.ErrShape so callers can test raw-mode
// shape failures without importing the grid package.
var ErrShapeMismatch = grid.ErrShape
