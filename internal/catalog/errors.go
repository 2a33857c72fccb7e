package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is wrapped by ConfigurationError when a category
// identifier is outside the fixed enumeration.
var ErrUnknownCategory = errors.New("unknown category")

// ConfigurationError reports a filter identifier the catalog does not define.
type ConfigurationError struct {
	Category string
	Err      error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("catalog: category %q: %v", e.Category, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ValidationError reports input rejected before it reaches the Store, such as
// an upstream payload that is not a list of games.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "catalog: invalid input: " + e.Message
	}
	return fmt.Sprintf("catalog: invalid %s: %s", e.Field, e.Message)
}

// AsValidationError attempts to unwrap an error into a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
