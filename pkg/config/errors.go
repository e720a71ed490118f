package config

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError is fatal at startup: a bad tunable, or a missing or
// malformed dictionary or puzzle source. Nothing can be solved without them.
type ConfigurationError struct {
	Source string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// Errorf builds a ConfigurationError for source with a formatted cause.
func Errorf(source, format string, args ...any) error {
	return &ConfigurationError{Source: source, Err: fmt.Errorf(format, args...)}
}

// Wrap marks err as a ConfigurationError for source. A nil err stays nil.
func Wrap(source string, err error) error {
	if err == nil {
		return nil
	}
	return &ConfigurationError{Source: source, Err: err}
}
