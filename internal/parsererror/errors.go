// Package parsererror defines the typed errors raised while loading rule
// tables and reading transaction files. Classification itself never errors.
package parsererror

import (
	"errors"
	"fmt"
	"strings"
)

// ParseError represents a field that could not be parsed from input data.
type ParseError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a data-integrity failure in a rule table entry.
type ValidationError struct {
	Table  string
	Entry  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("invalid %s table: %s", e.Table, e.Reason)
	}
	return fmt.Sprintf("invalid %s table entry %q: %s", e.Table, e.Entry, e.Reason)
}

// ValidationErrors collects every integrity failure found in one load so the
// table author sees all of them at once.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual failures to errors.As.
func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, e := range v {
		errs[i] = e
	}
	return errs
}

// Err returns nil when no failures were collected.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// InvalidFormatError represents an input file that does not have the
// expected layout.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// IsValidation reports whether err carries at least one ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
