// Package errors provides custom error types for the savset system.
// These errors enable programmatic error checking with errors.Is and
// carry the offending source and variant through the merge pipeline.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the savset system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedVote indicates a source supplied a vote outside {0,1,?}
	ErrMalformedVote = errors.New("malformed vote")

	// ErrMalformedTier indicates the authority source supplied a tier outside -1..4
	ErrMalformedTier = errors.New("malformed review tier")

	// ErrDuplicateVariant indicates one source listed the same variant twice
	ErrDuplicateVariant = errors.New("duplicate variant in source")

	// ErrFinalized indicates an attempt to mutate a finalized dataset
	ErrFinalized = errors.New("dataset finalized")

	// ErrNotFinalized indicates an operation that requires a finalized dataset
	ErrNotFinalized = errors.New("dataset not finalized")
)

// MalformedVoteError is raised when a source supplies a vote value
// outside {0, 1, ?}. It is fatal for that source's contribution.
type MalformedVoteError struct {
	Source  string
	Variant string
	Token   string
}

// Error implements the error interface
func (e *MalformedVoteError) Error() string {
	return fmt.Sprintf("source %s supplied malformed vote %q for variant %s", e.Source, e.Token, e.Variant)
}

// Is implements errors.Is support
func (e *MalformedVoteError) Is(target error) bool {
	return target == ErrMalformedVote || target == ErrInvalidInput
}

// NewMalformedVoteError creates a new MalformedVoteError
func NewMalformedVoteError(source, variant, token string) *MalformedVoteError {
	return &MalformedVoteError{Source: source, Variant: variant, Token: token}
}

// MalformedTierError is raised when the review authority supplies a
// confidence tier outside -1..4. Same fatal path as malformed votes.
type MalformedTierError struct {
	Source  string
	Variant string
	Tier    int
}

// Error implements the error interface
func (e *MalformedTierError) Error() string {
	return fmt.Sprintf("source %s supplied malformed review tier %d for variant %s", e.Source, e.Tier, e.Variant)
}

// Is implements errors.Is support
func (e *MalformedTierError) Is(target error) bool {
	return target == ErrMalformedTier || target == ErrInvalidInput
}

// NewMalformedTierError creates a new MalformedTierError
func NewMalformedTierError(source, variant string, tier int) *MalformedTierError {
	return &MalformedTierError{Source: source, Variant: variant, Tier: tier}
}

// DuplicateVariantError is raised when a single source table contains
// two entries for the same variant. Ingestion of that source is
// rejected outright rather than letting the later entry win; source
// data is not guaranteed clean and a silent overwrite would hide it.
type DuplicateVariantError struct {
	Source    string
	Variant   string
	FirstLine int
	DupLine   int
}

// Error implements the error interface
func (e *DuplicateVariantError) Error() string {
	if e.FirstLine > 0 && e.DupLine > 0 {
		return fmt.Sprintf("source %s lists variant %s twice (lines %d and %d)", e.Source, e.Variant, e.FirstLine, e.DupLine)
	}
	return fmt.Sprintf("source %s lists variant %s twice", e.Source, e.Variant)
}

// Is implements errors.Is support
func (e *DuplicateVariantError) Is(target error) bool {
	return target == ErrDuplicateVariant || target == ErrInvalidInput
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// MergeError represents a failed fold-in of one source table. The
// underlying cause (malformed vote, duplicate variant) is wrapped so
// that errors.Is still matches the specific sentinel.
type MergeError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *MergeError) Error() string {
	return fmt.Sprintf("merging source %s: %v", e.Source, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *MergeError) Unwrap() error {
	return e.Err
}

// NewMergeError creates a new MergeError
func NewMergeError(source string, err error) *MergeError {
	return &MergeError{Source: source, Err: err}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "tsv", "yaml", "variant", "provenance"
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMalformedVote checks if an error is a malformed vote error
func IsMalformedVote(err error) bool {
	return errors.Is(err, ErrMalformedVote)
}

// IsDuplicateVariant checks if an error is a duplicate variant error
func IsDuplicateVariant(err error) bool {
	return errors.Is(err, ErrDuplicateVariant)
}

// IsFinalized checks if an error came from mutating a finalized dataset
func IsFinalized(err error) bool {
	return errors.Is(err, ErrFinalized)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapMerge wraps an error as a MergeError
func WrapMerge(source string, err error) error {
	if err == nil {
		return nil
	}
	return NewMergeError(source, err)
}
