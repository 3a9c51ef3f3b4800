// Package errors provides custom error types for the conductor system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is, As and Join are re-exported so callers only need one errors import.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Common sentinel errors for the conductor system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the API token was rejected
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates that the API rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrServiceUnavailable indicates that the sheet service is temporarily unavailable
	ErrServiceUnavailable = errors.New("service unavailable")
)

// Sentinels for the sync pipeline. Each typed error below matches exactly one of them.
var (
	// ErrColumnNameNotFound indicates a mapping row names a column the sheet does not have
	ErrColumnNameNotFound = errors.New("column name not found")

	// ErrColumnIDNotFound indicates a cached column id no longer exists on the sheet
	ErrColumnIDNotFound = errors.New("column id not found")

	// ErrSheetIDNotFound indicates a sheet could not be fetched (missing, unshared or deleted)
	ErrSheetIDNotFound = errors.New("sheet id not found")

	// ErrUnsupportedDropdownType indicates an unknown DESTINATION_dropdown_type value
	ErrUnsupportedDropdownType = errors.New("unsupported dropdown type")

	// ErrContactExtraction indicates contact identities could not be read from a source column
	ErrContactExtraction = errors.New("contact extraction failed")

	// ErrPostUpdateFailed indicates the destination column update could not be posted
	ErrPostUpdateFailed = errors.New("post update failed")

	// ErrColumnIDsUnresolvable indicates the conductor sheet schema is missing required columns
	ErrColumnIDsUnresolvable = errors.New("conductor column ids unresolvable")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
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
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents an error returned by the sheet service API
type APIError struct {
	Service    string
	StatusCode int
	Code       int    // service specific error code
	RefID      string // service side reference for support requests
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "API error from %s", e.Service)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d", e.StatusCode)
		if e.Code != 0 {
			fmt.Fprintf(&b, ", code %d", e.Code)
		}
		b.WriteString(")")
	}
	fmt.Fprintf(&b, ": %s", e.Message)
	if e.RefID != "" {
		fmt.Fprintf(&b, " [ref %s]", e.RefID)
	}
	return b.String()
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == 404:
		return target == ErrNotFound
	case e.StatusCode == 401 || e.StatusCode == 403:
		return target == ErrUnauthorized
	case e.StatusCode == 429:
		return target == ErrRateLimited
	case e.StatusCode >= 500:
		return target == ErrServiceUnavailable
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(service string, statusCode int, message string) *APIError {
	return &APIError{
		Service:    service,
		StatusCode: statusCode,
		Message:    message,
	}
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

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", etc.
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s %s: %s", e.Format, e.File, e.Message)
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

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "fetch", "update", "create"
	Resource  string // "sheet", "columns", "rows", "request"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// ColumnError reports a column reference that could not be resolved on a sheet.
// Kind is one of ErrColumnNameNotFound or ErrColumnIDNotFound.
type ColumnError struct {
	Kind     error
	Role     string // "SOURCE" or "DESTINATION"
	SheetID  int64
	ColumnID int64
	Name     string
}

// Error implements the error interface
func (e *ColumnError) Error() string {
	if e.Kind == ErrColumnIDNotFound {
		return fmt.Sprintf("%s column id %d not found on sheet %d", strings.ToLower(e.Role), e.ColumnID, e.SheetID)
	}
	return fmt.Sprintf("%s column %q not found on sheet %d", strings.ToLower(e.Role), e.Name, e.SheetID)
}

// Is implements errors.Is support
func (e *ColumnError) Is(target error) bool {
	return target == e.Kind
}

// NewColumnNameNotFound creates a ColumnError for a missing column title.
func NewColumnNameNotFound(role string, sheetID int64, name string) *ColumnError {
	return &ColumnError{Kind: ErrColumnNameNotFound, Role: role, SheetID: sheetID, Name: name}
}

// NewColumnIDNotFound creates a ColumnError for a stale column id.
func NewColumnIDNotFound(role string, sheetID, columnID int64) *ColumnError {
	return &ColumnError{Kind: ErrColumnIDNotFound, Role: role, SheetID: sheetID, ColumnID: columnID}
}

// SheetError reports a sheet that could not be fetched during an audit.
type SheetError struct {
	Role    string
	SheetID int64
	Err     error
}

// Error implements the error interface
func (e *SheetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s sheet %d not found: %v", strings.ToLower(e.Role), e.SheetID, e.Err)
	}
	return fmt.Sprintf("%s sheet %d not found", strings.ToLower(e.Role), e.SheetID)
}

// Unwrap implements errors.Unwrap
func (e *SheetError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SheetError) Is(target error) bool {
	return target == ErrSheetIDNotFound
}

// NewSheetError creates a new SheetError
func NewSheetError(role string, sheetID int64, err error) *SheetError {
	return &SheetError{Role: role, SheetID: sheetID, Err: err}
}

// DropdownTypeError reports an unrecognized dropdown type string.
type DropdownTypeError struct {
	Value string
}

// Error implements the error interface
func (e *DropdownTypeError) Error() string {
	return fmt.Sprintf("unsupported dropdown type %q", e.Value)
}

// Is implements errors.Is support
func (e *DropdownTypeError) Is(target error) bool {
	return target == ErrUnsupportedDropdownType
}

// NewDropdownTypeError creates a new DropdownTypeError
func NewDropdownTypeError(value string) *DropdownTypeError {
	return &DropdownTypeError{Value: value}
}

// ExtractionError reports a source cell that does not hold a contact.
type ExtractionError struct {
	SheetID  int64
	ColumnID int64
	RowID    int64
	Message  string
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	if e.RowID != 0 {
		return fmt.Sprintf("contact extraction failed for sheet %d column %d row %d: %s", e.SheetID, e.ColumnID, e.RowID, e.Message)
	}
	return fmt.Sprintf("contact extraction failed for sheet %d column %d: %s", e.SheetID, e.ColumnID, e.Message)
}

// Is implements errors.Is support
func (e *ExtractionError) Is(target error) bool {
	return target == ErrContactExtraction
}

// UpdateError reports a failed destination column update.
type UpdateError struct {
	SheetID  int64
	ColumnID int64
	Err      error
}

// Error implements the error interface
func (e *UpdateError) Error() string {
	return fmt.Sprintf("post update to sheet %d column %d failed: %v", e.SheetID, e.ColumnID, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *UpdateError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *UpdateError) Is(target error) bool {
	return target == ErrPostUpdateFailed
}

// NewUpdateError creates a new UpdateError
func NewUpdateError(sheetID, columnID int64, err error) *UpdateError {
	return &UpdateError{SheetID: sheetID, ColumnID: columnID, Err: err}
}

// SchemaError reports conductor sheet columns that could not be found by title.
type SchemaError struct {
	SheetID int64
	Missing []string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	return fmt.Sprintf("failed to find column ids on conductor sheet %d, check that the column names have not changed: missing %s",
		e.SheetID, strings.Join(e.Missing, ", "))
}

// Is implements errors.Is support
func (e *SchemaError) Is(target error) bool {
	return target == ErrColumnIDsUnresolvable
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

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsFatal reports whether err must abort a whole run rather than a single row.
func IsFatal(err error) bool {
	return errors.Is(err, ErrColumnIDsUnresolvable)
}

// Helper wrapping functions for common patterns

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
