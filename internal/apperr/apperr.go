// Package apperr defines the error taxonomy shared by the store adapters,
// services and HTTP layer, and translates any error into a stable API shape.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

const (
	CodeDuplicateKey = "DUPLICATE_KEY"
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrNotFound is matched with errors.Is by every NotFoundError.
var ErrNotFound = errors.New("not found")

// DuplicateKeyError reports a unique-index violation. Field comes from the
// violated index key pattern, Value from the document that was being written.
type DuplicateKeyError struct {
	Field string
	Value any
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s already exists.", e.Field)
}

// ValidationError maps field names to human readable messages. Message
// overrides the summary line; request-level validation sets it.
type ValidationError struct {
	Fields  map[string]string
	Message string
}

// NewValidationError builds a ValidationError from alternating field/message pairs.
func NewValidationError(kv ...string) *ValidationError {
	v := &ValidationError{Fields: make(map[string]string, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Fields[kv[i]] = kv[i+1]
	}
	return v
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a message for field unless one is already present.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Empty reports whether no field failed.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Resource string
}

// NotFound returns a NotFoundError for resource.
func NotFound(resource string) *NotFoundError { return &NotFoundError{Resource: resource} }

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AppError is an operational error raised deliberately by a handler or service
// with a fixed status code.
type AppError struct {
	StatusCode int
	Message    string
}

// New returns an AppError with the given status.
func New(status int, message string) *AppError {
	return &AppError{StatusCode: status, Message: message}
}

// BadRequest is shorthand for a 400 AppError.
func BadRequest(message string) *AppError { return New(http.StatusBadRequest, message) }

func (e *AppError) Error() string { return e.Message }

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
