package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure categories the API knows how to render.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindMalformedRequest
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindMalformedRequest:
		return "malformed_request"
	default:
		return "internal"
	}
}

// ViolationKind names the constraint a single field failed.
type ViolationKind string

const (
	ViolationRequired   ViolationKind = "required"
	ViolationEnum       ViolationKind = "enum"
	ViolationUnique     ViolationKind = "unique"
	ViolationIdentifier ViolationKind = "identifier"
	ViolationDate       ViolationKind = "date"
	ViolationOther      ViolationKind = "other"
)

// FieldViolation describes why one field of a document was rejected.
type FieldViolation struct {
	Field   string
	Kind    ViolationKind
	Value   string
	Allowed []string
	// Message carries the backend wording for ViolationOther.
	Message string
}

// Error is the single error type returned across the core. Handlers never
// render it themselves; the HTTP error handler switches on Kind.
type Error struct {
	Kind       ErrorKind
	Message    string
	Violations []FieldViolation
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrUserNotFound = NewNotFoundError("User not found")
	ErrFileNotFound = NewNotFoundError("File not found")

	// ErrStorageWrite marks failures persisting uploaded content.
	ErrStorageWrite = errors.New("storage write failed")
)

func NewValidationError(violations []FieldViolation) *Error {
	return &Error{Kind: KindValidation, Message: "Validation Error!", Violations: violations}
}

func NewNotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// NewConflictError reports a unique constraint hit on field with the
// offending value.
func NewConflictError(field, value string, cause error) *Error {
	return &Error{
		Kind:       KindConflict,
		Message:    "Validation Error!",
		Violations: []FieldViolation{{Field: field, Kind: ViolationUnique, Value: value}},
		Err:        cause,
	}
}

func NewMalformedRequestError(cause error) *Error {
	return &Error{Kind: KindMalformedRequest, Message: "Invalid JSON!", Err: cause}
}

func NewInternalError(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}

// AsError extracts the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsKind reports whether err carries a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	de, ok := AsError(err)
	return ok && de.Kind == kind
}
