package service

import (
	"errors"
	"fmt"

	"github.com/avvvet/gym-services/internal/gymsvc/store"
)

// Kind classifies a failure so the transport can pick a status code.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindAuthentication
	KindConflict
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuthentication:
		return "authentication"
	case KindConflict:
		return "conflict"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

// Error is a per-request failure with a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func notFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func unauthenticated(message string) error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// storeErr classifies an error coming back from the entity store.
// Errors that are already classified pass through unchanged.
func storeErr(message string, err error) error {
	if err == nil {
		return nil
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return err
	}
	if errors.Is(err, store.ErrDuplicate) {
		return &Error{Kind: KindConflict, Message: "A record with the same email, phone or id already exists", Err: err}
	}
	if errors.Is(err, store.ErrNotFound) {
		return &Error{Kind: KindNotFound, Message: "Record not found", Err: err}
	}
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindPersistence for unclassified errors.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindPersistence
}

// MessageOf returns the caller-facing message of err.
func MessageOf(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return "Internal server error"
}
