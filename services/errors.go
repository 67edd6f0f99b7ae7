package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindAuthorization
	KindConflict
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuthorization:
		return "authorization"
	case KindConflict:
		return "conflict"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

// GenericFailure is all a caller learns about a persistence failure.
const GenericFailure = "An error occurred while processing your request. Please try again."

// AppError is the only error type services hand to controllers.
type AppError struct {
	Kind    ErrorKind
	Message string // safe to show to the user
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func NewValidation(msg string) *AppError { return &AppError{Kind: KindValidation, Message: msg} }
func NewNotFound(msg string) *AppError   { return &AppError{Kind: KindNotFound, Message: msg} }
func NewForbidden(msg string) *AppError  { return &AppError{Kind: KindAuthorization, Message: msg} }
func NewConflict(msg string) *AppError   { return &AppError{Kind: KindConflict, Message: msg} }

func NewPersistence(err error) *AppError {
	return &AppError{Kind: KindPersistence, Message: GenericFailure, Err: err}
}

// KindOf treats anything that is not an AppError as a persistence failure.
func KindOf(err error) ErrorKind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindPersistence
}

// UserMessage never exposes the wrapped cause.
func UserMessage(err error) string {
	var ae *AppError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return GenericFailure
}

// asAppError keeps AppErrors, maps not-found and wraps the rest as persistence failures.
func asAppError(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return err
	}
	if notFound != "" && errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFound(notFound)
	}
	return NewPersistence(err)
}
