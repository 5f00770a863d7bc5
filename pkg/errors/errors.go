package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies an AppError. The HTTP layer maps each kind to a status code.
type Kind int

const (
	Unknown Kind = iota
	// Validation marks bad coordinates, calendar days, weights or profile fields
	Validation
	// NotFound marks a missing activity profile
	NotFound
	// AlreadyExists marks a profile name collision
	AlreadyExists
	Database
	// ExternalAPI marks a failing NASA POWER, Open-Meteo or Nominatim call
	ExternalAPI
	Configuration
)

var kindNames = [...]string{
	Unknown:       "unknown",
	Validation:    "validation",
	NotFound:      "not_found",
	AlreadyExists: "already_exists",
	Database:      "database",
	ExternalAPI:   "external_api",
	Configuration: "configuration",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[Unknown]
	}
	return kindNames[k]
}

type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

func NewValidationError(message string) *AppError {
	return New(Validation, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFound, message)
}

func NewAlreadyExistsError(message string) *AppError {
	return New(AlreadyExists, message)
}

func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(Database, message, cause)
}

func NewExternalAPIError(message string, cause error) *AppError {
	return Wrap(ExternalAPI, message, cause)
}

func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(Configuration, message, cause)
}

// KindOf returns the kind of the first AppError in err's chain, Unknown if there is none
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}

func IsNotFoundError(err error) bool {
	return KindOf(err) == NotFound
}

func IsAlreadyExistsError(err error) bool {
	return KindOf(err) == AlreadyExists
}

func IsValidationError(err error) bool {
	return KindOf(err) == Validation
}

func IsDatabaseError(err error) bool {
	return KindOf(err) == Database
}

func IsExternalAPIError(err error) bool {
	return KindOf(err) == ExternalAPI
}

func IsConfigurationError(err error) bool {
	return KindOf(err) == Configuration
}
