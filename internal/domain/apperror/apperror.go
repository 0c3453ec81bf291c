// Package apperror holds the typed failures returned across the sign-up flow.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Status classifies an Error for transport mapping.
type Status string

const (
	StatusInvalid    Status = "INVALID"
	StatusConflict   Status = "CONFLICT"
	StatusRepository Status = "REPOSITORY_ERROR"
	StatusProvider   Status = "PROVIDER_ERROR"
	StatusInternal   Status = "INTERNAL_ERROR"
)

// Kind is the stable machine-readable name of an Error.
type Kind string

const (
	KindInvalidName          Kind = "InvalidNameError"
	KindInvalidPassword      Kind = "InvalidPasswordError"
	KindInvalidWhatsApp      Kind = "InvalidWhatsAppError"
	KindInvalidEmail         Kind = "InvalidEmailError"
	KindInvalidID            Kind = "InvalidIDError"
	KindInvalidDateTime      Kind = "InvalidDateTimeError"
	KindWhatsAppAlreadyInUse Kind = "WhatsAppAlreadyInUseError"
	KindEmailAlreadyInUse    Kind = "EmailAlreadyInUseError"
	KindIDGeneration         Kind = "IdGenerationError"
	KindRepository           Kind = "RepositoryError"
	KindProvider             Kind = "ProviderError"
	KindInternal             Kind = "InternalServerError"
)

// UnexpectedMessage is the only text clients see for unclassified failures.
const UnexpectedMessage = "An unexpected error occurred"

type Error struct {
	Kind    Kind
	Status  Status
	Message string
	Err     error
}

func New(kind Kind, status Status, message string, cause error) *Error {
	return &Error{Kind: kind, Status: status, Message: message, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the classification to a response code.
func (e *Error) HTTPStatus() int {
	switch e.Status {
	case StatusInvalid:
		return http.StatusBadRequest
	case StatusConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or KindInternal when err is not typed.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

func forOwner(ownerID string) string {
	if ownerID == "" {
		return ""
	}
	return " with ID " + ownerID
}

func InvalidName(model, name, ownerID string) *Error {
	msg := fmt.Sprintf("Invalid %s name for %s %s%s", model, model, name, forOwner(ownerID))
	return New(KindInvalidName, StatusInvalid, msg, nil)
}

func InvalidPassword(model, reason, ownerID string) *Error {
	msg := fmt.Sprintf("Invalid password for %s%s: %s", model, forOwner(ownerID), reason)
	return New(KindInvalidPassword, StatusInvalid, msg, nil)
}

func InvalidWhatsApp(model, whatsApp, ownerID string) *Error {
	msg := fmt.Sprintf("Invalid WhatsApp number %s for %s%s", whatsApp, model, forOwner(ownerID))
	return New(KindInvalidWhatsApp, StatusInvalid, msg, nil)
}

func InvalidEmail(model, email, ownerID string) *Error {
	msg := fmt.Sprintf("Invalid email %s for %s%s", email, model, forOwner(ownerID))
	return New(KindInvalidEmail, StatusInvalid, msg, nil)
}

func InvalidID(model, id string) *Error {
	return New(KindInvalidID, StatusInvalid, fmt.Sprintf("Invalid ID %q for %s", id, model), nil)
}

func InvalidDateTime(value string, cause error) *Error {
	return New(KindInvalidDateTime, StatusInvalid, "Invalid DateTime value: "+value, cause)
}

func WhatsAppAlreadyInUse(model, whatsApp string) *Error {
	return New(KindWhatsAppAlreadyInUse, StatusConflict, fmt.Sprintf("WhatsApp already in use for %s %s", model, whatsApp), nil)
}

func EmailAlreadyInUse(model, email string) *Error {
	return New(KindEmailAlreadyInUse, StatusConflict, fmt.Sprintf("Email already in use for %s %s", model, email), nil)
}

func IDGeneration(model string, cause error) *Error {
	return New(KindIDGeneration, StatusInternal, "Failed to generate ID for "+model, cause)
}

// Repository wraps a storage failure raised by an external library.
func Repository(repository, method, externalLib string, cause error) *Error {
	msg := fmt.Sprintf("Error in %s repository in %s method. Error in external lib name: %s.", repository, method, externalLib)
	return New(KindRepository, StatusRepository, msg, cause)
}

// Provider wraps a failure of a provider backed by an external library.
func Provider(provider, method, externalLib string, cause error) *Error {
	msg := fmt.Sprintf("Error in %s provider in %s method. Error in external lib name: %s.", provider, method, externalLib)
	return New(KindProvider, StatusProvider, msg, cause)
}

func Internal(cause error) *Error {
	return New(KindInternal, StatusInternal, UnexpectedMessage, cause)
}
