package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound               = errors.New("resource not found")
	ErrAlreadyExists          = errors.New("resource already exists")
	ErrInvalidInput           = errors.New("invalid input")
	ErrBadRequest             = errors.New("bad request")
	ErrNegativeAmount         = errors.New("amount must be non-negative")
	ErrBadCurrency            = errors.New("currency must be an ISO-4217 code")
	ErrUnknownProvider        = errors.New("unknown payment provider")
	ErrInvalidStateTransition = errors.New("invalid payment state transition")
	ErrStrategyFailed         = errors.New("decision strategy failed")
	ErrProcessorFailed        = errors.New("processor charge failed")
	ErrProcessorNotRegistered = errors.New("no processor registered for provider")
	ErrNoRouteCandidates      = errors.New("no route candidates available")
	ErrMerchantNotActive      = errors.New("merchant not active")
)

// AppError represents application error with HTTP status
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrAlreadyExists)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}
