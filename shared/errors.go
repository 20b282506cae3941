package shared

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrUnauthenticated marks a request without a valid session. The HTTP
// error handler turns it into a 401 carrying the login address.
var ErrUnauthenticated = errors.New("unauthenticated")

// AppError carries the status and public message for a failed request. Err
// is the underlying cause and is only logged.
type AppError struct {
	StatusCode int         `json:"-"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Err        error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(status int, err error, message string) *AppError {
	return &AppError{StatusCode: status, Message: message, Err: err}
}

func NewBadRequestError(err error, message string) *AppError {
	return NewAppError(fiber.StatusBadRequest, err, message)
}

// NewValidationError attaches per-field details to a 400.
func NewValidationError(err error, details interface{}) *AppError {
	return &AppError{StatusCode: fiber.StatusBadRequest, Message: "Validation failed", Data: details, Err: err}
}

// NewUnauthorizedError returns a 401. redirectTo, when set, tells the client
// where to send the user to sign in.
func NewUnauthorizedError(err error, message, redirectTo string) *AppError {
	e := NewAppError(fiber.StatusUnauthorized, err, message)
	if redirectTo != "" {
		e.Data = fiber.Map{"redirect_to": redirectTo}
	}
	return e
}

func NewNotFoundError(err error, message string) *AppError {
	return NewAppError(fiber.StatusNotFound, err, message)
}

func NewTooManyRequestsError(err error, message string) *AppError {
	return NewAppError(fiber.StatusTooManyRequests, err, message)
}

func NewInternalError(err error, message string) *AppError {
	return NewAppError(fiber.StatusInternalServerError, err, message)
}

func NewBadGatewayError(err error, message string) *AppError {
	return NewAppError(fiber.StatusBadGateway, err, message)
}

// GetAppError unwraps an AppError, or converts a fiber error keeping its
// code. ok is false for anything else.
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &AppError{StatusCode: fiberErr.Code, Message: fiberErr.Message, Err: err}, true
	}

	return nil, false
}
