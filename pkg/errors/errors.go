package visiontrain_errors

import "errors"

// API errors. The message is the `detail` string returned to the client,
// which is why these carry full sentences instead of the usual lowercase
// error text.
var (
	ErrUsernameTooShort   = errors.New("Username must be at least 5 characters long")
	ErrUsernameHasSpace   = errors.New("Username cannot contain spaces")
	ErrPasswordTooShort   = errors.New("Password must be at least 5 characters long")
	ErrPasswordHasSpace   = errors.New("Password cannot contain spaces")
	ErrUsernameTaken      = errors.New("Username already registered")
	ErrInvalidCredentials = errors.New("Invalid username or password")
)

// Repository errors
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// UpstreamError is returned when a call to the external training/prediction
// service fails. StatusCode is the upstream HTTP status, or 500 when the
// failure happened below HTTP (dial, timeout, reading the body).
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// NewUpstreamError wraps an upstream failure with the status the gateway
// should relay.
func NewUpstreamError(status int, message string) *UpstreamError {
	return &UpstreamError{StatusCode: status, Message: message}
}
