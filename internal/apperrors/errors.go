package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller is not authenticated or presented bad credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller is authenticated but lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrNoPrincipal is returned by session-bound operations when nobody is signed in.
var ErrNoPrincipal = errors.New("no authenticated principal")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
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

// AuthErrorCode is a provider-level error code raised by the identity provider.
type AuthErrorCode string

const (
	AuthInvalidCredential  AuthErrorCode = "auth/invalid-credential"
	AuthUserNotFound       AuthErrorCode = "auth/user-not-found"
	AuthEmailAlreadyInUse  AuthErrorCode = "auth/email-already-in-use"
	AuthWeakPassword       AuthErrorCode = "auth/weak-password"
	AuthNetworkRequestFail AuthErrorCode = "auth/network-request-failed"
	AuthExpiredActionCode  AuthErrorCode = "auth/expired-action-code"
	AuthUnknown            AuthErrorCode = "auth/unknown"
)

// AuthError is the coded error surfaced by identity providers.
// Callers translate the code into a user-facing message and never show Err.
type AuthError struct {
	Code AuthErrorCode
	Err  error
}

// NewAuthError builds an AuthError with an optional cause.
func NewAuthError(code AuthErrorCode, err error) *AuthError {
	return &AuthError{Code: code, Err: err}
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return string(e.Code)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// AuthCodeOf extracts the AuthErrorCode from err, defaulting to AuthUnknown.
func AuthCodeOf(err error) AuthErrorCode {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		switch authErr.Code {
		case AuthInvalidCredential, AuthUserNotFound, AuthEmailAlreadyInUse, AuthWeakPassword,
			AuthNetworkRequestFail, AuthExpiredActionCode:
			return authErr.Code
		}
	}
	return AuthUnknown
}
