package domain

import "errors"

// Domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrAlreadyExists  = errors.New("resource already exists")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalError  = errors.New("internal error")
	ErrUserNotFound   = errors.New("user not found")
	ErrBranchNotFound = errors.New("branch not found")
	// ErrStaleSnapshot is returned when a payment's optimistic version
	// check fails because another payment landed first.
	ErrStaleSnapshot = errors.New("loan was modified by a concurrent payment")

	ErrPhotoNotFound    = errors.New("collateral photo not found")
	ErrInvalidPhoto     = errors.New("invalid photo file")
	ErrPhotoTooLarge    = errors.New("photo exceeds maximum size")
	ErrUnsupportedPhoto = errors.New("unsupported photo format")
)
