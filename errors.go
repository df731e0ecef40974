package authsession

import "errors"

var (
	// ErrJWTUnavailable is returned when JWT mode is enabled but the backend
	// capability probe reports the required extension as not installed.
	ErrJWTUnavailable = errors.New("jwt login unavailable on backend")
	// ErrNoCapability is returned by the deprecated login shims when no
	// backend integration has been bound to the controller.
	ErrNoCapability = errors.New("no backend capability bound")
	// ErrInvalidConfig is returned when controller configuration fails
	// validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrBuilderUsed is returned when a Builder is built more than once.
	ErrBuilderUsed = errors.New("builder already used")
)
