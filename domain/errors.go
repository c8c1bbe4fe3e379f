package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrConflict will throw if the current action already exists or lost a concurrent write
	ErrConflict = errors.New("your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
	// ErrUnauthorized will throw if the actor does not own the resource
	ErrUnauthorized = errors.New("user unauthorized")
	// ErrForbidden will throw if the action is not allowed between the two users
	ErrForbidden = errors.New("action is forbidden")
	// ErrUnavailable wraps transient store failures; the caller may retry
	ErrUnavailable = errors.New("store unavailable")
	// ErrCacheMiss is returned by cache implementations when the key is absent
	ErrCacheMiss = errors.New("cache miss")
)

// IsRetryable reports whether err came from a transient store failure.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
