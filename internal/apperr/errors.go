// Package apperr defines the error taxonomy shared by the HTTP and live
// connection boundaries. Domain code returns these sentinels (optionally
// wrapped); each boundary maps them to a fixed status code or error event.
package apperr

import "errors"

var (
	// ErrUnauthorized reports a missing or invalid bearer token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden reports an authenticated caller without permission:
	// wrong match role, or no accepted match between the two users.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound reports a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState reports an entity in the wrong lifecycle phase for
	// the requested transition.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidPayload reports malformed client input.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrInvalidContent reports content that is empty after trimming or
	// over the length cap.
	ErrInvalidContent = errors.New("invalid content")
	// ErrConflict reports a duplicate match or unique-constraint violation.
	ErrConflict = errors.New("conflict")
)

// HTTPStatus maps an error kind to its fixed HTTP status code. Unrecognized
// errors map to 500; callers log those and reply with a generic body.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return 401
	case errors.Is(err, ErrForbidden):
		return 403
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrInvalidPayload),
		errors.Is(err, ErrInvalidContent):
		return 400
	case errors.Is(err, ErrConflict):
		return 409
	default:
		return 500
	}
}
