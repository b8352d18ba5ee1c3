// Package apperr defines the classified application failure type shared by
// the store adapters, the validation gate and the HTTP error mapper. Every
// *Error maps to a 400 response carrying its user-facing message; anything
// else surfacing at the HTTP layer is treated as an unclassified 500.
package apperr

// Error is a classified failure with a fixed user-facing message and an
// optional underlying cause.
type Error struct {
	msg   string
	cause error
}

// New declares a classified failure with the given user-facing message.
func New(msg string) *Error {
	return &Error{msg: msg}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

// Message returns the user-facing message without the underlying cause.
func (e *Error) Message() string {
	return e.msg
}

// Unwrap exposes the underlying cause to errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches two classified failures by message, so errors.Is works across
// Wrap copies.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.msg == e.msg
}

// Wrap returns a copy of e carrying cause. The original sentinel stays
// matchable via errors.Is.
func (e *Error) Wrap(cause error) *Error {
	return &Error{msg: e.msg, cause: cause}
}

// ErrInvalidRequest covers malformed request fields that carry no more
// specific diagnosis.
var ErrInvalidRequest = New("Invalid request data provided.")

// MissingParam reports a required form or query parameter that was absent
// from the request.
func MissingParam(field string) *Error {
	return New("Missing required parameter: " + field)
}
