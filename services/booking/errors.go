package booking

import "fmt"

// Error codes for booking failures. Each maps to a distinct HTTP status in
// the handler layer; none are retried internally.
const (
	CodeNotFound            = "notFound"
	CodeNotAuthorized       = "notAuthorized"
	CodeSlotUnavailable     = "slotUnavailable"
	CodeInvalidTransition   = "invalidTransition"
	CodePastDeadline        = "pastDeadline"
	CodeMentorNotConfigured = "mentorNotConfigured"
)

// Error is a booking failure with a stable machine-readable code.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFoundError(msg string) error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func NewNotAuthorizedError(msg string) error {
	return &Error{Code: CodeNotAuthorized, Message: msg}
}

func NewSlotUnavailableError(msg string) error {
	return &Error{Code: CodeSlotUnavailable, Message: msg}
}

func NewInvalidTransitionError(msg string) error {
	return &Error{Code: CodeInvalidTransition, Message: msg}
}

func NewPastDeadlineError(msg string) error {
	return &Error{Code: CodePastDeadline, Message: msg}
}

func NewMentorNotConfiguredError(msg string) error {
	return &Error{Code: CodeMentorNotConfigured, Message: msg}
}

// CodeOf returns the booking error code, or "" for other errors.
func CodeOf(err error) string {
	if be, ok := err.(*Error); ok {
		return be.Code
	}
	return ""
}
