package game

import "fmt"

// ErrorCode is the stable error taxonomy surfaced at the boundary.
type ErrorCode string

const (
	CodeRoomNotFound ErrorCode = "ROOM_NOT_FOUND"
	CodeRoomExpired  ErrorCode = "ROOM_EXPIRED"
	CodeNameTaken    ErrorCode = "NAME_TAKEN"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeBadState     ErrorCode = "BAD_STATE"
	CodeNotYourTurn  ErrorCode = "NOT_YOUR_TURN"
	CodeValidation   ErrorCode = "VALIDATION"
)

// Error is a domain failure returned (never panicked) by every lifecycle
// function. Callers switch on Code; Message is safe to show to a client.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func badState(format string, args ...any) *Error {
	return newError(CodeBadState, format, args...)
}

func validation(format string, args ...any) *Error {
	return newError(CodeValidation, format, args...)
}

func forbidden(format string, args ...any) *Error {
	return newError(CodeForbidden, format, args...)
}

func notYourTurn(format string, args ...any) *Error {
	return newError(CodeNotYourTurn, format, args...)
}
