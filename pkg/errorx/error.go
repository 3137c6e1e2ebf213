package errorx

import "fmt"

// Error is the only error type rendered to clients. Anything else is mapped
// to Unknown by the router.
type Error struct {
	Code    Code
	Message string
}

func (e Error) Error() string {
	return e.Message
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

var Unknown = Error{Code: 100000, Message: "Request failed"}
