package jsonrpc

import "fmt"

// Standard JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeServerError    = -32000
)

// Error is a JSON-RPC error object. Handlers return it directly for
// protocol-level failures; codes outside the reserved -32768..-32000 range
// are application-defined and passed through untouched.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// NewError creates an Error with the given code and message.
func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Errorf creates an Error with a formatted message.
func Errorf(code int, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func NewParseError(message string) *Error {
	return NewError(CodeParseError, message)
}

func NewInvalidRequestError(message string) *Error {
	return NewError(CodeInvalidRequest, message)
}

func NewMethodNotFoundError(message string) *Error {
	return NewError(CodeMethodNotFound, message)
}

func NewInvalidParamsError(message string) *Error {
	return NewError(CodeInvalidParams, message)
}

func NewInternalError(message string) *Error {
	return NewError(CodeInternalError, message)
}
