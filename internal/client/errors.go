package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure categories. Use errors.Is against an error returned by Client.
var (
	ErrUnreachable      = errors.New("server unreachable")
	ErrBadRequest       = errors.New("bad request")
	ErrNotFound         = errors.New("not found")
	ErrServer           = errors.New("internal server error")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrInvalidResponse  = errors.New("invalid response")
)

// User-facing messages, shown verbatim by front ends.
const (
	MsgUnreachable     = "Unable to connect to the server. Please check if the backend is running."
	MsgBadRequest      = "Invalid request. Please check your input."
	MsgNotFound        = "Tweet not found."
	MsgServer          = "Internal server error. Please try again later."
	MsgInvalidResponse = "Unexpected response from the server."
)

// Error is returned by every Client method on failure. Its Error() text is the
// human-readable message; Kind is one of the sentinels above.
type Error struct {
	Kind    error
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is this error's kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

func unreachable(err error) *Error {
	return &Error{Kind: ErrUnreachable, Message: MsgUnreachable, Err: err}
}

func invalidResponse(status int, err error) *Error {
	return &Error{Kind: ErrInvalidResponse, Status: status, Message: MsgInvalidResponse, Err: err}
}

// statusError maps a non-2xx status to its category and message.
func statusError(status int) *Error {
	e := &Error{Status: status}
	switch status {
	case http.StatusBadRequest:
		e.Kind, e.Message = ErrBadRequest, MsgBadRequest
	case http.StatusNotFound:
		e.Kind, e.Message = ErrNotFound, MsgNotFound
	case http.StatusInternalServerError:
		e.Kind, e.Message = ErrServer, MsgServer
	default:
		e.Kind = ErrUnexpectedStatus
		e.Message = fmt.Sprintf("Error Code: %d\nMessage: %s", status, http.StatusText(status))
	}
	return e
}

// Message extracts the user-facing text from err. Errors that did not come
// from a Client are returned as is.
func Message(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}
