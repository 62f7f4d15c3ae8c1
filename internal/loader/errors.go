package loader

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type Kind string

const (
	KindHTTPStatus Kind = "HTTP_STATUS"
	KindTransport  Kind = "TRANSPORT"
)

// FetchError is the only error Fetch returns.
type FetchError struct {
	Kind       Kind
	Message    string
	StatusCode int // set for KindHTTPStatus
	Err        error
	Stack      []byte
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) StackTrace() []byte {
	return e.Stack
}

func newFetchError(kind Kind, message string, err error) *FetchError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &FetchError{
		Kind:    kind,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func httpStatus(code int) *FetchError {
	e := newFetchError(KindHTTPStatus, fmt.Sprintf("unexpected status code: %d", code), nil)
	e.StatusCode = code
	return e
}

func transport(message string, err error) *FetchError {
	return newFetchError(KindTransport, message, err)
}

func IsHTTPStatus(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindHTTPStatus
}

func IsTransport(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindTransport
}
