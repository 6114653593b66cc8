package transport

import "fmt"

// ErrorKind classifies a transport-level failure.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindTimeout
	KindCanceled
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindCanceled:
		return "canceled"
	default:
		return "network"
	}
}

// Error is a transport-level failure: the request never produced an HTTP
// response. Potentially retryable by the caller; never retried here.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
