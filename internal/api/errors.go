package api

import "fmt"

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return "request " + e.Op + " failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx response from the backend. Message holds the
// backend's error text and may be empty.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// IsClientError reports whether the backend rejected the request itself
// (a 4xx response), as opposed to failing to serve it.
func (e *StatusError) IsClientError() bool {
	return e.Code >= 400 && e.Code < 500
}

// DecodeError means the backend answered 2xx with a body that is not a
// valid status snapshot.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "failed to decode status snapshot: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

