package catalog

import "fmt"

// NetworkError wraps a transport failure: DNS, connect, timeout, or a body
// that could not be read.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("catalog: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response carrying the backend message.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog: remote error %d", e.Status)
	}
	return fmt.Sprintf("catalog: remote error %d: %s", e.Status, e.Message)
}

// IsConflict reports whether the backend rejected a create as a duplicate.
func (e *ServerError) IsConflict() bool { return e.Status == 409 }
