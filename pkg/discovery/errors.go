package discovery

import (
	"errors"
	"fmt"
)

var (
	// ErrShortResponse indicates the datagram is too short to be a response.
	ErrShortResponse = errors.New("short response")
	// ErrNonASCIIName indicates the device name contains non-ASCII bytes.
	ErrNonASCIIName = errors.New("non-ASCII device name")
)

// StateError is returned when an operation is invalid in the current state.
type StateError struct {
	State State
	Op    string
}

// Error implements error.
func (e *StateError) Error() string {
	return fmt.Sprintf("%s: invalid in state %s", e.Op, e.State)
}
