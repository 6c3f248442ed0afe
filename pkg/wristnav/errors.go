package wristnav

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoInput indicates neither buttons nor input devices were provided.
	ErrNoInput = errors.New("no input configured")

	// ErrNotRunning indicates the app was used before Run or after it returned.
	ErrNotRunning = errors.New("app is not running")
)

// InfrastructureError represents a failure of the environment the UI runs
// in (input device missing, window could not be created, message files
// broken). These errors are typically fatal.
//
// Navigation itself never produces one: race losses and rejected presses
// are normal outcomes.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "open_button", "create_window")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wristnav: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("wristnav: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}
