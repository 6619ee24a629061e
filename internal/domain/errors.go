package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrRepresentationMismatch = errors.New("presentation kind mismatch")
	ErrInvalidOption          = errors.New("invalid toast option")
)

// MisuseError describes a contract violation by calling code, such as
// feeding a flag state to an item-driven controller. It is raised with panic.
type MisuseError struct {
	Op   string // Operation: "observe", "sync", ...
	Want Kind
	Got  Kind
	Err  error
}

func (e *MisuseError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("toast %s: controller is %s-driven but received %s state: %v", e.Op, e.Want, e.Got, e.Err)
	}
	return fmt.Sprintf("toast: controller is %s-driven but received %s state: %v", e.Want, e.Got, e.Err)
}

func (e *MisuseError) Unwrap() error {
	return e.Err
}

// NewMismatch builds the MisuseError for a kind mismatch
func NewMismatch(op string, want, got Kind) *MisuseError {
	return &MisuseError{Op: op, Want: want, Got: got, Err: ErrRepresentationMismatch}
}
