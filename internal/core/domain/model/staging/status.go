package staging

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a staged package.
// It implements a state machine with defined transitions so packages
// follow the physical staging workflow.
//
// State transitions:
//
//	Unstaged ──> Staged ──┬──> Released
//	                      │
//	             Moved <──┴──┐
//	               │  └──────┤
//	               └──> Released
//
// Staged and Moved packages occupy exactly one shelf slot; Released
// packages hold none and accept no further transitions.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Unstaged is the initial status of a package before it is placed
	// on a shelf slot.
	Unstaged

	// Staged indicates the package occupies its first assigned shelf slot.
	Staged

	// Moved indicates the package has been relocated to a different slot
	// at least once. Further moves stay in Moved.
	Moved

	// Released indicates the package has left the staging area.
	// This is a final state; the package holds no slot.
	Released
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Unstaged:      "Unstaged",
		Staged:        "Staged",
		Moved:         "Moved",
		Released:      "Released",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Unstaged: "Unstaged",
		Staged:   "Staged",
		Moved:    "Moved",
		Released: "Released",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsOnShelf reports whether packages in this status occupy a shelf slot.
func (s Status) IsOnShelf() bool {
	return s == Staged || s == Moved
}

// Stage transitions the status to Staged.
//
// Valid transitions:
//   - Unstaged -> Staged (first slot assignment)
//
// Returns ErrPackageNotStaged-compatible validation errors for any other
// starting status: a package cannot be staged twice.
func (s Status) Stage() (Status, error) {
	if s != Unstaged {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to stage", s.String()),
		)
	}
	return Staged, nil
}

// Move transitions the status to Moved.
//
// Valid transitions:
//   - Staged -> Moved (first relocation)
//   - Moved -> Moved (subsequent relocations)
func (s Status) Move() (Status, error) {
	if !s.IsOnShelf() {
		return 0, ErrPackageNotStaged
	}
	return Moved, nil
}

// Release transitions the status to Released.
//
// Valid transitions:
//   - Staged -> Released
//   - Moved -> Released
//
// Released is a final state with no further transitions.
func (s Status) Release() (Status, error) {
	if !s.IsOnShelf() {
		return 0, ErrPackageNotStaged
	}
	return Released, nil
}
