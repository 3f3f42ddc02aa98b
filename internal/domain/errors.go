package domain

import "errors"

// Core error taxonomy. Each error implies a different retry strategy for the
// caller, so they are always surfaced distinctly and never collapsed into a
// generic failure.
var (
	// ErrForbidden means the actor's role does not permit the operation.
	// Not retryable.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition means no edge exists from the booking's current
	// status for the requested transition. Not retryable.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrValidation means the request itself is malformed (bad date range,
	// missing required field). Not retryable without changing the input.
	ErrValidation = errors.New("validation failed")

	// ErrResourceBusy means the vehicle, staff member or driver became
	// unavailable between read and write. Retry against fresh counts.
	ErrResourceBusy = errors.New("resource busy")

	// ErrConcurrentModification means the booking changed between read and
	// write. Retry with a fresh read.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrFeeScheduleMissing means no driver-fee schedule entry exists for the
	// (category, days) pair. The quote fails closed rather than undercharging.
	ErrFeeScheduleMissing = errors.New("fee schedule entry missing")

	// ErrDistanceUnavailable means the distance estimator could not be
	// reached or timed out. A delivery booking cannot proceed without it.
	ErrDistanceUnavailable = errors.New("distance estimate unavailable")

	// ErrInspectionAlreadyRecorded means an inspection already exists for
	// this booking and phase. Inspections are write-once.
	ErrInspectionAlreadyRecorded = errors.New("inspection already recorded")

	// ErrNotAssigned means a driver acted on a trip not assigned to them.
	ErrNotAssigned = errors.New("driver not assigned to this trip")

	ErrNotFound = errors.New("not found")
)
