package errs

import "errors"

// Sentinel errors shared across the booking core layers
var (
	// Aggregate errors
	ErrBookingNotFound     = errors.New("booking not found")
	ErrBookingExists       = errors.New("booking already exists")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrReplayInconsistency = errors.New("replay inconsistency")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrActorNotAllowed     = errors.New("actor not allowed")

	// Policy errors
	ErrPolicyViolation = errors.New("policy violation")

	// Queue errors
	ErrInvalidSchedule = errors.New("invalid schedule spec")

	// Gateway errors
	ErrExternalGatewayFailure = errors.New("external gateway failure")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
