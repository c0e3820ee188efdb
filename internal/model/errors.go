package model

import "errors"

// Error taxonomy shared by services and the HTTP layer. Services wrap these
// with context via fmt.Errorf("...: %w", err); handlers map them with errors.Is.
var (
	// ErrNotFound indicates a referenced entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a unique-key violation, e.g. a taken email.
	ErrConflict = errors.New("conflict")
	// ErrInvalidState indicates an operation illegal for the entity's
	// current lifecycle state, e.g. approving an already-approved gap.
	ErrInvalidState = errors.New("invalid state")
	// ErrUnauthenticated indicates no resolvable identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden indicates a resolved identity with insufficient role.
	ErrForbidden = errors.New("forbidden")
	// ErrUpstream indicates a failed or timed-out external collaborator call.
	ErrUpstream = errors.New("upstream failure")
)
