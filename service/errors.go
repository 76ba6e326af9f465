package service

import "errors"

// Error taxonomy shared by all services. Implementations wrap these with
// fmt.Errorf("...: %w", err) so callers can branch with errors.Is.
var (
	// ErrNotFound is returned when a member or referral owner is absent.
	ErrNotFound = errors.New("member not found")

	// ErrValidation is returned for malformed input or an unsupported
	// filter shape.
	ErrValidation = errors.New("validation failed")

	// ErrUnsupportedFilter is returned by a directory that cannot express
	// the requested query. It must be recovered locally via the in-process
	// fallback and never surface to the caller when the fallback succeeds.
	ErrUnsupportedFilter = errors.New("filter not supported by directory")

	// ErrConflict is returned for an illegal status transition or a
	// concurrent status-mutating operation on the same member.
	ErrConflict = errors.New("conflicting operation")

	// ErrRetriesExhausted is returned when personal-code generation keeps
	// colliding past the attempt limit.
	ErrRetriesExhausted = errors.New("code generation retries exhausted")
)
