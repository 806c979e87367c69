package likeindex

import "errors"

// Error classification sentinels.
//
// Implementations MAY wrap these with additional context via fmt.Errorf's
// %w verb. Callers MUST classify with errors.Is.
var (
	// ErrIngestFailure indicates the ingest source yielded an error;
	// any partial build is discarded.
	ErrIngestFailure = errors.New("likeindex: ingest failed")
	// ErrResourceExhausted indicates an allocation failed during build.
	ErrResourceExhausted = errors.New("likeindex: resource exhausted")
	// ErrNotBuilt indicates a query was issued against a Handle with no
	// successful build.
	ErrNotBuilt = errors.New("likeindex: index not built")
)

// PreconditionError names the internal-invariant-breach class at the facade;
// nothing in this package constructs or returns it. A malformed offset
// reaching the positional index panics with internal/index.PreconditionError,
// which is the value tests recover.
type PreconditionError struct {
	msg string
}

func (e *PreconditionError) Error() string { return e.msg }
