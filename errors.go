package stabiliser

import "github.com/pkg/errors"

/*
Sentinel errors. Functions wrap them with context, callers match with errors.Is.
Malformed inputs to the classifiers are not errors: IsPauli and IsStabState simply
report false.
*/
var (
	// ErrInvalidParameters is returned for malformed construction or load arguments.
	ErrInvalidParameters = errors.New("stabiliser: invalid parameters")

	// ErrNotLoaded is returned when a checker is queried before any vector was loaded.
	ErrNotLoaded = errors.New("stabiliser: no vector loaded")

	// ErrInvalidState is returned when the canonical form of a non-stabiliser vector is requested.
	ErrInvalidState = errors.New("stabiliser: vector is not a stabiliser state")
)
