package urlmap

import "errors"

// Configuration-time errors. All of them are fatal to application setup and
// are never produced while serving requests.
var (
	// ErrDuplicateConverter is returned when a converter name is registered
	// twice in the same Registry.
	ErrDuplicateConverter = errors.New("converter is already registered")

	// ErrUnknownConverter is returned when a pattern references a converter
	// name that is not present in the Registry. Converter resolution happens
	// at rule-compile time only, never while matching.
	ErrUnknownConverter = errors.New("unknown converter")

	// ErrMalformedPattern is returned when a route pattern cannot be
	// compiled: unbalanced angle brackets, an empty or repeated variable
	// name, an unknown converter, or a path converter in a non-final
	// segment.
	ErrMalformedPattern = errors.New("malformed pattern")

	// ErrInvalidMethod is returned when a registered method is not a valid
	// HTTP method token per RFC 9110 Section 9.
	ErrInvalidMethod = errors.New("invalid method")

	// ErrAmbiguousRoute is returned when a rule is registered whose shape
	// (literal segments, variable positions and converter types, slash
	// policy) is identical to an existing rule with an overlapping method
	// set.
	ErrAmbiguousRoute = errors.New("ambiguous route")

	// ErrTableFrozen is returned when a rule is registered after the table
	// has served its first match. The table is read-only once serving
	// begins.
	ErrTableFrozen = errors.New("rule table is frozen")
)

// Reverse-lookup errors, surfaced by Map.Build.
var (
	// ErrEndpointNotFound is returned when no rule is registered under the
	// requested endpoint name.
	ErrEndpointNotFound = errors.New("endpoint is not registered")

	// ErrBuildMismatch is returned when no rule registered under the
	// endpoint can be satisfied from the supplied arguments, or when a
	// value fails converter formatting.
	ErrBuildMismatch = errors.New("arguments do not satisfy the rule")
)
