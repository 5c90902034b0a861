// Package xerr defines the sentinel error kinds shared by the runtime value
// primitives (integer, decimal, xtime) and by the front-end/codegen
// pipeline. Callers use errors.Is to classify a failure without depending
// on its exact message.
package xerr

import "errors"

var (
	// ErrInvalidArgument is returned when a lexical form cannot be parsed:
	// malformed integers, decimals, dates, durations, or schema text.
	ErrInvalidArgument = errors.New("xbgen: invalid argument")

	// ErrOverflow is returned when a value cannot be represented in a
	// narrower type, e.g. converting an arbitrary-precision integer to
	// int64 when it does not fit.
	ErrOverflow = errors.New("xbgen: overflow")

	// ErrDivideByZero is returned by integer division (integer.DivMod,
	// Div, Mod) when the divisor is zero.
	ErrDivideByZero = errors.New("xbgen: divide by zero")

	// ErrParse is returned when schema source text (XSD, RELAX NG, or
	// DTD) cannot be lexed or parsed: a syntax error, not a reference
	// that fails to resolve once parsing succeeds.
	ErrParse = errors.New("xbgen: parse error")

	// ErrResolution is returned when a qname reference in the schema IR
	// does not resolve to any declaration after Set.Resolve.
	ErrResolution = errors.New("xbgen: unresolved reference")

	// ErrCodegen is returned when a structural constraint is violated
	// during code emission, e.g. a conditional-type-assignment branch
	// that cannot be mapped to any known type.
	ErrCodegen = errors.New("xbgen: codegen error")

	// ErrIO is returned when reading or writing schema, typemap, or
	// generated-output files fails for reasons unrelated to their
	// contents (missing file, permission denied, network failure).
	ErrIO = errors.New("xbgen: I/O error")

	// ErrUsage is returned when a command is invoked with missing or
	// contradictory arguments, distinct from any failure in the schema
	// or generated output itself.
	ErrUsage = errors.New("xbgen: usage error")
)
