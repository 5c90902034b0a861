package xmlio

import (
	"encoding"
	"strconv"
)

// The Parse* helpers are the scalar conversion layer generated
// deserializers call when assigning attribute/character content into a
// typed field (§4.6.5). They panic on malformed input rather than
// returning an error, matching the pull-reader contract: a malformed
// scalar means the schema and document disagree, which the resolution-
// error taxonomy (§7) treats as fatal to the current parse.

func ParseInt(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		panic("xmlio: " + err.Error())
	}
	return v
}

func ParseUint(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		panic("xmlio: " + err.Error())
	}
	return v
}

func ParseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic("xmlio: " + err.Error())
	}
	return v
}

func ParseBool(s string) bool {
	v, err := strconv.ParseBool(s)
	if err != nil {
		panic("xmlio: " + err.Error())
	}
	return v
}

// ParseTextInto parses s via T's encoding.TextUnmarshaler, used for the
// runtime value primitives (integer.Int, decimal.Decimal, xtime.*) and
// any generated enum type that implements the interface.
func ParseTextInto[T interface {
	encoding.TextUnmarshaler
	*U
}, U any](s string) U {
	var u U
	t := T(&u)
	if err := t.UnmarshalText([]byte(s)); err != nil {
		panic("xmlio: " + err.Error())
	}
	return u
}
