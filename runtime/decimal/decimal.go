// Package decimal implements a fixed-point signed decimal number, the
// runtime representation generated code uses for xs:decimal.
package decimal

import (
	"fmt"
	"strings"

	"github.com/cognitoiq/xbgen/runtime/integer"
	"github.com/cognitoiq/xbgen/runtime/xerr"
)

// Decimal is an integer coefficient together with a non-negative scale,
// the number of digits to the right of the implied radix point. The zero
// value is 0.
type Decimal struct {
	coeff integer.Int
	scale uint32
}

// New constructs a Decimal from a coefficient and scale directly.
func New(coeff integer.Int, scale uint32) Decimal {
	return Decimal{coeff: coeff, scale: scale}
}

// Parse parses the XSD lexical form of xs:decimal: an optional sign,
// digits, an optional '.' followed by digits. At least one digit must be
// present on either side of the decimal point (or both).
func Parse(s string) (Decimal, error) {
	orig := s
	if s == "" {
		return Decimal{}, fmt.Errorf("decimal: empty string: %w", xerr.ErrInvalidArgument)
	}
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" && fracPart == "" {
		return Decimal{}, fmt.Errorf("decimal: no digits in %q: %w", orig, xerr.ErrInvalidArgument)
	}
	for _, c := range intPart + fracPart {
		if c < '0' || c > '9' {
			return Decimal{}, fmt.Errorf("decimal: invalid character in %q: %w", orig, xerr.ErrInvalidArgument)
		}
	}
	digits := intPart + fracPart
	if digits == "" {
		digits = "0"
	}
	sign := ""
	if neg {
		sign = "-"
	}
	coeff, err := integer.Parse(sign + digits)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{coeff: coeff, scale: uint32(len(fracPart))}, nil
}

// IsZero reports whether d represents zero.
func (d Decimal) IsZero() bool { return d.coeff.IsZero() }

// Scale returns the number of digits after the radix point.
func (d Decimal) Scale() uint32 { return d.scale }

// Coefficient returns the integer coefficient of d.
func (d Decimal) Coefficient() integer.Int { return d.coeff }

func rescale(d Decimal, scale uint32) Decimal {
	if d.scale >= scale {
		return d
	}
	factor := pow10(scale - d.scale)
	return Decimal{coeff: integer.Mul(d.coeff, factor), scale: scale}
}

func pow10(n uint32) integer.Int {
	result := integer.FromInt64(1)
	ten := integer.FromInt64(10)
	for i := uint32(0); i < n; i++ {
		result = integer.Mul(result, ten)
	}
	return result
}

// Add returns x+y, scaled to the larger of the two operands' scales.
func Add(x, y Decimal) Decimal {
	scale := maxScale(x, y)
	x, y = rescale(x, scale), rescale(y, scale)
	return Decimal{coeff: integer.Add(x.coeff, y.coeff), scale: scale}
}

// Sub returns x-y.
func Sub(x, y Decimal) Decimal {
	scale := maxScale(x, y)
	x, y = rescale(x, scale), rescale(y, scale)
	return Decimal{coeff: integer.Sub(x.coeff, y.coeff), scale: scale}
}

// Mul returns x*y, with a scale equal to the sum of the operands' scales.
func Mul(x, y Decimal) Decimal {
	return Decimal{coeff: integer.Mul(x.coeff, y.coeff), scale: x.scale + y.scale}
}

func maxScale(x, y Decimal) uint32 {
	if x.scale > y.scale {
		return x.scale
	}
	return y.scale
}

// Cmp compares x and y numerically (not just textually): 0.50 equals 0.5.
func Cmp(x, y Decimal) int {
	scale := maxScale(x, y)
	x, y = rescale(x, scale), rescale(y, scale)
	return x.coeff.Cmp(y.coeff)
}

// Equal reports canonical equality: x and y must normalize to the same
// scale and coefficient (0.50 == 0.5, via Cmp; this is distinct from a
// literal field-by-field comparison of the struct).
func Equal(x, y Decimal) bool { return Cmp(x, y) == 0 }

// String formats d with a leading '-' if negative, the integer part, and
// (if Scale() > 0) a '.' followed by the fractional digits, preserving
// trailing zeros implied by the scale.
func (d Decimal) String() string {
	digits := d.coeff.String()
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	for uint32(len(digits)) <= d.scale {
		digits = "0" + digits
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if d.scale == 0 {
		b.WriteString(digits)
		return b.String()
	}
	intLen := uint32(len(digits)) - d.scale
	b.WriteString(digits[:intLen])
	b.WriteByte('.')
	b.WriteString(digits[intLen:])
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Decimal) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Decimal) UnmarshalText(text []byte) error {
	v, err := Parse(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
