// Package integer implements an arbitrary-precision signed integer, the
// runtime representation generated code uses for xs:integer and its
// restricted subtypes (xs:long, xs:nonNegativeInteger, and so on, when
// they exceed the range of a fixed-width Go integer).
//
// The representation is a magnitude of 32-bit limbs, least-significant
// limb first, with no trailing zero limb, plus a separate sign. Zero
// always has a positive sign and an empty magnitude.
package integer

import (
	"fmt"
	"strings"

	"github.com/cognitoiq/xbgen/runtime/xerr"
)

// Int is an arbitrary-precision signed integer. The zero value is 0.
type Int struct {
	neg bool
	mag []uint32 // little-endian limbs, no trailing zeros
}

// Zero is the additive identity.
var Zero = Int{}

// FromInt64 constructs an Int from a signed 64-bit value.
func FromInt64(v int64) Int {
	if v == 0 {
		return Int{}
	}
	neg := v < 0
	// Avoid overflow on math.MinInt64 by working in uint64 space.
	u := uint64(v)
	if neg {
		u = uint64(-(v + 1)) + 1
	}
	return Int{neg: neg, mag: trim(limbsOf(u))}
}

// FromUint64 constructs an Int from an unsigned 64-bit value.
func FromUint64(v uint64) Int {
	return Int{mag: trim(limbsOf(v))}
}

func limbsOf(v uint64) []uint32 {
	lo := uint32(v)
	hi := uint32(v >> 32)
	if hi != 0 {
		return []uint32{lo, hi}
	}
	if lo != 0 {
		return []uint32{lo}
	}
	return nil
}

// Parse parses a decimal string with an optional leading '+' or '-'. An
// empty string, a bare sign, or an invalid character fails with
// xerr.ErrInvalidArgument. Leading zeros are accepted; "-0" normalizes to
// positive zero.
func Parse(s string) (Int, error) {
	if s == "" {
		return Int{}, fmt.Errorf("integer: empty string: %w", xerr.ErrInvalidArgument)
	}
	neg := false
	i := 0
	switch s[0] {
	case '-':
		neg = true
		i = 1
	case '+':
		i = 1
	}
	if i == len(s) {
		return Int{}, fmt.Errorf("integer: no digits in %q: %w", s, xerr.ErrInvalidArgument)
	}
	var mag []uint32
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return Int{}, fmt.Errorf("integer: invalid character in %q: %w", s, xerr.ErrInvalidArgument)
		}
		mag = magMul10Add(mag, uint32(c-'0'))
	}
	mag = trim(mag)
	if len(mag) == 0 {
		neg = false
	}
	return Int{neg: neg, mag: mag}, nil
}

func magMul10Add(mag []uint32, digit uint32) []uint32 {
	carry := uint64(digit)
	for i, limb := range mag {
		product := uint64(limb)*10 + carry
		mag[i] = uint32(product)
		carry = product >> 32
	}
	for carry != 0 {
		mag = append(mag, uint32(carry))
		carry >>= 32
	}
	return mag
}

func trim(mag []uint32) []uint32 {
	n := len(mag)
	for n > 0 && mag[n-1] == 0 {
		n--
	}
	return mag[:n]
}

// IsZero reports whether x is zero.
func (x Int) IsZero() bool { return len(x.mag) == 0 }

// Sign returns -1, 0, or 1 according to whether x is negative, zero, or
// positive.
func (x Int) Sign() int {
	if len(x.mag) == 0 {
		return 0
	}
	if x.neg {
		return -1
	}
	return 1
}

// Neg returns -x.
func (x Int) Neg() Int {
	if len(x.mag) == 0 {
		return x
	}
	return Int{neg: !x.neg, mag: x.mag}
}

// Cmp returns -1, 0, or +1 according to whether x < y, x == y, or x > y.
func (x Int) Cmp(y Int) int {
	if len(x.mag) == 0 && len(y.mag) == 0 {
		return 0
	}
	if x.neg != y.neg {
		if x.neg {
			return -1
		}
		return 1
	}
	c := magCmp(x.mag, y.mag)
	if x.neg {
		return -c
	}
	return c
}

// Equal reports whether x and y represent the same value.
func (x Int) Equal(y Int) bool {
	return x.neg == y.neg && magEqual(x.mag, y.mag)
}

func magEqual(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func magCmp(a, b []uint32) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func magAdd(a, b []uint32) []uint32 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	result := make([]uint32, 0, n+1)
	var carry uint64
	for i := 0; i < n; i++ {
		sum := carry
		if i < len(a) {
			sum += uint64(a[i])
		}
		if i < len(b) {
			sum += uint64(b[i])
		}
		result = append(result, uint32(sum))
		carry = sum >> 32
	}
	if carry != 0 {
		result = append(result, uint32(carry))
	}
	return result
}

// magSub computes a-b assuming a >= b.
func magSub(a, b []uint32) []uint32 {
	result := make([]uint32, 0, len(a))
	var borrow uint64
	for i := 0; i < len(a); i++ {
		ai := uint64(a[i])
		bi := uint64(0)
		if i < len(b) {
			bi = uint64(b[i])
		}
		diff := ai - bi - borrow
		result = append(result, uint32(diff))
		if ai < bi+borrow {
			borrow = 1
		} else {
			borrow = 0
		}
	}
	return trim(result)
}

func magMul(a, b []uint32) []uint32 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	result := make([]uint32, len(a)+len(b))
	for i := range a {
		var carry uint64
		for j := range b {
			product := uint64(a[i])*uint64(b[j]) + uint64(result[i+j]) + carry
			result[i+j] = uint32(product)
			carry = product >> 32
		}
		result[i+len(b)] += uint32(carry)
	}
	return trim(result)
}

// magDivMod implements shift-and-subtract long division on magnitudes.
func magDivMod(a, b []uint32) (q, r []uint32, err error) {
	if len(b) == 0 {
		return nil, nil, fmt.Errorf("integer: division by zero: %w", xerr.ErrDivideByZero)
	}
	switch magCmp(a, b) {
	case -1:
		return nil, append([]uint32(nil), a...), nil
	case 0:
		return []uint32{1}, nil, nil
	}

	aBits := (len(a)-1)*32 + bitLen(a[len(a)-1])
	var quotient, remainder []uint32

	for i := aBits - 1; i >= 0; i-- {
		remainder = shiftLeft1(remainder)
		bit := (a[i/32] >> uint(i%32)) & 1
		if bit != 0 {
			if len(remainder) == 0 {
				remainder = []uint32{1}
			} else {
				remainder[0] |= 1
			}
		}
		if magCmp(remainder, b) >= 0 {
			remainder = magSub(remainder, b)
			limb := i / 32
			for len(quotient) <= limb {
				quotient = append(quotient, 0)
			}
			quotient[limb] |= 1 << uint(i%32)
		}
	}
	return trim(quotient), trim(remainder), nil
}

func bitLen(v uint32) int {
	n := 0
	for v != 0 {
		n++
		v >>= 1
	}
	return n
}

func shiftLeft1(mag []uint32) []uint32 {
	var carry uint32
	for i, limb := range mag {
		next := limb >> 31
		mag[i] = (limb << 1) | carry
		carry = next
	}
	if carry != 0 {
		mag = append(mag, carry)
	}
	return mag
}

// Add returns x+y.
func Add(x, y Int) Int {
	if x.neg == y.neg {
		mag := trim(magAdd(x.mag, y.mag))
		return Int{neg: len(mag) > 0 && x.neg, mag: mag}
	}
	switch magCmp(x.mag, y.mag) {
	case 0:
		return Int{}
	case 1:
		mag := magSub(x.mag, y.mag)
		return Int{neg: len(mag) > 0 && x.neg, mag: mag}
	default:
		mag := magSub(y.mag, x.mag)
		return Int{neg: len(mag) > 0 && y.neg, mag: mag}
	}
}

// Sub returns x-y.
func Sub(x, y Int) Int { return Add(x, y.Neg()) }

// Mul returns x*y.
func Mul(x, y Int) Int {
	mag := magMul(x.mag, y.mag)
	return Int{neg: len(mag) > 0 && (x.neg != y.neg), mag: mag}
}

// DivMod returns the quotient and remainder of x/y, truncating toward
// zero; the remainder takes the sign of the dividend. Division by zero
// fails with xerr.ErrDivideByZero.
func DivMod(x, y Int) (quot, rem Int, err error) {
	q, r, err := magDivMod(x.mag, y.mag)
	if err != nil {
		return Int{}, Int{}, err
	}
	quot = Int{neg: len(q) > 0 && (x.neg != y.neg), mag: q}
	rem = Int{neg: len(r) > 0 && x.neg, mag: r}
	return quot, rem, nil
}

// Div returns the truncated quotient x/y.
func Div(x, y Int) (Int, error) {
	q, _, err := DivMod(x, y)
	return q, err
}

// Mod returns the remainder of x/y, with the dividend's sign.
func Mod(x, y Int) (Int, error) {
	_, r, err := DivMod(x, y)
	return r, err
}

// Float64 converts x to a float64, with possible loss of precision.
func (x Int) Float64() float64 {
	var result, base float64 = 0, 1
	for _, limb := range x.mag {
		result += float64(limb) * base
		base *= 4294967296
	}
	if x.neg {
		result = -result
	}
	return result
}

// Int64 converts x to an int64, failing with xerr.ErrOverflow if x is out
// of range.
func (x Int) Int64() (int64, error) {
	if len(x.mag) == 0 {
		return 0, nil
	}
	if len(x.mag) > 2 {
		return 0, fmt.Errorf("integer: value too large for int64: %w", xerr.ErrOverflow)
	}
	abs := uint64(x.mag[0])
	if len(x.mag) == 2 {
		abs |= uint64(x.mag[1]) << 32
	}
	if x.neg {
		if abs > uint64(1)<<63 {
			return 0, fmt.Errorf("integer: value too large for int64: %w", xerr.ErrOverflow)
		}
		return -int64(abs-1) - 1, nil
	}
	if abs > uint64(1)<<63-1 {
		return 0, fmt.Errorf("integer: value too large for int64: %w", xerr.ErrOverflow)
	}
	return int64(abs), nil
}

// Uint64 converts x to a uint64, failing with xerr.ErrOverflow if x is
// negative or out of range.
func (x Int) Uint64() (uint64, error) {
	if len(x.mag) == 0 {
		return 0, nil
	}
	if x.neg {
		return 0, fmt.Errorf("integer: negative value cannot convert to uint64: %w", xerr.ErrOverflow)
	}
	if len(x.mag) > 2 {
		return 0, fmt.Errorf("integer: value too large for uint64: %w", xerr.ErrOverflow)
	}
	v := uint64(x.mag[0])
	if len(x.mag) == 2 {
		v |= uint64(x.mag[1]) << 32
	}
	return v, nil
}

// String formats x in decimal, with a leading '-' for negative values and
// no leading zeros (other than "0" itself).
func (x Int) String() string {
	if len(x.mag) == 0 {
		return "0"
	}
	mag := append([]uint32(nil), x.mag...)
	var digits []byte
	for len(mag) > 0 {
		var remainder uint64
		for i := len(mag) - 1; i >= 0; i-- {
			cur := remainder<<32 | uint64(mag[i])
			mag[i] = uint32(cur / 10)
			remainder = cur % 10
		}
		digits = append(digits, byte('0')+byte(remainder))
		mag = trim(mag)
	}
	if x.neg {
		digits = append(digits, '-')
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

// MarshalText implements encoding.TextMarshaler, used by generated
// xs:integer fields.
func (x Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (x *Int) UnmarshalText(text []byte) error {
	v, err := Parse(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*x = v
	return nil
}
