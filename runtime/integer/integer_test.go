package integer_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognitoiq/xbgen/runtime/integer"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"0", "-0", "+0",
		"1", "-1",
		"9223372036854775807",  // INT64_MAX
		"-9223372036854775808", // INT64_MIN
		"18446744073709551615", // UINT64_MAX
		"+007",
		strings.Repeat("9", 200),
		"-" + strings.Repeat("9", 200),
	}
	for _, s := range cases {
		t.Run(s, func(t *testing.T) {
			v, err := integer.Parse(s)
			require.NoError(t, err)
			got := v.String()
			want := s
			want = strings.TrimPrefix(want, "+")
			if want == "-0" {
				want = "0"
			}
			if len(want) > 1 {
				// strip leading zeros after an optional sign, matching String()
				sign := ""
				if want[0] == '-' {
					sign, want = "-", want[1:]
				}
				for len(want) > 1 && want[0] == '0' {
					want = want[1:]
				}
				want = sign + want
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, s := range []string{"", "+", "-", "abc", "1.5", "1 2"} {
		_, err := integer.Parse(s)
		assert.Error(t, err, s)
	}
}

func TestInt64RoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64, 42} {
		i := integer.FromInt64(v)
		got, err := i.Int64()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestUint64Overflow(t *testing.T) {
	neg := integer.FromInt64(-1)
	_, err := neg.Uint64()
	assert.Error(t, err)
}

func TestDivModIdentity(t *testing.T) {
	pairs := [][2]int64{
		{7, 2}, {-7, 2}, {7, -2}, {-7, -2},
		{100, 9}, {-100, 9}, {0, 5},
	}
	for _, p := range pairs {
		a := integer.FromInt64(p[0])
		b := integer.FromInt64(p[1])
		q, r, err := integer.DivMod(a, b)
		require.NoError(t, err)
		got := integer.Add(integer.Mul(q, b), r)
		assert.True(t, got.Equal(a), "a=%d b=%d q=%s r=%s", p[0], p[1], q, r)
	}
}

func TestDivideByZero(t *testing.T) {
	_, _, err := integer.DivMod(integer.FromInt64(1), integer.Zero)
	assert.Error(t, err)
}

func TestCmp(t *testing.T) {
	a := integer.FromInt64(-5)
	b := integer.FromInt64(3)
	assert.Equal(t, -1, a.Cmp(b))
	assert.Equal(t, 1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(a))
}

func TestBigMultiplication(t *testing.T) {
	a, err := integer.Parse(strings.Repeat("9", 50))
	require.NoError(t, err)
	b := integer.FromInt64(2)
	got := integer.Mul(a, b).String()
	require.Len(t, got, 51)
}
