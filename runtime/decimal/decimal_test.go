package decimal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognitoiq/xbgen/runtime/decimal"
)

func TestParseAndString(t *testing.T) {
	cases := map[string]string{
		"0":       "0",
		"1.50":    "1.50",
		"-1.5":    "-1.5",
		"100":     "100",
		"0.001":   "0.001",
		".5":      "0.5",
		"+3.14":   "3.14",
		"-0.0":    "0.0",
	}
	for in, want := range cases {
		d, err := decimal.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, d.String(), in)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, s := range []string{"", ".", "-", "1.2.3", "abc"} {
		_, err := decimal.Parse(s)
		assert.Error(t, err, s)
	}
}

func TestEqualCanonical(t *testing.T) {
	a, _ := decimal.Parse("1.50")
	b, _ := decimal.Parse("1.5")
	assert.True(t, decimal.Equal(a, b))
	assert.NotEqual(t, a.String(), b.String())
}

func TestArithmetic(t *testing.T) {
	a, _ := decimal.Parse("1.5")
	b, _ := decimal.Parse("2.25")
	assert.Equal(t, "3.75", decimal.Add(a, b).String())
	assert.Equal(t, "-0.75", decimal.Sub(a, b).String())
	assert.Equal(t, "3.3750", decimal.Mul(a, b).String())
}
