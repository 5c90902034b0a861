package xtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDurationValid(t *testing.T) {
	cases := []string{
		"P1Y2M3DT4H5M6S",
		"P1347Y",
		"P1347M",
		"PT2M10S",
		"-P1Y",
		"P2DT2H",
		"PT1S",
		"PT0S",
		"P0D",
	}
	for _, s := range cases {
		d, err := ParseDuration(s)
		require.NoError(t, err, s)
		_ = d
	}
}

func TestParseDurationInvalid(t *testing.T) {
	cases := []string{
		"", "P", "1Y2M", "P1S", "P-1Y", "PT", "P1Y2M3DT",
	}
	for _, s := range cases {
		_, err := ParseDuration(s)
		assert.Error(t, err, s)
	}
}

func TestYearMonthDurationRoundTrip(t *testing.T) {
	ym, err := ParseYearMonthDuration("P1Y2M")
	require.NoError(t, err)
	assert.Equal(t, int32(14), ym.Months)
	assert.Equal(t, "P1Y2M", ym.String())

	neg, err := ParseYearMonthDuration("-P6M")
	require.NoError(t, err)
	assert.Equal(t, int32(-6), neg.Months)
	assert.Equal(t, "-P6M", neg.String())
}

func TestYearMonthDurationRejectsDayTime(t *testing.T) {
	_, err := ParseYearMonthDuration("P1YT1H")
	assert.Error(t, err)
}

func TestDayTimeDurationRoundTrip(t *testing.T) {
	dt, err := ParseDayTimeDuration("P3DT4H5M6.5S")
	require.NoError(t, err)
	assert.Equal(t, int64(3*secondsPerDay+4*secondsPerHour+5*secondsPerMinute+6), dt.TotalSeconds)
	assert.Equal(t, int32(500000000), dt.Nanoseconds)
	assert.Equal(t, "P3DT4H5M6.5S", dt.String())
}

func TestDayTimeDurationRejectsYearMonth(t *testing.T) {
	_, err := ParseDayTimeDuration("P1Y")
	assert.Error(t, err)
	_, err = ParseDayTimeDuration("P1M")
	assert.Error(t, err)
}

func TestDayTimeDurationArithmetic(t *testing.T) {
	a, err := ParseDayTimeDuration("PT1H")
	require.NoError(t, err)
	b, err := ParseDayTimeDuration("PT30M")
	require.NoError(t, err)

	sum := AddDayTimeDuration(a, b)
	assert.Equal(t, "PT1H30M", sum.String())

	diff := SubDayTimeDuration(a, b)
	assert.Equal(t, "PT30M", diff.String())

	scaled := ScaleDayTimeDuration(b, -2)
	assert.True(t, scaled.Negative)
	assert.Equal(t, "-PT1H", scaled.String())
}

func TestDayTimeDurationCompare(t *testing.T) {
	a, _ := ParseDayTimeDuration("PT1H")
	b, _ := ParseDayTimeDuration("PT61M")
	assert.Equal(t, -1, CmpDayTimeDuration(a, b))
	assert.Equal(t, 1, CmpDayTimeDuration(b, a))

	c, _ := ParseDayTimeDuration("PT3600S")
	assert.Equal(t, 0, CmpDayTimeDuration(a, c))
}

func TestDayTimeDurationZeroIsPositive(t *testing.T) {
	z, err := ParseDayTimeDuration("PT0S")
	require.NoError(t, err)
	assert.False(t, z.Negative)
	assert.True(t, z.IsZero())
}

func TestDurationMarshalUnmarshal(t *testing.T) {
	var d DayTimeDuration
	require.NoError(t, d.UnmarshalText([]byte("P1DT2H")))
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "P1DT2H", string(text))

	var ym YearMonthDuration
	require.NoError(t, ym.UnmarshalText([]byte("P2Y")))
	text, err = ym.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "P2Y", string(text))
}
