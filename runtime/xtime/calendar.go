// Package xtime implements the XSD calendar and duration value types:
// Date, Time, DateTime, Duration, YearMonthDuration, and DayTimeDuration.
// Parsing and formatting follow the XSD 1.1 lexical forms exactly; all
// arithmetic normalizes eagerly rather than deferring to a later
// canonicalization step.
package xtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cognitoiq/xbgen/runtime/xerr"
)

// TZ represents a timezone offset in minutes from UTC, in [-14*60, 14*60].
// A nil *TZ means "no timezone specified" (a local/unqualified value).
type TZ struct {
	Minutes int16
}

func isLeapYear(year int32) bool {
	y := year
	if y < 0 {
		y = -(y + 1)
	}
	return (y%4 == 0 && y%100 != 0) || y%400 == 0
}

var daysInMonthTable = [13]uint8{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func daysInMonth(year int32, month uint8) (uint8, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("xtime: invalid month %d: %w", month, xerr.ErrInvalidArgument)
	}
	if month == 2 && isLeapYear(year) {
		return 29, nil
	}
	return daysInMonthTable[month], nil
}

func parseTimezone(s string) (tz *TZ, consumed int, err error) {
	if s == "" {
		return nil, 0, nil
	}
	if s[0] == 'Z' {
		return &TZ{0}, 1, nil
	}
	if s[0] == '+' || s[0] == '-' {
		if len(s) < 6 || s[3] != ':' {
			return nil, 0, fmt.Errorf("xtime: invalid timezone format %q: %w", s, xerr.ErrInvalidArgument)
		}
		neg := s[0] == '-'
		hours, err1 := digits2(s[1:3])
		mins, err2 := digits2(s[4:6])
		if err1 != nil || err2 != nil {
			return nil, 0, fmt.Errorf("xtime: invalid timezone format %q: %w", s, xerr.ErrInvalidArgument)
		}
		if hours > 14 || (hours == 14 && mins > 0) || mins > 59 {
			return nil, 0, fmt.Errorf("xtime: timezone offset out of range %q: %w", s, xerr.ErrInvalidArgument)
		}
		offset := int16(hours*60 + mins)
		if neg {
			offset = -offset
		}
		return &TZ{offset}, 6, nil
	}
	return nil, 0, nil
}

func digits2(s string) (int, error) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, fmt.Errorf("xtime: expected 2 digits, got %q: %w", s, xerr.ErrInvalidArgument)
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), nil
}

func formatTimezone(tz *TZ) string {
	if tz == nil {
		return ""
	}
	offset := tz.Minutes
	if offset == 0 {
		return "Z"
	}
	sign := "+"
	if offset < 0 {
		sign, offset = "-", -offset
	}
	return fmt.Sprintf("%s%02d:%02d", sign, offset/60, offset%60)
}

func parseFractionalSeconds(s string) (nanos int32, consumed int) {
	if s == "" || s[0] != '.' {
		return 0, 0
	}
	pos := 1
	digits := 0
	for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
		if digits < 9 {
			nanos = nanos*10 + int32(s[pos]-'0')
			digits++
		}
		pos++
	}
	for digits < 9 {
		nanos *= 10
		digits++
	}
	return nanos, pos
}

func formatFractionalSeconds(nanos int32) string {
	if nanos == 0 {
		return ""
	}
	frac := fmt.Sprintf("%09d", nanos)
	frac = strings.TrimRight(frac, "0")
	return "." + frac
}

// utcNormalized mirrors the Gregorian rollover rules used for
// timezone-aware equality and for canonicalizing 24:00:00.
type utcNormalized struct {
	Year                      int32
	Month, Day                uint8
	Hour, Minute, Second      uint8
	Nanosecond                int32
}

func normalizeToUTC(year int32, month, day, hour, minute, second uint8, nanosecond int32, tzOffset int16) (utcNormalized, error) {
	totalMinutes := int(hour)*60 + int(minute) - int(tzOffset)
	h := totalMinutes / 60
	m := totalMinutes % 60
	if m < 0 {
		m += 60
		h--
	}
	dayAdj := 0
	if h < 0 {
		dayAdj = -((-h + 23) / 24)
		h -= dayAdj * 24
	} else if h >= 24 {
		dayAdj = h / 24
		h -= dayAdj * 24
	}

	d := int32(day) + int32(dayAdj)
	y := year
	mo := month

	for d < 1 {
		if mo == 1 {
			mo = 12
			y--
		} else {
			mo--
		}
		dim, err := daysInMonth(y, mo)
		if err != nil {
			return utcNormalized{}, err
		}
		d += int32(dim)
	}
	for {
		dim, err := daysInMonth(y, mo)
		if err != nil {
			return utcNormalized{}, err
		}
		if d <= int32(dim) {
			break
		}
		d -= int32(dim)
		if mo == 12 {
			mo = 1
			y++
		} else {
			mo++
		}
	}
	return utcNormalized{
		Year: y, Month: mo, Day: uint8(d),
		Hour: uint8(h), Minute: uint8(m), Second: second,
		Nanosecond: nanosecond,
	}, nil
}

func parseDigitsFixed(s string, n int) (int, error) {
	if len(s) < n {
		return 0, fmt.Errorf("xtime: expected %d digits in %q: %w", n, s, xerr.ErrInvalidArgument)
	}
	v, err := strconv.Atoi(s[:n])
	if err != nil {
		return 0, fmt.Errorf("xtime: invalid digits in %q: %w", s, xerr.ErrInvalidArgument)
	}
	for _, c := range s[:n] {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("xtime: invalid digits in %q: %w", s, xerr.ErrInvalidArgument)
		}
	}
	return v, nil
}
