package xtime

import (
	"fmt"
	"strings"
)

// DateTime represents an xs:dateTime value. Construction canonicalizes
// "24:00:00" to "00:00:00" of the following day, per the Gregorian
// rollover rules in daysInMonth/normalizeToUTC.
type DateTime struct {
	Year                 int32
	Month, Day           uint8
	Hour, Minute, Second uint8
	Nanosecond           int32
	TZ                   *TZ
}

// ParseDateTime parses "[-]CCYY-MM-DDThh:mm:ss[.fff][Z|(+|-)hh:mm]".
func ParseDateTime(s string) (DateTime, error) {
	year, rest, err := splitYear(s)
	if err != nil {
		return DateTime{}, err
	}
	if len(rest) < 15 || rest[0] != '-' || rest[3] != '-' || rest[6] != 'T' {
		return DateTime{}, fmt.Errorf("xtime: malformed dateTime %q: %w", s, errInvalid(s))
	}
	month, err := parseDigitsFixed(rest[1:3], 2)
	if err != nil {
		return DateTime{}, err
	}
	day, err := parseDigitsFixed(rest[4:6], 2)
	if err != nil {
		return DateTime{}, err
	}
	t, err := ParseTime(rest[7:])
	if err != nil {
		return DateTime{}, err
	}
	if err := validateDate(year, uint8(month), uint8(day)); err != nil {
		return DateTime{}, err
	}
	dt := DateTime{
		Year: year, Month: uint8(month), Day: uint8(day),
		Hour: t.Hour, Minute: t.Minute, Second: t.Second,
		Nanosecond: t.Nanosecond, TZ: t.TZ,
	}
	return dt.canonicalize()
}

// canonicalize rewrites an hour of 24 into 00:00:00 of the next calendar
// day, matching the invariant that 2024-01-15T24:00:00 == 2024-01-16T00:00:00.
func (dt DateTime) canonicalize() (DateTime, error) {
	if dt.Hour != 24 {
		return dt, nil
	}
	n, err := normalizeToUTC(dt.Year, dt.Month, dt.Day, 0, 0, 0, 0, 0)
	if err != nil {
		return DateTime{}, err
	}
	// Advance one day from midnight.
	day := int32(n.Day) + 1
	year, month := n.Year, n.Month
	dim, err := daysInMonth(year, month)
	if err != nil {
		return DateTime{}, err
	}
	if day > int32(dim) {
		day = 1
		if month == 12 {
			month = 1
			year++
		} else {
			month++
		}
	}
	dt.Year, dt.Month, dt.Day = year, month, uint8(day)
	dt.Hour = 0
	return dt, nil
}

// DatePart returns the date component, preserving the timezone.
func (dt DateTime) DatePart() Date {
	return Date{Year: dt.Year, Month: dt.Month, Day: dt.Day, TZ: dt.TZ}
}

// TimePart returns the time component, preserving the timezone.
func (dt DateTime) TimePart() Time {
	return Time{Hour: dt.Hour, Minute: dt.Minute, Second: dt.Second, Nanosecond: dt.Nanosecond, TZ: dt.TZ}
}

// String formats dt in its XSD lexical form.
func (dt DateTime) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d-%02d-%02dT%02d:%02d:%02d", dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second)
	b.WriteString(formatFractionalSeconds(dt.Nanosecond))
	b.WriteString(formatTimezone(dt.TZ))
	return b.String()
}

// Equal implements XSD timezone-aware equality: e.g.
// 2024-01-15T12:00:00Z equals 2024-01-15T13:00:00+01:00.
func (dt DateTime) Equal(o DateTime) bool {
	if (dt.TZ == nil) != (o.TZ == nil) {
		return false
	}
	if dt.TZ == nil {
		return dt.Year == o.Year && dt.Month == o.Month && dt.Day == o.Day &&
			dt.Hour == o.Hour && dt.Minute == o.Minute && dt.Second == o.Second &&
			dt.Nanosecond == o.Nanosecond
	}
	a, err1 := normalizeToUTC(dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second, dt.Nanosecond, dt.TZ.Minutes)
	b, err2 := normalizeToUTC(o.Year, o.Month, o.Day, o.Hour, o.Minute, o.Second, o.Nanosecond, o.TZ.Minutes)
	if err1 != nil || err2 != nil {
		return false
	}
	return a == b
}

// MarshalText implements encoding.TextMarshaler.
func (dt DateTime) MarshalText() ([]byte, error) { return []byte(dt.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (dt *DateTime) UnmarshalText(text []byte) error {
	v, err := ParseDateTime(string(text))
	if err != nil {
		return err
	}
	*dt = v
	return nil
}
