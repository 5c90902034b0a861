package xtime

import (
	"fmt"
	"strings"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
	nanosPerSecond   = 1_000_000_000
)

// YearMonthDuration stores a signed number of months, the XSD
// xs:yearMonthDuration subtype of duration.
type YearMonthDuration struct {
	Months int32
}

// DayTimeDuration stores a sign, a total whole-second magnitude, and a
// nanosecond remainder, the XSD xs:dayTimeDuration subtype of duration.
// (0 seconds, 0 nanoseconds) is always represented as positive.
type DayTimeDuration struct {
	Negative     bool
	TotalSeconds int64
	Nanoseconds  int32
}

// Duration is the general XSD duration, carrying both a year/month and a
// day/time component.
type Duration struct {
	YearMonth YearMonthDuration
	DayTime   DayTimeDuration
}

func parseDigitsRun(s string, pos *int) (int64, error) {
	start := *pos
	var v int64
	for *pos < len(s) && s[*pos] >= '0' && s[*pos] <= '9' {
		v = v*10 + int64(s[*pos]-'0')
		*pos++
	}
	if *pos == start {
		return 0, fmt.Errorf("xtime: expected digit in %q: %w", s, errInvalid(s))
	}
	return v, nil
}

func parseFracRun(s string, pos *int) int32 {
	if *pos >= len(s) || s[*pos] != '.' {
		return 0
	}
	*pos++
	var nanos int32
	digits := 0
	for *pos < len(s) && s[*pos] >= '0' && s[*pos] <= '9' {
		if digits < 9 {
			nanos = nanos*10 + int32(s[*pos]-'0')
			digits++
		}
		*pos++
	}
	for digits < 9 {
		nanos *= 10
		digits++
	}
	return nanos
}

// ParseDuration parses the general lexical form
// "[-]P[nY][nM][nD][T[nH][nM][n[.f]S]]", requiring at least one
// component after 'P'.
func ParseDuration(s string) (Duration, error) {
	orig := s
	neg := false
	pos := 0
	if pos < len(s) && s[pos] == '-' {
		neg = true
		pos++
	}
	if pos >= len(s) || s[pos] != 'P' {
		return Duration{}, fmt.Errorf("xtime: duration must start with 'P': %q: %w", orig, errInvalid(orig))
	}
	pos++
	if pos >= len(s) {
		return Duration{}, fmt.Errorf("xtime: empty duration body: %q: %w", orig, errInvalid(orig))
	}

	var years, months, days, hours, minutes, seconds int64
	var nanos int32
	found := false

	// Date part: [nY][nM][nD]
	for pos < len(s) && s[pos] != 'T' {
		v, err := parseDigitsRun(s, &pos)
		if err != nil {
			return Duration{}, err
		}
		if pos >= len(s) {
			return Duration{}, fmt.Errorf("xtime: expected unit after number in %q: %w", orig, errInvalid(orig))
		}
		switch s[pos] {
		case 'Y':
			years = v
		case 'M':
			months = v
		case 'D':
			days = v
		default:
			return Duration{}, fmt.Errorf("xtime: unexpected unit %q in %q: %w", s[pos:pos+1], orig, errInvalid(orig))
		}
		pos++
		found = true
	}

	if pos < len(s) && s[pos] == 'T' {
		pos++
		if pos >= len(s) {
			return Duration{}, fmt.Errorf("xtime: expected component after 'T' in %q: %w", orig, errInvalid(orig))
		}
		foundTime := false
		for pos < len(s) {
			v, err := parseDigitsRun(s, &pos)
			if err != nil {
				return Duration{}, err
			}
			if pos >= len(s) {
				return Duration{}, fmt.Errorf("xtime: expected unit after number in %q: %w", orig, errInvalid(orig))
			}
			switch {
			case s[pos] == 'H':
				hours = v
				pos++
			case s[pos] == 'M':
				minutes = v
				pos++
			case s[pos] == 'S' || s[pos] == '.':
				seconds = v
				nanos = parseFracRun(s, &pos)
				if pos >= len(s) || s[pos] != 'S' {
					return Duration{}, fmt.Errorf("xtime: expected 'S' in %q: %w", orig, errInvalid(orig))
				}
				pos++
			default:
				return Duration{}, fmt.Errorf("xtime: unexpected unit %q in %q: %w", s[pos:pos+1], orig, errInvalid(orig))
			}
			foundTime = true
		}
		if !foundTime {
			return Duration{}, fmt.Errorf("xtime: no time components after 'T' in %q: %w", orig, errInvalid(orig))
		}
		found = true
	}
	if !found {
		return Duration{}, fmt.Errorf("xtime: no components in %q: %w", orig, errInvalid(orig))
	}
	if pos != len(s) {
		return Duration{}, fmt.Errorf("xtime: trailing characters in %q: %w", orig, errInvalid(orig))
	}

	totalSeconds := days*secondsPerDay + hours*secondsPerHour + minutes*secondsPerMinute + seconds
	ymMonths := years*12 + months
	d := Duration{
		YearMonth: YearMonthDuration{Months: signed32(ymMonths, neg)},
		DayTime:   DayTimeDuration{Negative: neg && (totalSeconds != 0 || nanos != 0), TotalSeconds: totalSeconds, Nanoseconds: nanos},
	}
	return d, nil
}

func signed32(v int64, neg bool) int32 {
	if neg {
		return -int32(v)
	}
	return int32(v)
}

// ParseYearMonthDuration parses "[-]P[nY][nM]" with no day/time component.
func ParseYearMonthDuration(s string) (YearMonthDuration, error) {
	d, err := ParseDuration(s)
	if err != nil {
		return YearMonthDuration{}, err
	}
	if !d.DayTime.IsZero() {
		return YearMonthDuration{}, fmt.Errorf("xtime: unexpected day/time component in %q: %w", s, errInvalid(s))
	}
	return d.YearMonth, nil
}

// ParseDayTimeDuration parses "[-]P[nD][T[nH][nM][n[.f]S]]" with no
// year/month component.
func ParseDayTimeDuration(s string) (DayTimeDuration, error) {
	if strings.ContainsAny(s, "Y") {
		return DayTimeDuration{}, fmt.Errorf("xtime: unexpected 'Y' component in %q: %w", s, errInvalid(s))
	}
	tIdx := strings.IndexByte(s, 'T')
	mIdx := strings.IndexByte(s, 'M')
	if mIdx >= 0 && (tIdx < 0 || mIdx < tIdx) {
		return DayTimeDuration{}, fmt.Errorf("xtime: unexpected month component in %q: %w", s, errInvalid(s))
	}
	d, err := ParseDuration(s)
	if err != nil {
		return DayTimeDuration{}, err
	}
	return d.DayTime, nil
}

// IsZero reports whether d represents a zero duration.
func (d DayTimeDuration) IsZero() bool { return d.TotalSeconds == 0 && d.Nanoseconds == 0 }

// TotalNanoseconds returns the signed duration expressed in nanoseconds,
// used as the basis for DayTimeDuration comparison.
func (d DayTimeDuration) TotalNanoseconds() int64 {
	n := d.TotalSeconds*nanosPerSecond + int64(d.Nanoseconds)
	if d.Negative {
		return -n
	}
	return n
}

// CmpDayTimeDuration compares two DayTimeDuration values by total
// nanoseconds.
func CmpDayTimeDuration(a, b DayTimeDuration) int {
	an, bn := a.TotalNanoseconds(), b.TotalNanoseconds()
	switch {
	case an < bn:
		return -1
	case an > bn:
		return 1
	default:
		return 0
	}
}

// AddDayTimeDuration returns a+b, normalized.
func AddDayTimeDuration(a, b DayTimeDuration) DayTimeDuration {
	return fromNanoseconds(a.TotalNanoseconds() + b.TotalNanoseconds())
}

// SubDayTimeDuration returns a-b, normalized.
func SubDayTimeDuration(a, b DayTimeDuration) DayTimeDuration {
	return fromNanoseconds(a.TotalNanoseconds() - b.TotalNanoseconds())
}

// ScaleDayTimeDuration returns d*scalar, normalized.
func ScaleDayTimeDuration(d DayTimeDuration, scalar int64) DayTimeDuration {
	return fromNanoseconds(d.TotalNanoseconds() * scalar)
}

func fromNanoseconds(n int64) DayTimeDuration {
	neg := n < 0
	if neg {
		n = -n
	}
	return DayTimeDuration{
		Negative:     neg,
		TotalSeconds: n / nanosPerSecond,
		Nanoseconds:  int32(n % nanosPerSecond),
	}
}

// String formats d in its XSD lexical form.
func (d DayTimeDuration) String() string {
	var b strings.Builder
	if d.Negative {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	remaining := d.TotalSeconds
	days := remaining / secondsPerDay
	remaining %= secondsPerDay
	hours := remaining / secondsPerHour
	remaining %= secondsPerHour
	minutes := remaining / secondsPerMinute
	seconds := remaining % secondsPerMinute

	if days > 0 {
		fmt.Fprintf(&b, "%dD", days)
	}
	needTime := hours > 0 || minutes > 0 || seconds > 0 || d.Nanoseconds > 0 || days == 0
	if needTime {
		b.WriteByte('T')
		wrote := false
		if hours > 0 {
			fmt.Fprintf(&b, "%dH", hours)
			wrote = true
		}
		if minutes > 0 {
			fmt.Fprintf(&b, "%dM", minutes)
			wrote = true
		}
		if seconds > 0 || d.Nanoseconds > 0 || !wrote {
			fmt.Fprintf(&b, "%d", seconds)
			b.WriteString(formatFractionalSeconds(d.Nanoseconds))
			b.WriteByte('S')
		}
	}
	return b.String()
}

// String formats the year/month duration.
func (ym YearMonthDuration) String() string {
	months := ym.Months
	neg := months < 0
	if neg {
		months = -months
	}
	years := months / 12
	rem := months % 12
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	if years > 0 {
		fmt.Fprintf(&b, "%dY", years)
	}
	if rem > 0 || years == 0 {
		fmt.Fprintf(&b, "%dM", rem)
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (ym YearMonthDuration) MarshalText() ([]byte, error) { return []byte(ym.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (ym *YearMonthDuration) UnmarshalText(text []byte) error {
	v, err := ParseYearMonthDuration(string(text))
	if err != nil {
		return err
	}
	*ym = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d DayTimeDuration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DayTimeDuration) UnmarshalText(text []byte) error {
	v, err := ParseDayTimeDuration(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
