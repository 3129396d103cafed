package inventory

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"
)

// Presence says whether a Field carries a value.
type Presence uint8

const (
	// Absent means the check that would produce the field did not run or
	// could not complete.
	Absent Presence = iota
	// Known means the field holds a value.
	Known
	// Unknown means the check ran but its output could not be interpreted.
	Unknown
)

// UnknownText is how an Unknown field is encoded.
const UnknownText = "unknown"

// Field is an optional record value that distinguishes "not attempted"
// (Absent) from "attempted but unreadable" (Unknown). The zero value is
// Absent.
type Field[T any] struct {
	presence Presence
	value    T
}

// Of returns a Known field holding v.
func Of[T any](v T) Field[T] {
	return Field[T]{presence: Known, value: v}
}

// UnknownField returns a field in the Unknown state.
func UnknownField[T any]() Field[T] {
	return Field[T]{presence: Unknown}
}

func (f Field[T]) Presence() Presence { return f.presence }
func (f Field[T]) IsKnown() bool      { return f.presence == Known }
func (f Field[T]) IsUnknown() bool    { return f.presence == Unknown }

// IsZero reports whether the field is Absent. encoding/json (omitzero) and
// yaml.v3 (omitempty) use it to drop absent fields.
func (f Field[T]) IsZero() bool { return f.presence == Absent }

// Get returns the value and whether it is Known.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.presence == Known
}

func (f Field[T]) String() string {
	switch f.presence {
	case Known:
		return stringOf(f.value)
	case Unknown:
		return UnknownText
	default:
		return "-"
	}
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	switch f.presence {
	case Known:
		return json.Marshal(f.value)
	case Unknown:
		return json.Marshal(UnknownText)
	default:
		return []byte("null"), nil
	}
}

func (f Field[T]) MarshalYAML() (any, error) {
	switch f.presence {
	case Known:
		return f.value, nil
	case Unknown:
		return UnknownText, nil
	default:
		return nil, nil
	}
}

// Date is a calendar date without time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DaysSince returns the number of whole days from other to d; negative when
// d is earlier. time.Duration cannot span more than ~292 years, so the
// difference is taken in Unix seconds.
func (d Date) DaysSince(other Date) int {
	return int((d.Time().Unix() - other.Time().Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

func (d Date) String() string {
	return d.Time().Format(time.DateOnly)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Record is the health of one logical certificate name.
type Record struct {
	Name          string      `json:"-" yaml:"-"`
	Valid         Field[bool] `json:"valid,omitzero" yaml:"valid,omitempty"`
	Expiration    Field[Date] `json:"expiration,omitzero" yaml:"expiration,omitempty"`
	DaysRemaining Field[int]  `json:"days_remaining,omitzero" yaml:"days_remaining,omitempty"`
}

// Report maps logical name to its Record.
type Report map[string]Record

// Names returns the report keys in sorted order.
func (r Report) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Records returns the records sorted by name.
func (r Report) Records() []Record {
	out := make([]Record, 0, len(r))
	for _, name := range r.Names() {
		out = append(out, r[name])
	}
	return out
}

func stringOf(v any) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(x)
	case interface{ String() string }:
		return x.String()
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}
