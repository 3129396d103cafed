package inventory

import (
	"fmt"
	"strings"
	"time"
)

// notAfterLayouts are tried in order. The first is what openssl prints by
// default; the second is openssl's `-dateopt iso_8601`.
var notAfterLayouts = []string{
	"Jan _2 15:04:05 2006 GMT",
	"Jan _2 15:04:05 2006 MST",
	"Jan _2 15:04:05.000 2006 GMT",
	"2006-01-02 15:04:05Z",
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
}

// ParseNotAfter parses an end-date value (the text after "notAfter=") into
// the calendar date it names. The date is taken as written; no zone
// conversion is applied.
func ParseNotAfter(text string) (Date, error) {
	s := strings.Join(strings.Fields(text), " ")
	if s == "" {
		return Date{}, fmt.Errorf("empty date")
	}
	for _, layout := range notAfterLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("unrecognised date %q", text)
}
