package inventory

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestRecord_JSON(t *testing.T) {
	exp := Date{Year: 2026, Month: time.November, Day: 16}
	report := Report{
		"alpha": {Name: "alpha", Valid: Of(true), Expiration: Of(exp), DaysRemaining: Of(30)},
		"beta":  {Name: "beta", Valid: Of(false)},
		"delta": {Name: "delta", Valid: Of(true), Expiration: UnknownField[Date](), DaysRemaining: UnknownField[int]()},
		"omega": {Name: "omega"},
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"alpha":{"valid":true,"expiration":"2026-11-16","days_remaining":30},` +
		`"beta":{"valid":false},` +
		`"delta":{"valid":true,"expiration":"unknown","days_remaining":"unknown"},` +
		`"omega":{}}`
	if string(data) != want {
		t.Fatalf("json:\n got %s\nwant %s", data, want)
	}
}

func TestRecord_YAML(t *testing.T) {
	exp := Date{Year: 2026, Month: time.November, Day: 16}
	data, err := yaml.Marshal(Report{
		"alpha": {Valid: Of(true), Expiration: Of(exp), DaysRemaining: Of(-3)},
		"beta":  {Valid: Of(false)},
	})
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}

	var got map[string]map[string]any
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v\n%s", err, data)
	}
	if got["alpha"]["valid"] != true || got["alpha"]["days_remaining"] != -3 {
		t.Fatalf("alpha: %v", got["alpha"])
	}
	if !strings.Contains(string(data), "2026-11-16") {
		t.Fatalf("expected expiration date in:\n%s", data)
	}
	if len(got["beta"]) != 1 || got["beta"]["valid"] != false {
		t.Fatalf("beta: %v", got["beta"])
	}
}

func TestField_String(t *testing.T) {
	if got := Of(true).String(); got != "true" {
		t.Fatalf("Of(true) = %q", got)
	}
	if got := Of(-4).String(); got != "-4" {
		t.Fatalf("Of(-4) = %q", got)
	}
	if got := UnknownField[int]().String(); got != UnknownText {
		t.Fatalf("unknown = %q", got)
	}
	if got := (Field[bool]{}).String(); got != "-" {
		t.Fatalf("absent = %q", got)
	}
	if got := Of(Date{2030, time.February, 3}).String(); got != "2030-02-03" {
		t.Fatalf("date = %q", got)
	}
}

func TestDate_DaysSince(t *testing.T) {
	today := Date{2026, time.October, 17}
	tests := []struct {
		d    Date
		want int
	}{
		{Date{2026, time.October, 17}, 0},
		{Date{2026, time.November, 16}, 30},
		{Date{2026, time.October, 16}, -1},
		{Date{2028, time.October, 17}, 731},
		{Date{9999, time.December, 31}, 2912153},
		{Date{1, time.January, 1}, -739905},
	}
	for _, tt := range tests {
		if got := tt.d.DaysSince(today); got != tt.want {
			t.Errorf("%s.DaysSince(%s) = %d, want %d", tt.d, today, got, tt.want)
		}
	}
}

func TestDateOf_UsesLocation(t *testing.T) {
	tz := time.FixedZone("UTC+10", 10*60*60)
	instant := time.Date(2026, time.October, 17, 20, 0, 0, 0, time.UTC)
	if got := DateOf(instant.In(tz)); got != (Date{2026, time.October, 18}) {
		t.Fatalf("DateOf() = %s", got)
	}
}

func TestReport_Records(t *testing.T) {
	r := Report{"b": {Name: "b"}, "a": {Name: "a"}, "c": {Name: "c"}}
	var names []string
	for _, rec := range r.Records() {
		names = append(names, rec.Name)
	}
	if strings.Join(names, ",") != "a,b,c" {
		t.Fatalf("Records() order = %v", names)
	}
}

func TestParseNotAfter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Nov 16 00:00:00 2026 GMT", "2026-11-16"},
		{"Feb  3 04:05:06 2030 GMT", "2030-02-03"},
		{"Feb 3 04:05:06 2030 GMT", "2030-02-03"},
		{"Dec 31 23:59:59 2026 GMT", "2026-12-31"},
		{"2030-02-03 04:05:06Z", "2030-02-03"},
		{"2030-02-03T04:05:06Z", "2030-02-03"},
		{"2030-02-03", "2030-02-03"},
	}
	for _, tt := range tests {
		got, err := ParseNotAfter(tt.in)
		if err != nil {
			t.Errorf("ParseNotAfter(%q) error = %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseNotAfter(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "   ", "garbage", "Foo 99 99:99:99 2030 GMT"} {
		if _, err := ParseNotAfter(bad); err == nil {
			t.Errorf("ParseNotAfter(%q): expected error", bad)
		}
	}
}
