package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid date", "2020-03-01", false},
		{"Valid leap day", "2020-02-29", false},
		{"Invalid format", "03/01/2020", true},
		{"Invalid day", "2020-02-30", true},
		{"Empty string", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && FormatDate(got) != tt.input {
				t.Errorf("round trip of %q gave %q", tt.input, FormatDate(got))
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	first := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		last     time.Time
		expected int
	}{
		{"Three days", time.Date(2020, 1, 4, 0, 0, 0, 0, time.UTC), 3},
		{"Same day", first, 0},
		{"Reversed range", time.Date(2019, 12, 30, 0, 0, 0, 0, time.UTC), 0},
		{"Across february", time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(first, tt.last); got != tt.expected {
				t.Errorf("DaysBetween = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestDateRange(t *testing.T) {
	first := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2020, 1, 4, 0, 0, 0, 0, time.UTC)

	dates := DateRange(first, last)
	if len(dates) != 3 {
		t.Fatalf("DateRange returned %d dates, expected 3", len(dates))
	}
	// Half-open: lastday excluded
	for i, want := range []string{"2020-01-01", "2020-01-02", "2020-01-03"} {
		if FormatDate(dates[i]) != want {
			t.Errorf("dates[%d] = %s, expected %s", i, FormatDate(dates[i]), want)
		}
	}
}

func TestAddDays(t *testing.T) {
	d := time.Date(2020, 2, 28, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(AddDays(d, 2)); got != "2020-03-01" {
		t.Errorf("AddDays across leap day = %s, expected 2020-03-01", got)
	}
}
