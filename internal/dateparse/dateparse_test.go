package dateparse

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	// Fixed reference time for consistent tests
	ref := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, got time.Time)
	}{
		{
			name:  "ISO 8601 date",
			input: "2025-01-20",
			check: func(t *testing.T, got time.Time) {
				if got.Year() != 2025 || got.Month() != 1 || got.Day() != 20 {
					t.Errorf("expected 2025-01-20, got %v", got)
				}
			},
		},
		{
			name:  "ISO 8601 datetime",
			input: "2025-01-20T14:30:00",
			check: func(t *testing.T, got time.Time) {
				if got.Hour() != 14 || got.Minute() != 30 {
					t.Errorf("expected 14:30, got %v", got)
				}
			},
		},
		{
			name:  "tomorrow",
			input: "tomorrow",
			check: func(t *testing.T, got time.Time) {
				expected := ref.AddDate(0, 0, 1)
				if got.Day() != expected.Day() {
					t.Errorf("expected day %d, got %d", expected.Day(), got.Day())
				}
			},
		},
		{
			name:  "in 3 days",
			input: "in 3 days",
			check: func(t *testing.T, got time.Time) {
				expected := ref.AddDate(0, 0, 3)
				if got.Day() != expected.Day() {
					t.Errorf("expected day %d, got %d", expected.Day(), got.Day())
				}
			},
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, ref)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && !errors.Is(err, ErrDateParse) {
				t.Errorf("expected ErrDateParse, got %v", err)
			}
			if !tt.wantErr && tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestStartOfDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123, time.Local)
	got := StartOfDay(input)

	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("expected midnight, got %v", got)
	}
	if got.Day() != 15 {
		t.Errorf("expected day 15, got %d", got.Day())
	}
}

func TestEndOfDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123, time.Local)
	got := EndOfDay(input)

	if got.Hour() != 23 || got.Minute() != 59 || got.Second() != 59 || got.Nanosecond() != 0 {
		t.Errorf("expected 23:59:59, got %v", got)
	}
	if got.Day() != 15 {
		t.Errorf("expected day 15, got %d", got.Day())
	}
}

func TestWindow(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 20, 30, 0, time.UTC)
	midnight := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC).Unix()

	tests := []struct {
		offset int64
	}{
		{0}, {1}, {-1}, {7}, {-30},
	}

	for _, tt := range tests {
		start, end := Window(now, tt.offset)
		wantStart := midnight + tt.offset*SecondsPerDay
		wantEnd := midnight + SecondsPerDay - 1 + tt.offset*SecondsPerDay
		if start.Unix() != wantStart {
			t.Errorf("offset %d: start = %d, want %d", tt.offset, start.Unix(), wantStart)
		}
		if end.Unix() != wantEnd {
			t.Errorf("offset %d: end = %d, want %d", tt.offset, end.Unix(), wantEnd)
		}
	}
}

func TestRangeLargeOffsets(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	midnight := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC).Unix()

	start, end, err := Range(now, Selector{Future: "110000"})
	if err != nil {
		t.Fatalf("Range failed: %v", err)
	}
	if want := midnight + 110000*SecondsPerDay; start.Unix() != want {
		t.Errorf("start = %d, want %d", start.Unix(), want)
	}
	if want := midnight + 110001*SecondsPerDay - 1; end.Unix() != want {
		t.Errorf("end = %d, want %d", end.Unix(), want)
	}

	start, _, err = Range(now, Selector{Past: "110000"})
	if err != nil {
		t.Fatalf("Range failed: %v", err)
	}
	if want := midnight - 110000*SecondsPerDay; start.Unix() != want {
		t.Errorf("start = %d, want %d", start.Unix(), want)
	}

	overflowing := []Selector{
		{Future: "9223372036854775807"},
		{Future: "106751991167300"},
		{Past: "9223372036854775807"},
		{Past: "-9223372036854775808"},
	}
	for _, sel := range overflowing {
		if _, _, err := Range(now, sel); !errors.Is(err, ErrDateParse) {
			t.Errorf("Range(%+v) error = %v, want ErrDateParse", sel, err)
		}
	}
}

func TestSelectorOffset(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		sel     Selector
		want    int64
		wantErr bool
	}{
		{name: "none", sel: Selector{}, want: 0},
		{name: "tomorrow", sel: Selector{Tomorrow: true}, want: 1},
		{name: "yesterday", sel: Selector{Yesterday: true}, want: -1},
		{name: "future", sel: Selector{Future: "3"}, want: 3},
		{name: "future with spaces", sel: Selector{Future: " 2 "}, want: 2},
		{name: "past", sel: Selector{Past: "4"}, want: -4},
		{name: "iso date", sel: Selector{Date: "2025-01-20"}, want: 5},
		{name: "iso date in the past", sel: Selector{Date: "2025-01-01"}, want: -14},
		{name: "tomorrow wins over yesterday", sel: Selector{Tomorrow: true, Yesterday: true}, want: 1},
		{name: "yesterday wins over future", sel: Selector{Yesterday: true, Future: "5"}, want: -1},
		{name: "future wins over past", sel: Selector{Future: "5", Past: "2"}, want: 5},
		{name: "past wins over date", sel: Selector{Past: "2", Date: "2025-01-20"}, want: -2},
		{name: "malformed future", sel: Selector{Future: "three"}, wantErr: true},
		{name: "malformed past", sel: Selector{Past: "1.5"}, wantErr: true},
		{name: "tomorrow shadows malformed future", sel: Selector{Tomorrow: true, Future: "x"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.sel.Offset(now)
			if tt.wantErr {
				if !errors.Is(err, ErrDateParse) {
					t.Fatalf("expected ErrDateParse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Offset() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRangeEquivalences(t *testing.T) {
	now := time.Date(2025, 3, 4, 16, 45, 0, 0, time.Local)

	pairs := []struct {
		name string
		a, b Selector
	}{
		{"tomorrow equals future 1", Selector{Tomorrow: true}, Selector{Future: "1"}},
		{"yesterday equals past 1", Selector{Yesterday: true}, Selector{Past: "1"}},
		{"future 0 equals today", Selector{Future: "0"}, Selector{}},
	}

	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			startA, endA, err := Range(now, p.a)
			if err != nil {
				t.Fatalf("Range(a) error = %v", err)
			}
			startB, endB, err := Range(now, p.b)
			if err != nil {
				t.Fatalf("Range(b) error = %v", err)
			}
			if !startA.Equal(startB) || !endA.Equal(endB) {
				t.Errorf("windows differ: %v-%v vs %v-%v", startA, endA, startB, endB)
			}
		})
	}

	if _, _, err := Range(now, Selector{Past: "soon"}); !errors.Is(err, ErrDateParse) {
		t.Errorf("expected ErrDateParse for malformed past, got %v", err)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 1, 15, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, 1, 16, 1, 0, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 1 {
		t.Errorf("DaysBetween = %d, want 1", got)
	}
	if got := DaysBetween(b, a); got != -1 {
		t.Errorf("DaysBetween reversed = %d, want -1", got)
	}
}
