package timeutil

import (
	"testing"
	"time"
)

func TestLocalToUTC_CopiesComponents(t *testing.T) {
	testCases := []struct {
		in   string
		want time.Time
	}{
		{"2024-05-01T09:30", time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)},
		{"2024-05-01T09:30:15", time.Date(2024, 5, 1, 9, 30, 15, 0, time.UTC)},
		{"2024-05-01 23:59:59", time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC)},
		{"2024-05-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		// an explicit offset is ignored, the wall clock is kept
		{"2024-05-01T09:30:00+08:00", time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)},
		{"  2024-05-01T09:30:00Z ", time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		got, err := LocalToUTC(tc.in)
		if err != nil {
			t.Errorf("LocalToUTC(%q) error = %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) || got.Location() != time.UTC {
			t.Errorf("LocalToUTC(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLocalToUTC_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "yesterday", "2024/05/01 09:30", "2024-13-01"} {
		if _, err := LocalToUTC(in); err == nil {
			t.Errorf("LocalToUTC(%q) error = nil, want error", in)
		}
	}
}

func TestLoadLocation(t *testing.T) {
	for _, name := range []string{"", "Local", "local"} {
		loc, err := LoadLocation(name)
		if err != nil || loc != time.Local {
			t.Errorf("LoadLocation(%q) = %v, %v; want time.Local", name, loc, err)
		}
	}
	loc, err := LoadLocation("UTC")
	if err != nil || loc.String() != "UTC" {
		t.Errorf("LoadLocation(UTC) = %v, %v", loc, err)
	}
	if _, err := LoadLocation("Mars/Olympus"); err == nil {
		t.Error("LoadLocation(Mars/Olympus) error = nil, want error")
	}
}

func TestIsSameDay(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)

	a := time.Date(2024, 5, 1, 0, 5, 0, 0, loc)
	b := time.Date(2024, 5, 1, 23, 55, 0, 0, loc)
	if !IsSameDay(a, b, loc) {
		t.Error("IsSameDay(00:05, 23:55) = false, want true")
	}

	// 2024-04-30 17:00Z is already 2024-05-01 01:00 in UTC+8,
	// while 08:30 in UTC+8 is 2024-05-01 00:30Z
	utc := time.Date(2024, 4, 30, 17, 0, 0, 0, time.UTC)
	morning := time.Date(2024, 5, 1, 8, 30, 0, 0, loc)
	if !IsSameDay(utc, morning, loc) {
		t.Error("IsSameDay across zones = false, want true in reference zone")
	}
	if IsSameDay(utc, morning, time.UTC) {
		t.Error("IsSameDay in UTC = true, want false")
	}

	if IsSameDay(a, a.AddDate(0, 0, 1), loc) {
		t.Error("IsSameDay(day, next day) = true, want false")
	}
}

func TestIsYesterday(t *testing.T) {
	loc := time.UTC
	ref := time.Date(2024, 3, 1, 8, 0, 0, 0, loc)

	testCases := []struct {
		a    time.Time
		want bool
	}{
		{time.Date(2024, 2, 29, 23, 59, 0, 0, loc), true}, // leap day
		{time.Date(2024, 2, 29, 0, 0, 0, 0, loc), true},
		{time.Date(2024, 3, 1, 0, 0, 0, 0, loc), false},
		{time.Date(2024, 2, 28, 12, 0, 0, 0, loc), false},
		{time.Date(2023, 3, 1, 8, 0, 0, 0, loc), false},
	}
	for _, tc := range testCases {
		if got := IsYesterday(tc.a, ref, loc); got != tc.want {
			t.Errorf("IsYesterday(%v, %v) = %v, want %v", tc.a, ref, got, tc.want)
		}
	}

	newYear := time.Date(2025, 1, 1, 0, 30, 0, 0, loc)
	if !IsYesterday(time.Date(2024, 12, 31, 22, 0, 0, 0, loc), newYear, loc) {
		t.Error("IsYesterday across year boundary = false, want true")
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	in := time.Date(2024, 5, 2, 3, 0, 0, 0, time.UTC) // 2024-05-01 22:00 in UTC-5
	got := StartOfDay(in, loc)
	want := time.Date(2024, 5, 1, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}
