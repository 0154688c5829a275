package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone America/New_York", timezone: "America/New_York", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestNowInTimezone_Invalid(t *testing.T) {
	if _, err := NowInTimezone("Not/AZone"); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestDayOf(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	instant := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

	if got := DayOf(instant, time.UTC); got != "2024-05-01" {
		t.Errorf("DayOf(UTC) = %q, want 2024-05-01", got)
	}
	if got := DayOf(instant, tokyo); got != "2024-05-02" {
		t.Errorf("DayOf(Tokyo) = %q, want 2024-05-02", got)
	}
}

func TestParseDayOrTimestamp(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	tests := []struct {
		name    string
		value   string
		loc     *time.Location
		want    string
		wantErr bool
	}{
		{name: "plain day", value: "2024-05-01", loc: berlin, want: "2024-05-01"},
		{name: "iso timestamp in utc", value: "2024-05-01T10:00:00.000Z", loc: time.UTC, want: "2024-05-01"},
		{name: "iso timestamp crossing midnight", value: "2024-05-01T23:30:00Z", loc: berlin, want: "2024-05-02"},
		{name: "offset timestamp", value: "2024-05-01T01:00:00+05:00", loc: time.UTC, want: "2024-04-30"},
		{name: "garbage", value: "yesterday", loc: time.UTC, wantErr: true},
		{name: "empty", value: "", loc: time.UTC, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDayOrTimestamp(tt.value, tt.loc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDayOrTimestamp(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDayOrTimestamp(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		day  string
		n    int
		want string
	}{
		{"2024-03-01", -1, "2024-02-29"},
		{"2023-03-01", -1, "2023-02-28"},
		{"2024-12-31", 1, "2025-01-01"},
		{"2024-03-10", 1, "2024-03-11"}, // US DST start
		{"2024-11-03", -1, "2024-11-02"}, // US DST end
		{"2024-05-01", 0, "2024-05-01"},
	}

	for _, tt := range tests {
		got, err := AddDays(tt.day, tt.n)
		if err != nil {
			t.Fatalf("AddDays(%q, %d) error: %v", tt.day, tt.n, err)
		}
		if got != tt.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tt.day, tt.n, got, tt.want)
		}
	}

	if _, err := AddDays("2024-13-01", 1); err == nil {
		t.Error("expected error for invalid day")
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want int
	}{
		{name: "same day", from: "2024-05-01", to: "2024-05-01", want: 0},
		{name: "yesterday", from: "2024-04-30", to: "2024-05-01", want: 1},
		{name: "future", from: "2024-05-03", to: "2024-05-01", want: -2},
		{name: "across leap day", from: "2024-02-28", to: "2024-03-01", want: 2},
		{name: "across dst", from: "2024-03-09", to: "2024-03-11", want: 2},
		{name: "across year", from: "2023-12-31", to: "2024-01-01", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DaysBetween(tt.from, tt.to)
			if err != nil {
				t.Fatalf("DaysBetween() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DaysBetween(%q, %q) = %d, want %d", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

// A rolling 24h window would call these the same day; calendar comparison must not.
func TestIsSameDay_NotARollingWindow(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	lateNight := time.Date(2024, 5, 1, 23, 50, 0, 0, ny)
	earlyMorning := time.Date(2024, 5, 2, 0, 10, 0, 0, ny)

	if IsSameDay(lateNight, earlyMorning, ny) {
		t.Error("23:50 and 00:10 on consecutive dates must be different days")
	}
	if !IsSameDay(time.Date(2024, 5, 1, 0, 0, 0, 0, ny), lateNight, ny) {
		t.Error("midnight and 23:50 on the same date must be the same day")
	}
}

func TestLastNDays(t *testing.T) {
	days, err := LastNDays("2024-03-02", 3)
	if err != nil {
		t.Fatalf("LastNDays() error: %v", err)
	}
	want := []string{"2024-02-29", "2024-03-01", "2024-03-02"}
	if len(days) != len(want) {
		t.Fatalf("LastNDays() returned %d days, want %d", len(days), len(want))
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("day[%d] = %q, want %q", i, days[i], want[i])
		}
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Local") || !ValidateTimezone("") || !ValidateTimezone("UTC") {
		t.Error("expected Local, empty and UTC to be valid")
	}
	if ValidateTimezone("Mars/Olympus_Mons") {
		t.Error("expected invalid timezone to be rejected")
	}
}
