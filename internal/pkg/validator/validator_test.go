package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"present", "half-day", "absent"}
	if !IsInSlice("present", slice) {
		t.Errorf("IsInSlice(%q) = false, want true", "present")
	}
	if IsInSlice("Present", slice) {
		t.Errorf("IsInSlice(%q) = true, want false (case sensitive)", "Present")
	}
	if IsInSlice("open", nil) {
		t.Errorf("IsInSlice on nil slice = true, want false")
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "01-01-2023", "2023/01/01", "", "today"}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{
		"2024-01-15T10:30:00Z",
		"2024-01-15T10:30:00+07:00",
		"2024-01-15T10:30:00.123Z",
	}
	invalid := []string{"2024-01-15 10:30:00", "2024-01-15", "", "noon"}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestClockTimeMinutes(t *testing.T) {
	cases := []struct {
		input string
		want  int
		ok    bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{" 12:00 ", 720, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"12:00:00", 0, false},
		{"12", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := ClockTimeMinutes(c.input)
		if ok != c.ok || got != c.want {
			t.Errorf("ClockTimeMinutes(%q) = (%d, %v), want (%d, %v)", c.input, got, ok, c.want, c.ok)
		}
	}
}

func TestIsValidWeekday(t *testing.T) {
	valid := []string{"Monday", "sunday", "SATURDAY", " Friday "}
	invalid := []string{"Mon", "Funday", "", "1"}
	for _, s := range valid {
		if !IsValidWeekday(s) {
			t.Errorf("IsValidWeekday(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidWeekday(s) {
			t.Errorf("IsValidWeekday(%q) = true, want false", s)
		}
	}
}

func TestCoordinateRanges(t *testing.T) {
	if !IsValidLatitude(90) || !IsValidLatitude(-90) || !IsValidLatitude(0) {
		t.Error("boundary latitudes should be valid")
	}
	if IsValidLatitude(90.0001) || IsValidLatitude(-91) {
		t.Error("out-of-range latitudes should be invalid")
	}
	if !IsValidLongitude(180) || !IsValidLongitude(-180) {
		t.Error("boundary longitudes should be valid")
	}
	if IsValidLongitude(180.0001) || IsValidLongitude(-181) {
		t.Error("out-of-range longitudes should be invalid")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "latitude", Message: "must be between -90 and 90"},
		{Field: "radius_meters", Message: "must be positive"},
	}

	msg := errs.Error()
	if msg != "latitude: must be between -90 and 90; radius_meters: must be positive" {
		t.Errorf("unexpected Error() output: %q", msg)
	}

	m := errs.ToMap()
	if len(m) != 2 || m["latitude"] == "" || m["radius_meters"] == "" {
		t.Errorf("unexpected ToMap() output: %v", m)
	}
}
