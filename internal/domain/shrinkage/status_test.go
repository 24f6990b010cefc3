package shrinkage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineAttendanceStatus(t *testing.T) {
	settings := StatusSettings{FullDayHours: 8, HalfDayHours: 4}

	cases := []struct {
		name   string
		worked float64
		want   Status
	}{
		{"full day", 8.0, StatusPresent},
		{"within tolerance band", 7.5, StatusPresent},
		{"exactly at full-day threshold", 7.2, StatusPresent},
		{"just under full-day threshold", 7.19, StatusHalfDay},
		{"half day", 4.5, StatusHalfDay},
		{"exactly at half-day threshold", 4.0, StatusHalfDay},
		{"just under half-day threshold", 3.99, StatusAbsent},
		{"short day", 3.0, StatusAbsent},
		{"zero hours", 0, StatusAbsent},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := DetermineAttendanceStatus(c.worked, settings)
			assert.Equal(t, c.want, res.Status)
			assert.NotEmpty(t, res.Reason)
		})
	}
}

func TestDetermineAttendanceStatus_Thresholds(t *testing.T) {
	res := DetermineAttendanceStatus(6, StatusSettings{FullDayHours: 8})

	assert.InDelta(t, 4.0, res.Thresholds.HalfDay, 0.001)
	assert.InDelta(t, 7.2, res.Thresholds.FullDay, 0.001)
	assert.InDelta(t, 8.0, res.Thresholds.Required, 0.001)
}

func TestDetermineAttendanceStatus_ZeroSettingsFallBack(t *testing.T) {
	res := DetermineAttendanceStatus(7.5, StatusSettings{})

	assert.Equal(t, StatusPresent, res.Status)
	assert.InDelta(t, 8.0, res.Thresholds.Required, 0.001)
}

func TestDetermineAttendanceStatus_CustomFullDay(t *testing.T) {
	settings := StatusSettings{FullDayHours: 6}

	assert.Equal(t, StatusPresent, DetermineAttendanceStatus(5.4, settings).Status)
	assert.Equal(t, StatusHalfDay, DetermineAttendanceStatus(3.0, settings).Status)
	assert.Equal(t, StatusAbsent, DetermineAttendanceStatus(2.9, settings).Status)
}

func TestDetermineAttendanceStatus_ReasonIsDeterministic(t *testing.T) {
	settings := StatusSettings{FullDayHours: 8}

	first := DetermineAttendanceStatus(7.92, settings)
	second := DetermineAttendanceStatus(7.92, settings)

	assert.Equal(t, first.Reason, second.Reason)
	assert.Equal(t, "Worked 7.92 effective hours, meeting the full-day threshold of 7.20 hours", first.Reason)
}

func TestDetermineAttendanceStatus_HalfDayHoursDoesNotShiftThresholds(t *testing.T) {
	// HalfDayHours is configuration baggage; the boundary stays at 50% of
	// the full day regardless of its value.
	loose := DetermineAttendanceStatus(4.0, StatusSettings{FullDayHours: 8, HalfDayHours: 6})
	tight := DetermineAttendanceStatus(4.0, StatusSettings{FullDayHours: 8, HalfDayHours: 2})

	assert.Equal(t, StatusHalfDay, loose.Status)
	assert.Equal(t, StatusHalfDay, tight.Status)
	assert.Equal(t, loose.Thresholds, tight.Thresholds)
}
