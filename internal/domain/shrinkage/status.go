package shrinkage

import "fmt"

// Status classifies one attendance day.
type Status string

const (
	StatusPresent Status = "present"
	StatusHalfDay Status = "half-day"
	StatusAbsent  Status = "absent"
)

// StatusSettings configures the day classifier. Zero values fall back to an
// 8-hour full day and a 4-hour half day. HalfDayHours is carried for
// configuration compatibility but does not participate in the threshold
// math: the half-day boundary is 50% of FullDayHours.
type StatusSettings struct {
	FullDayHours float64
	HalfDayHours float64
}

// Thresholds echoes the boundaries a verdict was derived from, for audit
// display downstream.
type Thresholds struct {
	HalfDay  float64 `json:"half_day"`
	FullDay  float64 `json:"full_day"`
	Required float64 `json:"required"`
}

// StatusResult is the classifier verdict. Reason is deterministic for a
// given input pair and is persisted on the attendance record as the audit
// trail.
type StatusResult struct {
	Status     Status     `json:"status"`
	Reason     string     `json:"reason"`
	Thresholds Thresholds `json:"thresholds"`
}

// DetermineAttendanceStatus maps effective work hours to present, half-day
// or absent. Full-day credit is granted within a 90% tolerance band of the
// configured full day; the half-day boundary sits at 50%. First match wins,
// and the thresholds are strictly ordered for any positive FullDayHours.
func DetermineAttendanceStatus(effectiveWorkHours float64, settings StatusSettings) StatusResult {
	fullDayHours := settings.FullDayHours
	if fullDayHours == 0 {
		fullDayHours = 8
	}

	halfDayThreshold := fullDayHours * 0.5
	fullDayThreshold := fullDayHours * 0.9

	thresholds := Thresholds{
		HalfDay:  round2(halfDayThreshold),
		FullDay:  round2(fullDayThreshold),
		Required: fullDayHours,
	}

	switch {
	case effectiveWorkHours >= fullDayThreshold:
		return StatusResult{
			Status: StatusPresent,
			Reason: fmt.Sprintf("Worked %.2f effective hours, meeting the full-day threshold of %.2f hours",
				effectiveWorkHours, fullDayThreshold),
			Thresholds: thresholds,
		}
	case effectiveWorkHours >= halfDayThreshold:
		return StatusResult{
			Status: StatusHalfDay,
			Reason: fmt.Sprintf("Worked %.2f effective hours, below the full-day threshold of %.2f hours but meeting the half-day threshold of %.2f hours",
				effectiveWorkHours, fullDayThreshold, halfDayThreshold),
			Thresholds: thresholds,
		}
	default:
		return StatusResult{
			Status: StatusAbsent,
			Reason: fmt.Sprintf("Worked %.2f effective hours, below the half-day threshold of %.2f hours",
				effectiveWorkHours, halfDayThreshold),
			Thresholds: thresholds,
		}
	}
}
