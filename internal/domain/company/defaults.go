package company

import "github.com/teamtrace/attendance-backend-go/internal/domain/shrinkage"

var workdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

var seedDefaults = struct {
	fullDayHours            float64
	halfDayHours            float64
	transitionBufferMinutes float64
}{
	fullDayHours:            8,
	halfDayHours:            4,
	transitionBufferMinutes: shrinkage.DefaultTransitionBufferMinutes,
}

// ConfigureDefaults overrides the thresholds seeded for companies that have
// never saved work settings. Called once at startup from configuration;
// non-positive values keep the built-in defaults.
func ConfigureDefaults(fullDayHours, halfDayHours, transitionBufferMinutes float64) {
	if fullDayHours > 0 {
		seedDefaults.fullDayHours = fullDayHours
	}
	if halfDayHours > 0 {
		seedDefaults.halfDayHours = halfDayHours
	}
	if transitionBufferMinutes >= 0 {
		seedDefaults.transitionBufferMinutes = transitionBufferMinutes
	}
}

// DefaultWorkSettings returns the configuration seeded for a company that
// has never saved settings: a full working day with a weekday lunch break.
func DefaultWorkSettings(companyID string) WorkSettings {
	return WorkSettings{
		CompanyID:               companyID,
		Timezone:                "UTC",
		FullDayHours:            seedDefaults.fullDayHours,
		HalfDayHours:            seedDefaults.halfDayHours,
		TransitionBufferMinutes: seedDefaults.transitionBufferMinutes,
		BreakTimings: []shrinkage.BreakTiming{
			{
				Name:      "Lunch",
				StartTime: "12:00",
				EndTime:   "13:00",
				Days:      workdays,
				IsActive:  true,
			},
		},
	}
}
