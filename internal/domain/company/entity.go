package company

import (
	"time"

	"github.com/teamtrace/attendance-backend-go/internal/domain/shrinkage"
)

// WorkSettings holds the attendance configuration every checkout path
// reads: break windows, day thresholds and the timezone all wall-clock
// arithmetic is anchored in.
type WorkSettings struct {
	CompanyID               string
	Timezone                string // IANA name, e.g. "Asia/Jakarta"
	FullDayHours            float64
	HalfDayHours            float64
	TransitionBufferMinutes float64 // per applicable break
	BreakTimings            []shrinkage.BreakTiming
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// Location resolves the configured timezone, falling back to UTC when the
// stored name does not load.
func (s WorkSettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// StatusSettings adapts the stored thresholds for the day classifier.
func (s WorkSettings) StatusSettings() shrinkage.StatusSettings {
	return shrinkage.StatusSettings{
		FullDayHours: s.FullDayHours,
		HalfDayHours: s.HalfDayHours,
	}
}

// WorkLocation is a persisted geofence: a circular zone employees must stay
// inside while checked in.
type WorkLocation struct {
	ID                 string
	CompanyID          string
	Name               string
	Latitude           float64
	Longitude          float64
	RadiusMeters       float64
	AllowedDepartments []string
	AllowedEmployees   []string
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
