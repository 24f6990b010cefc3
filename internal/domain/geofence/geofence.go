// Package geofence decides whether an employee's reported position falls
// inside one of the company's authorized work locations. It is a stateless
// geometric predicate; the attendance service owns what happens when an
// employee is found outside.
package geofence

import (
	"github.com/teamtrace/attendance-backend-go/internal/pkg/geo"
)

// Location is a circular authorized zone. An empty AllowedDepartments list
// opens the location to every department; AllowedEmployees grants individual
// access regardless of department.
type Location struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Latitude           float64  `json:"latitude"`
	Longitude          float64  `json:"longitude"`
	RadiusMeters       float64  `json:"radius_meters"`
	AllowedDepartments []string `json:"allowed_departments,omitempty"`
	AllowedEmployees   []string `json:"allowed_employees,omitempty"`
	IsActive           bool     `json:"is_active"`
}

// Subject identifies the employee being evaluated.
type Subject struct {
	EmployeeID string
	Department string
}

// Point is a reported coordinate pair in degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Evaluation is the outcome of a geofence check. ClosestLocation and
// MinDistance describe the nearest allowed location whether or not the
// subject is inside it; ClosestLocation is nil when no location was
// accessible at all.
type Evaluation struct {
	IsWithinGeofence bool      `json:"is_within_geofence"`
	ClosestLocation  *Location `json:"closest_location,omitempty"`
	MinDistance      float64   `json:"min_distance"`
}

// Allows reports whether the subject may use this location.
func (l Location) Allows(s Subject) bool {
	if len(l.AllowedDepartments) == 0 {
		return true
	}
	for _, d := range l.AllowedDepartments {
		if d == s.Department {
			return true
		}
	}
	for _, e := range l.AllowedEmployees {
		if e == s.EmployeeID {
			return true
		}
	}
	return false
}

// Evaluate checks the subject's point against every active, accessible
// location. The first location whose radius contains the point wins, in
// iteration order; containment is non-strict, so a point exactly on the
// radius is inside. When no location contains the point, the closest
// accessible location and its distance are reported so callers can log how
// far outside the subject was.
func Evaluate(subject Subject, locations []Location, point Point) Evaluation {
	result := Evaluation{MinDistance: -1}

	for i := range locations {
		loc := locations[i]
		if !loc.IsActive || !loc.Allows(subject) {
			continue
		}

		distance := geo.HaversineDistance(point.Latitude, point.Longitude, loc.Latitude, loc.Longitude)

		if distance <= loc.RadiusMeters {
			return Evaluation{
				IsWithinGeofence: true,
				ClosestLocation:  &loc,
				MinDistance:      distance,
			}
		}

		if result.ClosestLocation == nil || distance < result.MinDistance {
			result.ClosestLocation = &loc
			result.MinDistance = distance
		}
	}

	return result
}
