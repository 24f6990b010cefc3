package geofence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anyone = Subject{EmployeeID: "emp-1", Department: "Engineering"}

func office(id string, lat, lon, radius float64) Location {
	return Location{
		ID:           id,
		Name:         id,
		Latitude:     lat,
		Longitude:    lon,
		RadiusMeters: radius,
		IsActive:     true,
	}
}

func TestEvaluate_InsideRadius(t *testing.T) {
	// Connaught Place office, employee ~13 m away
	locations := []Location{office("hq", 28.6139, 77.2090, 100)}
	point := Point{Latitude: 28.6140, Longitude: 77.2091}

	eval := Evaluate(anyone, locations, point)

	assert.True(t, eval.IsWithinGeofence)
	require.NotNil(t, eval.ClosestLocation)
	assert.Equal(t, "hq", eval.ClosestLocation.ID)
	assert.Greater(t, eval.MinDistance, 0.0)
	assert.Less(t, eval.MinDistance, 100.0)
}

func TestEvaluate_OutsideRadius(t *testing.T) {
	locations := []Location{office("hq", 28.6139, 77.2090, 100)}
	// ~1.5 km away
	point := Point{Latitude: 28.6275, Longitude: 77.2090}

	eval := Evaluate(anyone, locations, point)

	assert.False(t, eval.IsWithinGeofence)
	require.NotNil(t, eval.ClosestLocation)
	assert.Equal(t, "hq", eval.ClosestLocation.ID)
	assert.Greater(t, eval.MinDistance, 100.0)
}

func TestEvaluate_ExactlyOnRadiusIsInside(t *testing.T) {
	locations := []Location{office("hq", 0, 0, 50)}

	eval := Evaluate(anyone, locations, Point{Latitude: 0, Longitude: 0})
	require.True(t, eval.IsWithinGeofence)

	// Same point as the center with a zero radius still counts as inside
	locations[0].RadiusMeters = 0
	eval = Evaluate(anyone, locations, Point{Latitude: 0, Longitude: 0})
	assert.True(t, eval.IsWithinGeofence)
	assert.Zero(t, eval.MinDistance)
}

func TestEvaluate_FirstContainingLocationWins(t *testing.T) {
	// Two overlapping zones both contain the point; iteration order decides
	locations := []Location{
		office("first", 28.6139, 77.2090, 500),
		office("second", 28.6140, 77.2091, 500),
	}
	point := Point{Latitude: 28.6140, Longitude: 77.2091}

	eval := Evaluate(anyone, locations, point)

	require.True(t, eval.IsWithinGeofence)
	assert.Equal(t, "first", eval.ClosestLocation.ID)
}

func TestEvaluate_TracksClosestWhenOutsideAll(t *testing.T) {
	locations := []Location{
		office("far", 28.7000, 77.3000, 50),
		office("near", 28.6150, 77.2095, 50),
	}
	point := Point{Latitude: 28.6139, Longitude: 77.2090}

	eval := Evaluate(anyone, locations, point)

	assert.False(t, eval.IsWithinGeofence)
	require.NotNil(t, eval.ClosestLocation)
	assert.Equal(t, "near", eval.ClosestLocation.ID)
}

func TestEvaluate_SkipsInactiveLocations(t *testing.T) {
	inactive := office("hq", 28.6139, 77.2090, 100)
	inactive.IsActive = false

	eval := Evaluate(anyone, []Location{inactive}, Point{Latitude: 28.6139, Longitude: 77.2090})

	assert.False(t, eval.IsWithinGeofence)
	assert.Nil(t, eval.ClosestLocation)
	assert.Equal(t, -1.0, eval.MinDistance)
}

func TestEvaluate_NoLocations(t *testing.T) {
	eval := Evaluate(anyone, nil, Point{Latitude: 28.6139, Longitude: 77.2090})

	assert.False(t, eval.IsWithinGeofence)
	assert.Nil(t, eval.ClosestLocation)
	assert.Equal(t, -1.0, eval.MinDistance)
}

func TestLocation_Allows(t *testing.T) {
	open := office("open", 0, 0, 100)
	assert.True(t, open.Allows(Subject{EmployeeID: "e1", Department: "Sales"}))

	restricted := office("restricted", 0, 0, 100)
	restricted.AllowedDepartments = []string{"Engineering"}
	restricted.AllowedEmployees = []string{"e-special"}

	assert.True(t, restricted.Allows(Subject{EmployeeID: "e1", Department: "Engineering"}))
	assert.False(t, restricted.Allows(Subject{EmployeeID: "e1", Department: "Sales"}))
	assert.True(t, restricted.Allows(Subject{EmployeeID: "e-special", Department: "Sales"}),
		"employee grant bypasses the department list")
}

func TestEvaluate_SkipsDisallowedLocations(t *testing.T) {
	restricted := office("restricted", 28.6139, 77.2090, 100)
	restricted.AllowedDepartments = []string{"Finance"}

	eval := Evaluate(anyone, []Location{restricted}, Point{Latitude: 28.6139, Longitude: 77.2090})

	assert.False(t, eval.IsWithinGeofence)
	assert.Nil(t, eval.ClosestLocation)
}
