package company

import (
	"context"
	"testing"

	"github.com/teamtrace/attendance-backend-go/internal/domain/company"
	"github.com/teamtrace/attendance-backend-go/internal/domain/shrinkage"
	"github.com/teamtrace/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepo struct {
	settings company.WorkSettings
	getErr   error
	upserted *company.WorkSettings
}

func (f *fakeSettingsRepo) GetByCompanyID(ctx context.Context, companyID string) (company.WorkSettings, error) {
	if f.getErr != nil {
		return company.WorkSettings{}, f.getErr
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, settings company.WorkSettings) (company.WorkSettings, error) {
	f.upserted = &settings
	return settings, nil
}

type fakeLocationRepo struct {
	locations map[string]company.WorkLocation
	created   *company.WorkLocation
	updated   *company.WorkLocation
	deleted   string
}

func (f *fakeLocationRepo) Create(ctx context.Context, location company.WorkLocation) (company.WorkLocation, error) {
	f.created = &location
	return location, nil
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id string, companyID string) (company.WorkLocation, error) {
	loc, ok := f.locations[id]
	if !ok || loc.CompanyID != companyID {
		return company.WorkLocation{}, company.ErrWorkLocationNotFound
	}
	return loc, nil
}

func (f *fakeLocationRepo) ListByCompanyID(ctx context.Context, companyID string) ([]company.WorkLocation, error) {
	var out []company.WorkLocation
	for _, loc := range f.locations {
		if loc.CompanyID == companyID {
			out = append(out, loc)
		}
	}
	return out, nil
}

func (f *fakeLocationRepo) Update(ctx context.Context, location company.WorkLocation) error {
	f.updated = &location
	return nil
}

func (f *fakeLocationRepo) Delete(ctx context.Context, id string, companyID string) error {
	if _, ok := f.locations[id]; !ok {
		return company.ErrWorkLocationNotFound
	}
	f.deleted = id
	return nil
}

func managerContext(t *testing.T) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"employee_id": "emp-1",
		"company_id":  "co-1",
		"role":        "manager",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func existingSettings() company.WorkSettings {
	return company.WorkSettings{
		CompanyID:               "co-1",
		Timezone:                "Asia/Jakarta",
		FullDayHours:            8,
		HalfDayHours:            4,
		TransitionBufferMinutes: 5,
		BreakTimings: []shrinkage.BreakTiming{
			{Name: "Lunch", StartTime: "12:00", EndTime: "13:00", IsActive: true},
		},
	}
}

func TestGetWorkSettings_SeedsDefaultsOnFirstAccess(t *testing.T) {
	settingsRepo := &fakeSettingsRepo{getErr: company.ErrSettingsNotFound}
	svc := NewSettingsService(nil, settingsRepo, &fakeLocationRepo{})

	resp, err := svc.GetWorkSettings(managerContext(t))
	require.NoError(t, err)

	require.NotNil(t, settingsRepo.upserted)
	assert.Equal(t, "co-1", resp.CompanyID)
	assert.Equal(t, "UTC", resp.Timezone)
	assert.Greater(t, resp.FullDayHours, 0.0)
	assert.NotEmpty(t, resp.BreakTimings)
}

func TestUpdateWorkSettings_PartialMerge(t *testing.T) {
	settingsRepo := &fakeSettingsRepo{settings: existingSettings()}
	svc := NewSettingsService(nil, settingsRepo, &fakeLocationRepo{})

	fullDay := 7.5
	resp, err := svc.UpdateWorkSettings(managerContext(t), company.UpdateWorkSettingsRequest{
		FullDayHours: &fullDay,
	})
	require.NoError(t, err)

	assert.InDelta(t, 7.5, resp.FullDayHours, 0.001)
	// Untouched fields survive the merge
	assert.Equal(t, "Asia/Jakarta", resp.Timezone)
	assert.InDelta(t, 4, resp.HalfDayHours, 0.001)
	assert.Len(t, resp.BreakTimings, 1)
}

func TestUpdateWorkSettings_RejectsInvalidConfiguration(t *testing.T) {
	svc := NewSettingsService(nil, &fakeSettingsRepo{settings: existingSettings()}, &fakeLocationRepo{})

	badTz := "Mars/Olympus"
	negativeHours := -1.0
	_, err := svc.UpdateWorkSettings(managerContext(t), company.UpdateWorkSettingsRequest{
		Timezone:     &badTz,
		FullDayHours: &negativeHours,
		BreakTimings: []shrinkage.BreakTiming{
			{Name: "", StartTime: "14:00", EndTime: "13:00", Days: []string{"Funday"}, IsActive: true},
		},
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "timezone")
	assert.Contains(t, fields, "full_day_hours")
	assert.Contains(t, fields, "break_timings[0].name")
	assert.Contains(t, fields, "break_timings[0]")
	assert.Contains(t, fields, "break_timings[0].days")
}

func TestCreateWorkLocation(t *testing.T) {
	locationRepo := &fakeLocationRepo{}
	svc := NewSettingsService(nil, &fakeSettingsRepo{settings: existingSettings()}, locationRepo)

	resp, err := svc.CreateWorkLocation(managerContext(t), company.SaveWorkLocationRequest{
		Name:         "HQ",
		Latitude:     28.6139,
		Longitude:    77.2090,
		RadiusMeters: 100,
	})
	require.NoError(t, err)

	require.NotNil(t, locationRepo.created)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "co-1", locationRepo.created.CompanyID)
	assert.True(t, resp.IsActive, "locations default to active")
}

func TestCreateWorkLocation_InvalidRadius(t *testing.T) {
	svc := NewSettingsService(nil, &fakeSettingsRepo{settings: existingSettings()}, &fakeLocationRepo{})

	_, err := svc.CreateWorkLocation(managerContext(t), company.SaveWorkLocationRequest{
		Name:         "HQ",
		Latitude:     28.6139,
		Longitude:    77.2090,
		RadiusMeters: 0,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "radius_meters")
}

func TestUpdateWorkLocation_NotFound(t *testing.T) {
	svc := NewSettingsService(nil, &fakeSettingsRepo{settings: existingSettings()}, &fakeLocationRepo{})

	_, err := svc.UpdateWorkLocation(managerContext(t), "missing", company.SaveWorkLocationRequest{
		Name:         "HQ",
		Latitude:     28.6139,
		Longitude:    77.2090,
		RadiusMeters: 100,
	})
	assert.ErrorIs(t, err, company.ErrWorkLocationNotFound)
}

func TestUpdateWorkLocation(t *testing.T) {
	locationRepo := &fakeLocationRepo{
		locations: map[string]company.WorkLocation{
			"loc-1": {ID: "loc-1", CompanyID: "co-1", Name: "HQ", Latitude: 28.6139, Longitude: 77.2090, RadiusMeters: 100, IsActive: true},
		},
	}
	svc := NewSettingsService(nil, &fakeSettingsRepo{settings: existingSettings()}, locationRepo)

	inactive := false
	resp, err := svc.UpdateWorkLocation(managerContext(t), "loc-1", company.SaveWorkLocationRequest{
		Name:         "HQ Annex",
		Latitude:     28.6150,
		Longitude:    77.2100,
		RadiusMeters: 150,
		IsActive:     &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "HQ Annex", resp.Name)
	assert.False(t, resp.IsActive)
	require.NotNil(t, locationRepo.updated)
	assert.InDelta(t, 150, locationRepo.updated.RadiusMeters, 0.001)
}

func TestDeleteWorkLocation(t *testing.T) {
	locationRepo := &fakeLocationRepo{
		locations: map[string]company.WorkLocation{
			"loc-1": {ID: "loc-1", CompanyID: "co-1"},
		},
	}
	svc := NewSettingsService(nil, &fakeSettingsRepo{settings: existingSettings()}, locationRepo)

	require.NoError(t, svc.DeleteWorkLocation(managerContext(t), "loc-1"))
	assert.Equal(t, "loc-1", locationRepo.deleted)

	err := svc.DeleteWorkLocation(managerContext(t), "loc-2")
	assert.ErrorIs(t, err, company.ErrWorkLocationNotFound)
}
