package company

import "context"

// SettingsService manages attendance configuration for a company.
type SettingsService interface {
	// GetWorkSettings returns the company's settings, seeding defaults on
	// first access.
	GetWorkSettings(ctx context.Context) (WorkSettingsResponse, error)

	// UpdateWorkSettings applies a partial update after validation.
	UpdateWorkSettings(ctx context.Context, req UpdateWorkSettingsRequest) (WorkSettingsResponse, error)

	// CreateWorkLocation registers a new geofence location.
	CreateWorkLocation(ctx context.Context, req SaveWorkLocationRequest) (WorkLocationResponse, error)

	// ListWorkLocations returns every location for the company, active or not.
	ListWorkLocations(ctx context.Context) ([]WorkLocationResponse, error)

	// UpdateWorkLocation replaces a location's fields.
	UpdateWorkLocation(ctx context.Context, id string, req SaveWorkLocationRequest) (WorkLocationResponse, error)

	// DeleteWorkLocation removes a location.
	DeleteWorkLocation(ctx context.Context, id string) error
}
