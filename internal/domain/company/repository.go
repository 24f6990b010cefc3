package company

import "context"

// WorkSettingsRepository persists per-company attendance configuration.
type WorkSettingsRepository interface {
	GetByCompanyID(ctx context.Context, companyID string) (WorkSettings, error)
	Upsert(ctx context.Context, settings WorkSettings) (WorkSettings, error)
}

// WorkLocationRepository persists geofence locations. All methods scope by
// companyID to prevent cross-company access.
type WorkLocationRepository interface {
	Create(ctx context.Context, location WorkLocation) (WorkLocation, error)
	GetByID(ctx context.Context, id string, companyID string) (WorkLocation, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]WorkLocation, error)
	Update(ctx context.Context, location WorkLocation) error
	Delete(ctx context.Context, id string, companyID string) error
}
