package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/teamtrace/attendance-backend-go/internal/domain/company"
	"github.com/teamtrace/attendance-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type SettingsServiceImpl struct {
	db           *database.DB
	settingsRepo company.WorkSettingsRepository
	locationRepo company.WorkLocationRepository
}

func NewSettingsService(
	db *database.DB,
	settingsRepo company.WorkSettingsRepository,
	locationRepo company.WorkLocationRepository,
) company.SettingsService {
	return &SettingsServiceImpl{
		db:           db,
		settingsRepo: settingsRepo,
		locationRepo: locationRepo,
	}
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

// GetWorkSettings implements company.SettingsService.
func (s *SettingsServiceImpl) GetWorkSettings(ctx context.Context) (company.WorkSettingsResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return company.WorkSettingsResponse{}, err
	}

	settings, err := s.settingsRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		if errors.Is(err, company.ErrSettingsNotFound) || errors.Is(err, pgx.ErrNoRows) {
			settings, err = s.settingsRepo.Upsert(ctx, company.DefaultWorkSettings(companyID))
			if err != nil {
				return company.WorkSettingsResponse{}, fmt.Errorf("failed to seed default work settings: %w", err)
			}
		} else {
			return company.WorkSettingsResponse{}, fmt.Errorf("failed to get work settings: %w", err)
		}
	}

	return mapSettingsToResponse(settings), nil
}

// UpdateWorkSettings implements company.SettingsService.
func (s *SettingsServiceImpl) UpdateWorkSettings(ctx context.Context, req company.UpdateWorkSettingsRequest) (company.WorkSettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return company.WorkSettingsResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return company.WorkSettingsResponse{}, err
	}

	settings, err := s.settingsRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		if errors.Is(err, company.ErrSettingsNotFound) || errors.Is(err, pgx.ErrNoRows) {
			settings = company.DefaultWorkSettings(companyID)
		} else {
			return company.WorkSettingsResponse{}, fmt.Errorf("failed to get work settings: %w", err)
		}
	}

	if req.Timezone != nil {
		settings.Timezone = *req.Timezone
	}
	if req.FullDayHours != nil {
		settings.FullDayHours = *req.FullDayHours
	}
	if req.HalfDayHours != nil {
		settings.HalfDayHours = *req.HalfDayHours
	}
	if req.TransitionBufferMinutes != nil {
		settings.TransitionBufferMinutes = *req.TransitionBufferMinutes
	}
	if req.BreakTimings != nil {
		settings.BreakTimings = req.BreakTimings
	}

	updated, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		return company.WorkSettingsResponse{}, fmt.Errorf("failed to update work settings: %w", err)
	}

	return mapSettingsToResponse(updated), nil
}

// CreateWorkLocation implements company.SettingsService.
func (s *SettingsServiceImpl) CreateWorkLocation(ctx context.Context, req company.SaveWorkLocationRequest) (company.WorkLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return company.WorkLocationResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return company.WorkLocationResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	location := company.WorkLocation{
		ID:                 uuid.NewString(),
		CompanyID:          companyID,
		Name:               req.Name,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		RadiusMeters:       req.RadiusMeters,
		AllowedDepartments: req.AllowedDepartments,
		AllowedEmployees:   req.AllowedEmployees,
		IsActive:           isActive,
	}

	created, err := s.locationRepo.Create(ctx, location)
	if err != nil {
		return company.WorkLocationResponse{}, fmt.Errorf("failed to create work location: %w", err)
	}

	return mapLocationToResponse(created), nil
}

// ListWorkLocations implements company.SettingsService.
func (s *SettingsServiceImpl) ListWorkLocations(ctx context.Context) ([]company.WorkLocationResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	locations, err := s.locationRepo.ListByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work locations: %w", err)
	}

	responses := make([]company.WorkLocationResponse, 0, len(locations))
	for _, loc := range locations {
		responses = append(responses, mapLocationToResponse(loc))
	}
	return responses, nil
}

// UpdateWorkLocation implements company.SettingsService.
func (s *SettingsServiceImpl) UpdateWorkLocation(ctx context.Context, id string, req company.SaveWorkLocationRequest) (company.WorkLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return company.WorkLocationResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return company.WorkLocationResponse{}, err
	}

	location, err := s.locationRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, company.ErrWorkLocationNotFound) {
			return company.WorkLocationResponse{}, company.ErrWorkLocationNotFound
		}
		return company.WorkLocationResponse{}, fmt.Errorf("failed to get work location: %w", err)
	}

	location.Name = req.Name
	location.Latitude = req.Latitude
	location.Longitude = req.Longitude
	location.RadiusMeters = req.RadiusMeters
	location.AllowedDepartments = req.AllowedDepartments
	location.AllowedEmployees = req.AllowedEmployees
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return company.WorkLocationResponse{}, fmt.Errorf("failed to update work location: %w", err)
	}

	return mapLocationToResponse(location), nil
}

// DeleteWorkLocation implements company.SettingsService.
func (s *SettingsServiceImpl) DeleteWorkLocation(ctx context.Context, id string) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.locationRepo.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, company.ErrWorkLocationNotFound) {
			return company.ErrWorkLocationNotFound
		}
		return fmt.Errorf("failed to delete work location: %w", err)
	}

	return nil
}

func mapSettingsToResponse(settings company.WorkSettings) company.WorkSettingsResponse {
	resp := company.WorkSettingsResponse{
		CompanyID:               settings.CompanyID,
		Timezone:                settings.Timezone,
		FullDayHours:            settings.FullDayHours,
		HalfDayHours:            settings.HalfDayHours,
		TransitionBufferMinutes: settings.TransitionBufferMinutes,
		BreakTimings:            settings.BreakTimings,
	}
	if !settings.UpdatedAt.IsZero() {
		resp.UpdatedAt = settings.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	return resp
}

func mapLocationToResponse(loc company.WorkLocation) company.WorkLocationResponse {
	resp := company.WorkLocationResponse{
		ID:                 loc.ID,
		Name:               loc.Name,
		Latitude:           loc.Latitude,
		Longitude:          loc.Longitude,
		RadiusMeters:       loc.RadiusMeters,
		AllowedDepartments: loc.AllowedDepartments,
		AllowedEmployees:   loc.AllowedEmployees,
		IsActive:           loc.IsActive,
	}
	if !loc.CreatedAt.IsZero() {
		resp.CreatedAt = loc.CreatedAt.Format("2006-01-02 15:04:05")
	}
	if !loc.UpdatedAt.IsZero() {
		resp.UpdatedAt = loc.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	return resp
}
