package postgresql

import (
	"context"
	"fmt"

	"github.com/teamtrace/attendance-backend-go/internal/domain/company"
	"github.com/teamtrace/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workLocationRepository struct {
	db *database.DB
}

func NewWorkLocationRepository(db *database.DB) company.WorkLocationRepository {
	return &workLocationRepository{db: db}
}

const workLocationColumns = `id, company_id, name, latitude, longitude, radius_meters,
	   allowed_departments, allowed_employees, is_active, created_at, updated_at`

func scanWorkLocation(row pgx.Row) (company.WorkLocation, error) {
	var loc company.WorkLocation
	err := row.Scan(
		&loc.ID, &loc.CompanyID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.RadiusMeters,
		&loc.AllowedDepartments, &loc.AllowedEmployees, &loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt,
	)
	return loc, err
}

// Create implements company.WorkLocationRepository.
func (w *workLocationRepository) Create(ctx context.Context, location company.WorkLocation) (company.WorkLocation, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		INSERT INTO work_locations (
			id, company_id, name, latitude, longitude, radius_meters,
			allowed_departments, allowed_employees, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		location.ID, location.CompanyID, location.Name,
		location.Latitude, location.Longitude, location.RadiusMeters,
		location.AllowedDepartments, location.AllowedEmployees, location.IsActive,
	).Scan(&location.CreatedAt, &location.UpdatedAt)
	if err != nil {
		return company.WorkLocation{}, fmt.Errorf("failed to create work location: %w", err)
	}

	return location, nil
}

// GetByID implements company.WorkLocationRepository.
func (w *workLocationRepository) GetByID(ctx context.Context, id string, companyID string) (company.WorkLocation, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT ` + workLocationColumns + `
		FROM work_locations
		WHERE id = $1 AND company_id = $2
	`

	loc, err := scanWorkLocation(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.WorkLocation{}, company.ErrWorkLocationNotFound
		}
		return company.WorkLocation{}, fmt.Errorf("failed to get work location: %w", err)
	}

	return loc, nil
}

// ListByCompanyID implements company.WorkLocationRepository. Insertion
// order is preserved so the geofence evaluator's first-match semantics are
// stable across calls.
func (w *workLocationRepository) ListByCompanyID(ctx context.Context, companyID string) ([]company.WorkLocation, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT ` + workLocationColumns + `
		FROM work_locations
		WHERE company_id = $1
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work locations: %w", err)
	}
	defer rows.Close()

	var locations []company.WorkLocation
	for rows.Next() {
		loc, err := scanWorkLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work location: %w", err)
		}
		locations = append(locations, loc)
	}

	return locations, rows.Err()
}

// Update implements company.WorkLocationRepository.
func (w *workLocationRepository) Update(ctx context.Context, location company.WorkLocation) error {
	q := GetQuerier(ctx, w.db)

	query := `
		UPDATE work_locations
		SET name = $3,
			latitude = $4,
			longitude = $5,
			radius_meters = $6,
			allowed_departments = $7,
			allowed_employees = $8,
			is_active = $9,
			updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query,
		location.ID, location.CompanyID, location.Name,
		location.Latitude, location.Longitude, location.RadiusMeters,
		location.AllowedDepartments, location.AllowedEmployees, location.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update work location: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return company.ErrWorkLocationNotFound
	}

	return nil
}

// Delete implements company.WorkLocationRepository.
func (w *workLocationRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, w.db)

	tag, err := q.Exec(ctx, `DELETE FROM work_locations WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete work location: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return company.ErrWorkLocationNotFound
	}

	return nil
}
