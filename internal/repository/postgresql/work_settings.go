package postgresql

import (
	"context"
	"fmt"

	"github.com/teamtrace/attendance-backend-go/internal/domain/company"
	"github.com/teamtrace/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workSettingsRepository struct {
	db *database.DB
}

func NewWorkSettingsRepository(db *database.DB) company.WorkSettingsRepository {
	return &workSettingsRepository{db: db}
}

// GetByCompanyID implements company.WorkSettingsRepository. Break timings
// live in a jsonb column; pgx unmarshals them straight into the domain
// slice.
func (w *workSettingsRepository) GetByCompanyID(ctx context.Context, companyID string) (company.WorkSettings, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT company_id, timezone, full_day_hours, half_day_hours,
			   transition_buffer_minutes, break_timings, created_at, updated_at
		FROM work_settings
		WHERE company_id = $1
	`

	var settings company.WorkSettings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&settings.CompanyID, &settings.Timezone, &settings.FullDayHours, &settings.HalfDayHours,
		&settings.TransitionBufferMinutes, &settings.BreakTimings, &settings.CreatedAt, &settings.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.WorkSettings{}, company.ErrSettingsNotFound
		}
		return company.WorkSettings{}, fmt.Errorf("failed to get work settings: %w", err)
	}

	return settings, nil
}

// Upsert implements company.WorkSettingsRepository.
func (w *workSettingsRepository) Upsert(ctx context.Context, settings company.WorkSettings) (company.WorkSettings, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		INSERT INTO work_settings (
			company_id, timezone, full_day_hours, half_day_hours,
			transition_buffer_minutes, break_timings
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (company_id) DO UPDATE
		SET timezone = EXCLUDED.timezone,
			full_day_hours = EXCLUDED.full_day_hours,
			half_day_hours = EXCLUDED.half_day_hours,
			transition_buffer_minutes = EXCLUDED.transition_buffer_minutes,
			break_timings = EXCLUDED.break_timings,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		settings.CompanyID, settings.Timezone, settings.FullDayHours, settings.HalfDayHours,
		settings.TransitionBufferMinutes, settings.BreakTimings,
	).Scan(&settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		return company.WorkSettings{}, fmt.Errorf("failed to upsert work settings: %w", err)
	}

	return settings, nil
}
