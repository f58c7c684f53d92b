package readstore

import (
	"context"

	"tutorbook/internal/domain/schedule"
	"tutorbook/internal/infra"
	"tutorbook/internal/infra/db"
)

// PostgresScheduleReadStore loads the weekly template straight from
// postgres. Wrap it with cache.ScheduleCache for the hot read path.
type PostgresScheduleReadStore struct {
	db db.DBTX
}

func NewPostgresScheduleReadStore(db db.DBTX) *PostgresScheduleReadStore {
	return &PostgresScheduleReadStore{db: db}
}

func (s *PostgresScheduleReadStore) ActiveTemplate(ctx context.Context) (schedule.Template, error) {
	rows, err := s.db.Query(ctx, `
		SELECT day_of_week, start_minute, duration_minutes
		FROM availability_slots
		WHERE is_active
		ORDER BY day_of_week, start_minute
	`)
	if err != nil {
		return schedule.Template{}, infra.WrapRepoErr("failed to query availability slots", err)
	}
	defer rows.Close()

	var slots []schedule.TemplateSlot
	for rows.Next() {
		var dayOfWeek, startMinute, durationMinutes int
		if err := rows.Scan(&dayOfWeek, &startMinute, &durationMinutes); err != nil {
			return schedule.Template{}, infra.WrapRepoErr("failed to scan availability slot", err)
		}
		slots = append(slots, schedule.ReconstructTemplateSlot(dayOfWeek, startMinute, durationMinutes))
	}
	if err := rows.Err(); err != nil {
		return schedule.Template{}, infra.WrapRepoErr("failed to read availability slots", err)
	}

	tpl, err := schedule.NewTemplate(slots)
	if err != nil {
		return schedule.Template{}, infra.WrapRepoErr("stored template is inconsistent", err)
	}
	return tpl, nil
}
