package repository

import (
	"context"

	"tutorbook/internal/domain/schedule"
	"tutorbook/internal/infra"
	"tutorbook/internal/infra/db"
)

type ScheduleRepository struct {
	db db.DBTX
}

func NewScheduleRepository(db db.DBTX) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) ActiveSlots(ctx context.Context) ([]schedule.TemplateSlot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT day_of_week, start_minute, duration_minutes
		FROM availability_slots
		WHERE is_active
		ORDER BY day_of_week, start_minute
	`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load availability slots", err)
	}
	defer rows.Close()

	var slots []schedule.TemplateSlot
	for rows.Next() {
		var dayOfWeek, startMinute, durationMinutes int
		if err := rows.Scan(&dayOfWeek, &startMinute, &durationMinutes); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability slot", err)
		}
		slots = append(slots, schedule.ReconstructTemplateSlot(dayOfWeek, startMinute, durationMinutes))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read availability slots", err)
	}
	return slots, nil
}

// ReplaceAll implements the admin bulk-replace write: the whole
// template is swapped, never edited row by row.
func (r *ScheduleRepository) ReplaceAll(ctx context.Context, slots []schedule.TemplateSlot) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM availability_slots`); err != nil {
		return infra.WrapRepoErr("failed to clear availability slots", err)
	}

	for _, slot := range slots {
		_, err := r.db.Exec(ctx, `
			INSERT INTO availability_slots (day_of_week, start_minute, duration_minutes, is_active)
			VALUES ($1, $2, $3, TRUE)
		`, slot.DayOfWeek(), slot.StartMinute(), slot.DurationMinutes())
		if err != nil {
			return infra.WrapRepoErr("failed to insert availability slot", err)
		}
	}
	return nil
}
