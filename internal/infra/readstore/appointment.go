package readstore

import (
	"context"
	"time"

	"tutorbook/internal/domain/schedule"
	"tutorbook/internal/infra"
	"tutorbook/internal/infra/db"
)

type AppointmentReadStore struct {
	db db.DBTX
}

func NewAppointmentReadStore(db db.DBTX) *AppointmentReadStore {
	return &AppointmentReadStore{db: db}
}

// OccupyingWithin returns the busy intervals of scheduled and
// rescheduled appointments overlapping [start, end).
func (s *AppointmentReadStore) OccupyingWithin(ctx context.Context, start, end time.Time) ([]schedule.Interval, error) {
	rows, err := s.db.Query(ctx, `
		SELECT start_at, end_at
		FROM appointments
		WHERE status IN ('SCHEDULED', 'RESCHEDULED')
		  AND start_at < $2 AND end_at > $1
		ORDER BY start_at
	`, start, end)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query occupying appointments", err)
	}
	defer rows.Close()

	var intervals []schedule.Interval
	for rows.Next() {
		var iv schedule.Interval
		if err := rows.Scan(&iv.StartAt, &iv.EndAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment interval", err)
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read appointment intervals", err)
	}
	return intervals, nil
}
