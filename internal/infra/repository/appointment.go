package repository

import (
	"context"
	"time"

	"tutorbook/internal/domain/appointment"
	"tutorbook/internal/domain/schedule"
	"tutorbook/internal/infra"
	"tutorbook/internal/infra/db"
	"tutorbook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type AppointmentRepository struct {
	db db.DBTX
}

func NewAppointmentRepository(db db.DBTX) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) CreateBatch(ctx context.Context, appts []*appointment.Appointment) error {
	for _, appt := range appts {
		_, err := r.db.Exec(ctx, `
			INSERT INTO appointments (id, booking_id, user_id, start_at, end_at, status)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, appt.ID(), appt.BookingID(), appt.UserID(), appt.StartAt(), appt.EndAt(), appt.Status().String())
		if err != nil {
			return infra.WrapRepoErr("failed to insert appointment", err)
		}
	}
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var (
		apptID, bookingID, userID uuid.UUID
		startAt, endAt            time.Time
		status                    string
		teacherNotes              *string
		createdAt, updatedAt      time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, booking_id, user_id, start_at, end_at, status, teacher_notes, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`, id).Scan(&apptID, &bookingID, &userID, &startAt, &endAt, &status, &teacherNotes, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment", err)
	}

	return appointment.ReconstructAppointment(
		apptID, bookingID, userID,
		startAt, endAt,
		appointment.Status(status),
		teacherNotes,
		createdAt, updatedAt,
	), nil
}

func (r *AppointmentRepository) Update(ctx context.Context, appt *appointment.Appointment) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE appointments
		SET start_at = $2,
			end_at = $3,
			status = $4,
			teacher_notes = $5,
			updated_at = now()
		WHERE id = $1
	`, appt.ID(), appt.StartAt(), appt.EndAt(), appt.Status().String(), appt.TeacherNotes())
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}

// FindOccupyingWithin returns the intervals of slot-holding
// appointments intersecting [start, end). The interval test matches
// the domain's half-open overlap predicate.
func (r *AppointmentRepository) FindOccupyingWithin(
	ctx context.Context,
	start, end time.Time,
	ignoreID *uuid.UUID,
) ([]schedule.Interval, error) {
	rows, err := r.db.Query(ctx, `
		SELECT start_at, end_at
		FROM appointments
		WHERE status IN ('SCHEDULED', 'RESCHEDULED')
			AND start_at < $2
			AND end_at > $1
			AND ($3::uuid IS NULL OR id <> $3)
		ORDER BY start_at
	`, start, end, ignoreID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query occupying appointments", err)
	}
	defer rows.Close()

	var busy []schedule.Interval
	for rows.Next() {
		var iv schedule.Interval
		if err := rows.Scan(&iv.StartAt, &iv.EndAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment interval", err)
		}
		busy = append(busy, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read appointment intervals", err)
	}
	return busy, nil
}
