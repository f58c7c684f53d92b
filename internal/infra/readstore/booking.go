package readstore

import (
	"context"

	"tutorbook/internal/infra"
	"tutorbook/internal/infra/db"
	"tutorbook/internal/pkg/pgconv"
	"tutorbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var view queries.BookingView
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, course_id, sessions_total, subtotal_amount, discount_amount,
			discount_source, final_amount, coupon_code, status, notes, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`, id).Scan(
		&view.ID, &view.UserID, &view.CourseID, &view.SessionsTotal, &view.Subtotal,
		&view.DiscountAmount, &view.DiscountSource, &view.FinalAmount, &view.CouponCode,
		&view.Status, &view.Notes, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	appointments, err := s.appointmentsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Appointments = appointments
	return &view, nil
}

func (s *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, course_id, sessions_total, final_amount, status, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query bookings", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID, &item.CourseID, &item.SessionsTotal,
			&item.FinalAmount, &item.Status, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read bookings", err)
	}
	return items, nil
}

func (s *BookingReadStore) appointmentsFor(ctx context.Context, bookingID uuid.UUID) ([]queries.AppointmentView, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, booking_id, user_id, start_at, end_at, status, teacher_notes, created_at, updated_at
		FROM appointments
		WHERE booking_id = $1
		ORDER BY start_at
	`, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query booking appointments", err)
	}
	defer rows.Close()

	appointments := []queries.AppointmentView{}
	for rows.Next() {
		var view queries.AppointmentView
		if err := rows.Scan(
			&view.ID, &view.BookingID, &view.UserID, &view.StartAt, &view.EndAt,
			&view.Status, &view.TeacherNotes, &view.CreatedAt, &view.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment", err)
		}
		appointments = append(appointments, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking appointments", err)
	}
	return appointments, nil
}
