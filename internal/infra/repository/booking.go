package repository

import (
	"context"
	"time"

	"tutorbook/internal/domain/booking"
	"tutorbook/internal/domain/pricing"
	"tutorbook/internal/infra"
	"tutorbook/internal/infra/db"
	"tutorbook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO bookings
			(id, user_id, course_id, sessions_total, subtotal_amount, discount_amount,
			 discount_source, final_amount, coupon_id, coupon_code, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, b.ID(), b.UserID(), b.CourseID(), b.SessionsTotal(), b.Subtotal(), b.DiscountAmount(),
		string(b.DiscountSource()), b.FinalAmount(), b.CouponID(), b.CouponCode(), b.Status().String(), b.Notes(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert booking", err)
	}
	return id, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var (
		bookingID, userID, courseID uuid.UUID
		sessionsTotal               int
		subtotal, discountAmount    float64
		discountSource              string
		finalAmount                 float64
		couponID                    *uuid.UUID
		couponCode, notes           *string
		status                      string
		createdAt, updatedAt        time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, course_id, sessions_total, subtotal_amount, discount_amount,
			discount_source, final_amount, coupon_id, coupon_code, status, notes,
			created_at, updated_at
		FROM bookings
		WHERE id = $1
	`, id).Scan(
		&bookingID, &userID, &courseID, &sessionsTotal, &subtotal, &discountAmount,
		&discountSource, &finalAmount, &couponID, &couponCode, &status, &notes,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	return booking.ReconstructBooking(
		bookingID, userID, courseID,
		sessionsTotal,
		subtotal, discountAmount,
		pricing.DiscountSource(discountSource),
		finalAmount,
		couponID, couponCode,
		booking.Status(status),
		notes,
		createdAt, updatedAt,
	), nil
}
