//go:build unit || e2e

package builder

import (
	"time"

	reqdto "tutorbook/internal/handler/dto/request"
	"tutorbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	UserID          uuid.UUID
	CourseID        uuid.UUID
	SessionsTotal   int
	PricePerSession float64
	FirstSessionAt  time.Time
	CouponCode      *string
	Notes           *string
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		UserID:          uuid.New(),
		CourseID:        uuid.New(),
		SessionsTotal:   4,
		PricePerSession: 50,
		FirstSessionAt:  time.Now().Add(48 * time.Hour).Truncate(time.Hour),
	}
}

func (b *BookingBuilder) BuildDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		CourseID:        b.CourseID,
		SessionsTotal:   b.SessionsTotal,
		PricePerSession: b.PricePerSession,
		FirstSessionAt:  b.FirstSessionAt,
		CouponCode:      b.CouponCode,
		Notes:           b.Notes,
	}
}

func (b *BookingBuilder) BuildReadModel() *queries.BookingView {
	now := time.Now()
	subtotal := float64(b.SessionsTotal) * b.PricePerSession
	appointments := make([]queries.AppointmentView, 0, b.SessionsTotal)
	bookingID := uuid.New()
	for i := 0; i < b.SessionsTotal; i++ {
		startAt := b.FirstSessionAt.Add(time.Duration(i) * 7 * 24 * time.Hour)
		appointments = append(appointments, queries.AppointmentView{
			ID:        uuid.New(),
			BookingID: bookingID,
			UserID:    b.UserID,
			StartAt:   startAt,
			EndAt:     startAt.Add(time.Hour),
			Status:    "SCHEDULED",
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return &queries.BookingView{
		ID:             bookingID,
		UserID:         b.UserID,
		CourseID:       b.CourseID,
		SessionsTotal:  b.SessionsTotal,
		Subtotal:       subtotal,
		DiscountAmount: 0,
		DiscountSource: "NONE",
		FinalAmount:    subtotal,
		CouponCode:     b.CouponCode,
		Status:         "CONFIRMED",
		Notes:          b.Notes,
		Appointments:   appointments,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:            uuid.New(),
		CourseID:      b.CourseID,
		SessionsTotal: b.SessionsTotal,
		FinalAmount:   float64(b.SessionsTotal) * b.PricePerSession,
		Status:        "CONFIRMED",
		CreatedAt:     time.Now(),
	}
}

func (b *BookingBuilder) WithSessions(n int) *BookingBuilder {
	b.SessionsTotal = n
	return b
}

func (b *BookingBuilder) WithCoupon(code string) *BookingBuilder {
	b.CouponCode = &code
	return b
}

func (b *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder {
	b.UserID = id
	return b
}
