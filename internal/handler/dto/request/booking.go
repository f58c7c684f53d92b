package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	CourseID        uuid.UUID `json:"course_id" binding:"required"`
	SessionsTotal   int       `json:"sessions_total" binding:"required,min=1"`
	PricePerSession float64   `json:"price_per_session" binding:"min=0"`
	FirstSessionAt  time.Time `json:"first_session_at" binding:"required"`
	CouponCode      *string   `json:"coupon_code,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
}

func (r CreateBookingRequest) GetCouponCode() *string {
	if r.CouponCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.CouponCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r CreateBookingRequest) GetNotes() *string {
	if r.Notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.Notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
