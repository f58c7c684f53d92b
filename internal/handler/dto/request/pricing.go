package request

import (
	"strings"

	"github.com/google/uuid"
)

type QuoteRequest struct {
	SessionsTotal   int        `json:"sessions_total" binding:"required,min=1"`
	PricePerSession float64    `json:"price_per_session" binding:"min=0"`
	CourseID        *uuid.UUID `json:"course_id,omitempty"`
	CouponCode      *string    `json:"coupon_code,omitempty"`
}

func (r QuoteRequest) GetCouponCode() *string {
	if r.CouponCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.CouponCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
