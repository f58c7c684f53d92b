package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type SlotView struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

type TemplateSlotView struct {
	DayOfWeek       int `json:"day_of_week"`
	StartMinute     int `json:"start_minute"`
	DurationMinutes int `json:"duration_minutes"`
}

type UpsellView struct {
	SessionsNeeded   int     `json:"sessions_needed"`
	UnlockPercentOff float64 `json:"unlock_percent_off"`
	EstimatedSavings float64 `json:"estimated_savings"`
}

type QuoteView struct {
	SessionsTotal   int         `json:"sessions_total"`
	PricePerSession float64     `json:"price_per_session"`
	Subtotal        float64     `json:"subtotal"`
	DiscountAmount  float64     `json:"discount_amount"`
	DiscountSource  string      `json:"discount_source"`
	CouponCode      *string     `json:"coupon_code,omitempty"`
	FinalAmount     float64     `json:"final_amount"`
	Upsell          *UpsellView `json:"upsell,omitempty"`
}

type AppointmentView struct {
	ID           uuid.UUID `json:"id"`
	BookingID    uuid.UUID `json:"booking_id"`
	UserID       uuid.UUID `json:"user_id"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	Status       string    `json:"status"`
	TeacherNotes *string   `json:"teacher_notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BookingView struct {
	ID             uuid.UUID         `json:"id"`
	UserID         uuid.UUID         `json:"user_id"`
	CourseID       uuid.UUID         `json:"course_id"`
	SessionsTotal  int               `json:"sessions_total"`
	Subtotal       float64           `json:"subtotal"`
	DiscountAmount float64           `json:"discount_amount"`
	DiscountSource string            `json:"discount_source"`
	FinalAmount    float64           `json:"final_amount"`
	CouponCode     *string           `json:"coupon_code,omitempty"`
	Status         string            `json:"status"`
	Notes          *string           `json:"notes,omitempty"`
	Appointments   []AppointmentView `json:"appointments"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type BookingListItem struct {
	ID            uuid.UUID `json:"id"`
	CourseID      uuid.UUID `json:"course_id"`
	SessionsTotal int       `json:"sessions_total"`
	FinalAmount   float64   `json:"final_amount"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
