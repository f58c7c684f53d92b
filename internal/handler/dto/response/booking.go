package response

import (
	"time"

	"tutorbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID             uuid.UUID             `json:"id"`
	UserID         uuid.UUID             `json:"user_id"`
	CourseID       uuid.UUID             `json:"course_id"`
	SessionsTotal  int                   `json:"sessions_total"`
	Subtotal       float64               `json:"subtotal"`
	DiscountAmount float64               `json:"discount_amount"`
	DiscountSource string                `json:"discount_source"`
	FinalAmount    float64               `json:"final_amount"`
	CouponCode     *string               `json:"coupon_code,omitempty"`
	Status         string                `json:"status"`
	Notes          *string               `json:"notes,omitempty"`
	Appointments   []AppointmentResponse `json:"appointments"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

type BookingListResponse struct {
	ID            uuid.UUID `json:"id"`
	CourseID      uuid.UUID `json:"course_id"`
	SessionsTotal int       `json:"sessions_total"`
	FinalAmount   float64   `json:"final_amount"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Field names line up with the read model, so the copy is structural.
func FromBookingView(rm *queries.BookingView) (*BookingResponse, error) {
	var resp BookingResponse
	if err := copier.Copy(&resp, rm); err != nil {
		return nil, err
	}
	if resp.Appointments == nil {
		resp.Appointments = []AppointmentResponse{}
	}
	return &resp, nil
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:            rm.ID,
		CourseID:      rm.CourseID,
		SessionsTotal: rm.SessionsTotal,
		FinalAmount:   rm.FinalAmount,
		Status:        rm.Status,
		CreatedAt:     rm.CreatedAt,
	}
}
