package response

import (
	"time"

	"tutorbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentResponse struct {
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

func FromAppointmentView(rm *queries.AppointmentView) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           rm.ID,
		BookingID:    rm.BookingID,
		UserID:       rm.UserID,
		StartAt:      rm.StartAt,
		EndAt:        rm.EndAt,
		Status:       rm.Status,
		TeacherNotes: rm.TeacherNotes,
		CreatedAt:    rm.CreatedAt,
		UpdatedAt:    rm.UpdatedAt,
	}
}
