package response

import (
	"time"

	"tutorbook/internal/usecase/queries"
)

type SlotResponse struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

type TemplateSlotResponse struct {
	DayOfWeek       int `json:"day_of_week"`
	StartMinute     int `json:"start_minute"`
	DurationMinutes int `json:"duration_minutes"`
}

func FromSlotViews(views []queries.SlotView) []SlotResponse {
	slots := make([]SlotResponse, len(views))
	for i, v := range views {
		slots[i] = SlotResponse{StartAt: v.StartAt, EndAt: v.EndAt}
	}
	return slots
}

func FromTemplateSlotViews(views []queries.TemplateSlotView) []TemplateSlotResponse {
	slots := make([]TemplateSlotResponse, len(views))
	for i, v := range views {
		slots[i] = TemplateSlotResponse{
			DayOfWeek:       v.DayOfWeek,
			StartMinute:     v.StartMinute,
			DurationMinutes: v.DurationMinutes,
		}
	}
	return slots
}
