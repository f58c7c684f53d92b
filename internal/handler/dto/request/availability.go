package request

import (
	"tutorbook/internal/domain/schedule"
)

type TemplateSlotInput struct {
	DayOfWeek       int `json:"day_of_week"`
	StartMinute     int `json:"start_minute"`
	DurationMinutes int `json:"duration_minutes"`
}

type ReplaceTemplateRequest struct {
	Slots []TemplateSlotInput `json:"slots"`
}

// ToDomain validates every row; a zero duration defaults inside the
// slot constructor. Duplicate (day, start minute) pairs are rejected
// by the template constructor.
func (r ReplaceTemplateRequest) ToDomain() ([]schedule.TemplateSlot, error) {
	slots := make([]schedule.TemplateSlot, 0, len(r.Slots))
	for _, in := range r.Slots {
		slot, err := schedule.NewTemplateSlot(in.DayOfWeek, in.StartMinute, in.DurationMinutes)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	if _, err := schedule.NewTemplate(slots); err != nil {
		return nil, err
	}
	return slots, nil
}
