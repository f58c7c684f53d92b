package request

import (
	"strings"
	"time"
)

const (
	ActionCancel      = "CANCEL"
	ActionConfirmDone = "CONFIRM_DONE"
	ActionNoShow      = "NO_SHOW"
	ActionAddNotes    = "ADD_NOTES"
	ActionReschedule  = "RESCHEDULE"
)

type AppointmentActionRequest struct {
	Action     string     `json:"action" binding:"required,oneof=CANCEL CONFIRM_DONE NO_SHOW ADD_NOTES RESCHEDULE"`
	NewStartAt *time.Time `json:"new_start_at,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

func (r AppointmentActionRequest) GetNotes() *string {
	if r.Notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.Notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
