package appointment

type Status string

const (
	StatusScheduled   Status = "SCHEDULED"
	StatusRescheduled Status = "RESCHEDULED"
	StatusDone        Status = "DONE"
	StatusCanceled    Status = "CANCELED"
	StatusNoShow      Status = "NO_SHOW"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusRescheduled, StatusDone, StatusCanceled, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsOccupying reports whether an appointment in this status holds its
// time range against new bookings. Done, canceled, and no-show
// appointments free the slot.
func (s Status) IsOccupying() bool {
	return s == StatusScheduled || s == StatusRescheduled
}

// OccupyingStatuses is the status set the conflict query filters on.
func OccupyingStatuses() []Status {
	return []Status{StatusScheduled, StatusRescheduled}
}
