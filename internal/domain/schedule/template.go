package schedule

import "errors"

const (
	MinutesPerDay          = 24 * 60
	MaxSlotDurationMinutes = 180
	DefaultDurationMinutes = 60
)

var (
	ErrInvalidDayOfWeek   = errors.New("day of week must be between 0 and 6")
	ErrInvalidStartMinute = errors.New("start minute must be between 0 and 1439")
	ErrInvalidDuration    = errors.New("duration must be between 1 and 180 minutes")
	ErrDuplicateSlot      = errors.New("duplicate template slot for day and start minute")
)

// TemplateSlot is one recurring weekly opening: a weekday and start
// minute in the business timezone plus a session duration.
type TemplateSlot struct {
	dayOfWeek       int
	startMinute     int
	durationMinutes int
}

// NewTemplateSlot validates admin-supplied slot parameters. A zero
// duration defaults to DefaultDurationMinutes, matching the bulk
// replace semantics of the admin write path.
func NewTemplateSlot(dayOfWeek, startMinute, durationMinutes int) (TemplateSlot, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return TemplateSlot{}, ErrInvalidDayOfWeek
	}
	if startMinute < 0 || startMinute >= MinutesPerDay {
		return TemplateSlot{}, ErrInvalidStartMinute
	}
	if durationMinutes == 0 {
		durationMinutes = DefaultDurationMinutes
	}
	if durationMinutes < 0 || durationMinutes > MaxSlotDurationMinutes {
		return TemplateSlot{}, ErrInvalidDuration
	}
	return TemplateSlot{
		dayOfWeek:       dayOfWeek,
		startMinute:     startMinute,
		durationMinutes: durationMinutes,
	}, nil
}

// ReconstructTemplateSlot rebuilds a slot from storage without
// validation. Persisted rows may carry a zero duration from older
// template versions; the occurrence generator falls back to a caller
// default in that case.
func ReconstructTemplateSlot(dayOfWeek, startMinute, durationMinutes int) TemplateSlot {
	return TemplateSlot{
		dayOfWeek:       dayOfWeek,
		startMinute:     startMinute,
		durationMinutes: durationMinutes,
	}
}

func (s TemplateSlot) DayOfWeek() int       { return s.dayOfWeek }
func (s TemplateSlot) StartMinute() int     { return s.startMinute }
func (s TemplateSlot) DurationMinutes() int { return s.durationMinutes }

type slotKey struct {
	dayOfWeek   int
	startMinute int
}

// Template is the immutable snapshot of all active recurring openings
// read for one request.
type Template struct {
	slots []TemplateSlot
	index map[slotKey]TemplateSlot
}

func NewTemplate(slots []TemplateSlot) (Template, error) {
	index := make(map[slotKey]TemplateSlot, len(slots))
	for _, slot := range slots {
		key := slotKey{dayOfWeek: slot.dayOfWeek, startMinute: slot.startMinute}
		if _, exists := index[key]; exists {
			return Template{}, ErrDuplicateSlot
		}
		index[key] = slot
	}
	return Template{slots: slots, index: index}, nil
}

func (t Template) IsEmpty() bool {
	return len(t.slots) == 0
}

func (t Template) Slots() []TemplateSlot {
	return t.slots
}

// Match finds the slot whose weekday and start minute exactly equal
// the candidate's. There is no tolerance window: a request one minute
// off the template is not a template slot.
func (t Template) Match(dayOfWeek, minuteOfDay int) (TemplateSlot, bool) {
	slot, ok := t.index[slotKey{dayOfWeek: dayOfWeek, startMinute: minuteOfDay}]
	return slot, ok
}

// SlotsForDay returns the slots opening on the given weekday, in
// template order.
func (t Template) SlotsForDay(dayOfWeek int) []TemplateSlot {
	var daySlots []TemplateSlot
	for _, slot := range t.slots {
		if slot.dayOfWeek == dayOfWeek {
			daySlots = append(daySlots, slot)
		}
	}
	return daySlots
}
