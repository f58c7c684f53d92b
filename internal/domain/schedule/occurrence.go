package schedule

import (
	"errors"
	"time"
)

const weekInterval = 7 * 24 * time.Hour

var (
	ErrPastSlot            = errors.New("slot must be in the future")
	ErrEmptyTemplate       = errors.New("availability template has no active slots")
	ErrSlotNotInTemplate   = errors.New("slot does not match the availability template")
	ErrInvalidSessionCount = errors.New("session count must be at least 1")
)

// Occurrence is one concrete, dated instantiation of a template slot.
// The interval is half-open: [StartAt, EndAt).
type Occurrence struct {
	StartAt time.Time
	EndAt   time.Time
}

func (o Occurrence) Interval() Interval {
	return Interval{StartAt: o.StartAt, EndAt: o.EndAt}
}

// GenerateOccurrences expands a first-session instant into the full
// ordered list of weekly-repeating session occurrences. Candidates
// advance on a fixed 7-day cadence in absolute time: UTC spacing is
// exact, and across a DST transition the local wall-clock minute
// shifts with the offset. Each candidate must exactly match a
// template slot, and each inherits that slot's duration. The admin's
// duration is authoritative; fallbackDuration only covers matched
// slots persisted with a zero duration.
func GenerateOccurrences(
	cal Calendar,
	tpl Template,
	firstSession time.Time,
	sessionCount int,
	now time.Time,
	fallbackDuration time.Duration,
) ([]Occurrence, error) {
	if sessionCount < 1 {
		return nil, ErrInvalidSessionCount
	}
	if !firstSession.After(now) {
		return nil, ErrPastSlot
	}
	if tpl.IsEmpty() {
		return nil, ErrEmptyTemplate
	}
	if fallbackDuration <= 0 {
		fallbackDuration = DefaultDurationMinutes * time.Minute
	}

	occurrences := make([]Occurrence, 0, sessionCount)
	for i := 0; i < sessionCount; i++ {
		start := firstSession.Add(time.Duration(i) * weekInterval)
		parts := cal.LocalParts(start)

		slot, ok := tpl.Match(parts.Weekday, parts.MinuteOfDay)
		if !ok {
			return nil, ErrSlotNotInTemplate
		}

		duration := time.Duration(slot.DurationMinutes()) * time.Minute
		if duration <= 0 {
			duration = fallbackDuration
		}

		occurrences = append(occurrences, Occurrence{
			StartAt: start,
			EndAt:   start.Add(duration),
		})
	}

	return occurrences, nil
}

// CoveringRange is the smallest interval containing every occurrence,
// used to bound the conflict query to a single range scan.
func CoveringRange(occurrences []Occurrence) Interval {
	if len(occurrences) == 0 {
		return Interval{}
	}
	return Interval{
		StartAt: occurrences[0].StartAt,
		EndAt:   occurrences[len(occurrences)-1].EndAt,
	}
}
