package schedule

import (
	"sort"
	"time"
)

const (
	MaxFeedWeeks     = 12
	DefaultFeedWeeks = 6
)

// ClampFeedWeeks normalizes a caller-supplied horizon. Zero or
// negative falls back to the default; anything beyond the cap is
// truncated rather than rejected. Non-positive bounds fall back to
// the package defaults.
func ClampFeedWeeks(weeks, defaultWeeks, maxWeeks int) int {
	if defaultWeeks <= 0 {
		defaultWeeks = DefaultFeedWeeks
	}
	if maxWeeks <= 0 {
		maxWeeks = MaxFeedWeeks
	}
	if weeks <= 0 {
		return defaultWeeks
	}
	if weeks > maxWeeks {
		return maxWeeks
	}
	return weeks
}

// BuildFeed materializes every open slot between now and the horizon.
// It walks the business calendar one local date at a time and
// instantiates each date's template slots, so every local day is
// visited exactly once regardless of DST transitions. A slot is open
// when its start is strictly in the future and its interval overlaps
// no busy appointment.
func BuildFeed(
	cal Calendar,
	tpl Template,
	now time.Time,
	weeks int,
	busy []Interval,
	fallbackDuration time.Duration,
) []Occurrence {
	if fallbackDuration <= 0 {
		fallbackDuration = DefaultDurationMinutes * time.Minute
	}

	if weeks <= 0 {
		weeks = DefaultFeedWeeks
	}
	horizon := now.Add(time.Duration(weeks) * weekInterval)

	feed := make([]Occurrence, 0, 64)
	base := cal.LocalParts(now)

	for offset := 0; ; offset++ {
		// Instant normalizes the overflowed day the way time.Date does.
		dayStart := cal.Instant(base.Year, base.Month, base.Day+offset, 0)
		if !dayStart.Before(horizon) {
			break
		}
		parts := cal.LocalParts(dayStart)
		for _, slot := range tpl.SlotsForDay(parts.Weekday) {
			start := cal.Instant(parts.Year, parts.Month, parts.Day, slot.StartMinute())
			if !start.After(now) || !start.Before(horizon) {
				continue
			}

			duration := time.Duration(slot.DurationMinutes()) * time.Minute
			if duration <= 0 {
				duration = fallbackDuration
			}
			occ := Occurrence{StartAt: start, EndAt: start.Add(duration)}

			taken := false
			for _, b := range busy {
				if occ.Interval().Overlaps(b) {
					taken = true
					break
				}
			}
			if taken {
				continue
			}

			feed = append(feed, occ)
		}
	}

	sort.Slice(feed, func(i, j int) bool {
		return feed[i].StartAt.Before(feed[j].StartAt)
	})
	return feed
}
