package schedule

import (
	"errors"
	"time"
)

var ErrUnknownTimeZone = errors.New("unknown business timezone")

// LocalParts is an instant projected onto the business timezone's
// wall clock. Weekday is Sunday-based (0-6) to match the template's
// day-of-week encoding.
type LocalParts struct {
	Year        int
	Month       time.Month
	Day         int
	Weekday     int
	MinuteOfDay int
}

// Calendar projects between absolute instants and the wall clock of
// the single fixed business timezone. It carries no other state and
// all of its methods are pure.
type Calendar struct {
	loc *time.Location
}

func NewCalendar(tz string) (Calendar, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Calendar{}, ErrUnknownTimeZone
	}
	return Calendar{loc: loc}, nil
}

func (c Calendar) Location() *time.Location {
	return c.loc
}

func (c Calendar) LocalParts(t time.Time) LocalParts {
	lt := t.In(c.loc)
	return LocalParts{
		Year:        lt.Year(),
		Month:       lt.Month(),
		Day:         lt.Day(),
		Weekday:     int(lt.Weekday()),
		MinuteOfDay: lt.Hour()*60 + lt.Minute(),
	}
}

// Instant resolves a business-timezone wall-clock date and minute of
// day to an absolute instant. The wall-clock values are first read as
// UTC to get a provisional instant, then the timezone's offset at that
// provisional instant is applied. The offset is a function of the
// result rather than the input, so a single naive subtraction would be
// wrong around DST transitions; one re-lookup is enough because offsets
// are stable within the error the first pass introduces. Exactly at a
// DST gap or overlap the resolved instant follows the offset in effect
// at the provisional reading.
func (c Calendar) Instant(year int, month time.Month, day, minuteOfDay int) time.Time {
	provisional := time.Date(year, month, day, 0, minuteOfDay, 0, 0, time.UTC)
	_, offset := provisional.In(c.loc).Zone()
	return provisional.Add(-time.Duration(offset) * time.Second)
}

// InstantFromParts is Instant for a previously projected LocalParts value.
func (c Calendar) InstantFromParts(p LocalParts) time.Time {
	return c.Instant(p.Year, p.Month, p.Day, p.MinuteOfDay)
}
