package queries

import (
	"context"
	"time"

	"tutorbook/internal/domain/schedule"
	"tutorbook/internal/pkg/clock"
	"tutorbook/internal/pkg/config"
	"tutorbook/internal/pkg/errs"
)

var ErrScheduleUnavailable = errs.New("failed to load availability schedule")

// ScheduleReadStore supplies the active template snapshot. The
// production implementation is redis-cached over postgres.
type ScheduleReadStore interface {
	ActiveTemplate(ctx context.Context) (schedule.Template, error)
}

// AppointmentViewRepo reads occupying appointment intervals for the
// feed's conflict filtering.
type AppointmentViewRepo interface {
	OccupyingWithin(ctx context.Context, start, end time.Time) ([]schedule.Interval, error)
}

type AvailabilityQueries interface {
	// List returns every bookable slot from now through the requested
	// number of weeks, already filtered against committed appointments.
	List(ctx context.Context, weeks int) ([]SlotView, error)
	// Template returns the raw weekly template for the admin screen.
	Template(ctx context.Context) ([]TemplateSlotView, error)
}

type availabilityQueriesImpl struct {
	schedule     ScheduleReadStore
	appointments AppointmentViewRepo
	calendar     schedule.Calendar
	clock        clock.Clock
	cfg          config.ScheduleConfig
}

func NewAvailabilityQueries(
	scheduleStore ScheduleReadStore,
	appointments AppointmentViewRepo,
	calendar schedule.Calendar,
	clk clock.Clock,
	cfg config.ScheduleConfig,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		schedule:     scheduleStore,
		appointments: appointments,
		calendar:     calendar,
		clock:        clk,
		cfg:          cfg,
	}
}

func (q *availabilityQueriesImpl) List(ctx context.Context, weeks int) ([]SlotView, error) {
	weeks = schedule.ClampFeedWeeks(weeks, q.cfg.DefaultFeedWeeks, q.cfg.MaxFeedWeeks)
	now := q.clock.Now()
	horizon := now.Add(time.Duration(weeks) * 7 * 24 * time.Hour)

	tpl, err := q.schedule.ActiveTemplate(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrScheduleUnavailable)
	}
	if tpl.IsEmpty() {
		return []SlotView{}, nil
	}

	// A slot starting just inside the horizon can extend up to the
	// maximum duration past it, so busy reads must cover that tail or
	// the feed would advertise a slot the booking path rejects.
	busyHorizon := horizon.Add(schedule.MaxSlotDurationMinutes * time.Minute)
	busy, err := q.appointments.OccupyingWithin(ctx, now, busyHorizon)
	if err != nil {
		return nil, errs.Mark(err, ErrScheduleUnavailable)
	}

	feed := schedule.BuildFeed(q.calendar, tpl, now, weeks, busy, schedule.DefaultDurationMinutes*time.Minute)

	views := make([]SlotView, len(feed))
	for i, occ := range feed {
		views[i] = SlotView{StartAt: occ.StartAt, EndAt: occ.EndAt}
	}
	return views, nil
}

func (q *availabilityQueriesImpl) Template(ctx context.Context) ([]TemplateSlotView, error) {
	tpl, err := q.schedule.ActiveTemplate(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrScheduleUnavailable)
	}

	slots := tpl.Slots()
	views := make([]TemplateSlotView, len(slots))
	for i, slot := range slots {
		views[i] = TemplateSlotView{
			DayOfWeek:       slot.DayOfWeek(),
			StartMinute:     slot.StartMinute(),
			DurationMinutes: slot.DurationMinutes(),
		}
	}
	return views, nil
}
