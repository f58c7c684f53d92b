//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"tutorbook/internal/domain/schedule"
	"tutorbook/internal/pkg/clock"
	"tutorbook/internal/pkg/config"
	"tutorbook/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduleStore struct {
	tpl schedule.Template
	err error
}

func (f *fakeScheduleStore) ActiveTemplate(ctx context.Context) (schedule.Template, error) {
	return f.tpl, f.err
}

// fakeOccupancyRepo mirrors the readstore's SQL predicate
// (start_at < $2 AND end_at > $1) so window bugs surface here too.
type fakeOccupancyRepo struct {
	appointments []schedule.Interval
	lastStart    time.Time
	lastEnd      time.Time
}

func (f *fakeOccupancyRepo) OccupyingWithin(ctx context.Context, start, end time.Time) ([]schedule.Interval, error) {
	f.lastStart, f.lastEnd = start, end
	var out []schedule.Interval
	for _, a := range f.appointments {
		if a.StartAt.Before(end) && a.EndAt.After(start) {
			out = append(out, a)
		}
	}
	return out, nil
}

func TestAvailabilityList(t *testing.T) {
	cal, err := schedule.NewCalendar("UTC")
	require.NoError(t, err)
	cfg := config.ScheduleConfig{BusinessTimeZone: "UTC", MaxFeedWeeks: 12, DefaultFeedWeeks: 6}

	mustTemplate := func(slots ...schedule.TemplateSlot) schedule.Template {
		tpl, err := schedule.NewTemplate(slots)
		require.NoError(t, err)
		return tpl
	}
	mustSlot := func(day, start, dur int) schedule.TemplateSlot {
		slot, err := schedule.NewTemplateSlot(day, start, dur)
		require.NoError(t, err)
		return slot
	}

	// Monday 2026-01-05 00:00 UTC.
	now := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	t.Run("lists open occurrences", func(t *testing.T) {
		store := &fakeScheduleStore{tpl: mustTemplate(mustSlot(1, 9*60, 60))}
		q := queries.NewAvailabilityQueries(store, &fakeOccupancyRepo{}, cal, clock.NewMockClock(now), cfg)

		views, err := q.List(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, views, 1)
		// Now is Monday 00:00, so that same Monday's slot is still open.
		want := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
		assert.True(t, views[0].StartAt.Equal(want), "got %v", views[0].StartAt)
		assert.Equal(t, time.Hour, views[0].EndAt.Sub(views[0].StartAt))
	})

	t.Run("slot straddling the horizon is checked against appointments past it", func(t *testing.T) {
		// Sunday 23:30 + 180min ends 02:30 the following Monday, past
		// the one-week horizon at Monday 00:00.
		store := &fakeScheduleStore{tpl: mustTemplate(mustSlot(0, 23*60+30, 180))}
		repo := &fakeOccupancyRepo{appointments: []schedule.Interval{{
			StartAt: time.Date(2026, time.January, 12, 0, 30, 0, 0, time.UTC),
			EndAt:   time.Date(2026, time.January, 12, 1, 30, 0, 0, time.UTC),
		}}}
		q := queries.NewAvailabilityQueries(store, repo, cal, clock.NewMockClock(now), cfg)

		views, err := q.List(context.Background(), 1)
		require.NoError(t, err)
		assert.Empty(t, views, "occurrence overlapping a committed appointment must not be advertised")

		// The busy read covers the longest slot tail past the horizon.
		horizon := now.Add(7 * 24 * time.Hour)
		assert.True(t, repo.lastEnd.Equal(horizon.Add(schedule.MaxSlotDurationMinutes*time.Minute)),
			"busy window ends at %v", repo.lastEnd)
	})

	t.Run("straddling slot stays advertised when nothing overlaps", func(t *testing.T) {
		store := &fakeScheduleStore{tpl: mustTemplate(mustSlot(0, 23*60+30, 180))}
		q := queries.NewAvailabilityQueries(store, &fakeOccupancyRepo{}, cal, clock.NewMockClock(now), cfg)

		views, err := q.List(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, views, 1)
		want := time.Date(2026, time.January, 11, 23, 30, 0, 0, time.UTC)
		assert.True(t, views[0].StartAt.Equal(want), "got %v", views[0].StartAt)
	})

	t.Run("empty template yields empty list", func(t *testing.T) {
		store := &fakeScheduleStore{tpl: schedule.Template{}}
		q := queries.NewAvailabilityQueries(store, &fakeOccupancyRepo{}, cal, clock.NewMockClock(now), cfg)

		views, err := q.List(context.Background(), 1)
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}
