package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"tutorbook/internal/domain/schedule"
	"tutorbook/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

const scheduleTemplateKey = "schedule:template:active"

type cachedSlot struct {
	DayOfWeek       int `json:"day_of_week"`
	StartMinute     int `json:"start_minute"`
	DurationMinutes int `json:"duration_minutes"`
}

// ScheduleCache serves the weekly template from redis and falls back to
// the underlying store on a miss or any redis failure. Reads never fail
// because of the cache.
type ScheduleCache struct {
	client *redis.Client
	inner  queries.ScheduleReadStore
	ttl    time.Duration
}

func NewScheduleCache(client *redis.Client, inner queries.ScheduleReadStore, ttl time.Duration) *ScheduleCache {
	return &ScheduleCache{client: client, inner: inner, ttl: ttl}
}

func (c *ScheduleCache) ActiveTemplate(ctx context.Context) (schedule.Template, error) {
	payload, err := c.client.Get(ctx, scheduleTemplateKey).Bytes()
	if err == nil {
		if tpl, ok := decodeTemplate(payload); ok {
			return tpl, nil
		}
		slog.Warn("discarding corrupt schedule template cache entry")
	} else if err != redis.Nil {
		slog.Warn("schedule template cache read failed", "error", err.Error())
	}

	tpl, err := c.inner.ActiveTemplate(ctx)
	if err != nil {
		return schedule.Template{}, err
	}

	if payload, err := encodeTemplate(tpl); err == nil {
		if err := c.client.Set(ctx, scheduleTemplateKey, payload, c.ttl).Err(); err != nil {
			slog.Warn("schedule template cache write failed", "error", err.Error())
		}
	}
	return tpl, nil
}

func (c *ScheduleCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, scheduleTemplateKey).Err()
}

func encodeTemplate(tpl schedule.Template) ([]byte, error) {
	slots := tpl.Slots()
	cached := make([]cachedSlot, len(slots))
	for i, slot := range slots {
		cached[i] = cachedSlot{
			DayOfWeek:       slot.DayOfWeek(),
			StartMinute:     slot.StartMinute(),
			DurationMinutes: slot.DurationMinutes(),
		}
	}
	return json.Marshal(cached)
}

func decodeTemplate(payload []byte) (schedule.Template, bool) {
	var cached []cachedSlot
	if err := json.Unmarshal(payload, &cached); err != nil {
		return schedule.Template{}, false
	}
	slots := make([]schedule.TemplateSlot, len(cached))
	for i, s := range cached {
		slots[i] = schedule.ReconstructTemplateSlot(s.DayOfWeek, s.StartMinute, s.DurationMinutes)
	}
	tpl, err := schedule.NewTemplate(slots)
	if err != nil {
		return schedule.Template{}, false
	}
	return tpl, true
}
