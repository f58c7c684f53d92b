package commands

import (
	"context"
	"log/slog"

	reqdto "tutorbook/internal/handler/dto/request"
	"tutorbook/internal/pkg/errs"
	"tutorbook/internal/usecase/shared"
)

var ErrInvalidTemplate = errs.New("invalid availability template")

// ScheduleCacheInvalidator drops the cached template snapshot after an
// admin rewrite so readers see the new schedule immediately.
type ScheduleCacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

type AvailabilityCommands interface {
	// ReplaceTemplate swaps the whole weekly template in one
	// transaction. The write is bulk replace, not incremental edit.
	ReplaceTemplate(ctx context.Context, req reqdto.ReplaceTemplateRequest) error
}

type availabilityCommandsImpl struct {
	uow   shared.UnitOfWork
	cache ScheduleCacheInvalidator
}

func NewAvailabilityCommands(uow shared.UnitOfWork, cache ScheduleCacheInvalidator) AvailabilityCommands {
	return &availabilityCommandsImpl{
		uow:   uow,
		cache: cache,
	}
}

func (c *availabilityCommandsImpl) ReplaceTemplate(ctx context.Context, req reqdto.ReplaceTemplateRequest) error {
	slots, err := req.ToDomain()
	if err != nil {
		return errs.Mark(err, ErrInvalidTemplate)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Schedule().ReplaceAll(ctx, slots); err != nil {
			return errs.Mark(err, ErrTransactionFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Cache staleness here only delays visibility, never correctness:
	// booking-time reads go to the database.
	if err := c.cache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate schedule cache", "error", err)
	}
	return nil
}
