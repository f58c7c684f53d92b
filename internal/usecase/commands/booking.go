package commands

import (
	"context"
	"errors"
	"time"

	"tutorbook/internal/domain/appointment"
	"tutorbook/internal/domain/booking"
	"tutorbook/internal/domain/pricing"
	"tutorbook/internal/domain/schedule"
	reqdto "tutorbook/internal/handler/dto/request"
	"tutorbook/internal/infra"
	"tutorbook/internal/pkg/clock"
	"tutorbook/internal/pkg/errs"
	"tutorbook/internal/usecase/queries"
	"tutorbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPastSlot             = errs.New("first session must be in the future")
	ErrScheduleUnconfigured = errs.New("availability schedule is not configured")
	ErrSlotNotInTemplate    = errs.New("slot does not match the availability template")
	ErrSlotConflict         = errs.New("slot conflicts with an existing appointment")
	ErrInvalidSessionCount  = errs.New("invalid session count")
	ErrCouponNotFound       = errs.New("coupon not found")
	ErrCouponInvalid        = errs.New("coupon is not usable")
	ErrCouponExhausted      = errs.New("coupon redemption limit reached")
	ErrDomainValidation     = errs.New("domain validation error")
	ErrTransactionFailed    = errs.New("transaction failed")
)

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	calendar       schedule.Calendar
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	calendar schedule.Calendar,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		calendar:       calendar,
		clock:          clk,
	}
}

// CreateBooking validates the requested weekly series, prices it, and
// commits the booking with its appointments in one serializable
// transaction. The conflict check and the inserts share the
// transaction, so two concurrent requests for the same instants
// cannot both commit; the loser retries and then fails the conflict
// check. The coupon's redemption counter moves only when the coupon
// was the applied discount source.
func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID uuid.UUID,
) (*queries.BookingView, error) {
	now := c.clock.Now()

	var bookingID uuid.UUID
	err := c.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		tpl, err := loadTemplate(ctx, tx)
		if err != nil {
			return err
		}

		occurrences, err := schedule.GenerateOccurrences(
			c.calendar, tpl, req.FirstSessionAt, req.SessionsTotal, now, 0,
		)
		if err != nil {
			return markScheduleErr(err)
		}

		quote, err := c.buildQuote(ctx, tx, req, now)
		if err != nil {
			return err
		}

		covering := schedule.CoveringRange(occurrences)
		busy, err := tx.Appointments().FindOccupyingWithin(ctx, covering.StartAt, covering.EndAt, nil)
		if err != nil {
			return errs.Mark(err, ErrTransactionFailed)
		}
		if _, conflict := schedule.FindConflict(occurrences, busy); conflict {
			return ErrSlotConflict
		}

		b, err := booking.NewBooking(userID, req.CourseID, quote, req.GetNotes())
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		bookingID, err = tx.Bookings().Create(ctx, b)
		if err != nil {
			return errs.Mark(err, ErrTransactionFailed)
		}

		appointments := make([]*appointment.Appointment, 0, len(occurrences))
		for _, occ := range occurrences {
			appt, err := appointment.NewAppointment(bookingID, userID, occ.StartAt, occ.EndAt)
			if err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
			appointments = append(appointments, appt)
		}
		if err := tx.Appointments().CreateBatch(ctx, appointments); err != nil {
			return errs.Mark(err, ErrTransactionFailed)
		}

		if b.UsedCoupon() {
			if err := tx.Coupons().IncrementRedemption(ctx, *b.CouponID()); err != nil {
				return errs.Mark(err, ErrTransactionFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.bookingQueries.GetByIDSystem(ctx, bookingID)
}

func (c *bookingCommandsImpl) buildQuote(
	ctx context.Context,
	tx shared.Tx,
	req reqdto.CreateBookingRequest,
	now time.Time,
) (pricing.Quote, error) {
	rules, err := tx.Rules().ActiveForCourse(ctx, &req.CourseID)
	if err != nil {
		return pricing.Quote{}, errs.Mark(err, ErrTransactionFailed)
	}

	var coupon *pricing.Coupon
	if code := req.GetCouponCode(); code != nil {
		coupon, err = tx.Coupons().FindByCode(ctx, *code)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return pricing.Quote{}, ErrCouponNotFound
			}
			return pricing.Quote{}, errs.Mark(err, ErrTransactionFailed)
		}
		if usageErr := coupon.ValidateUsage(now); usageErr != nil {
			if errors.Is(usageErr, pricing.ErrCouponExhausted) {
				return pricing.Quote{}, errs.Mark(usageErr, ErrCouponExhausted)
			}
			return pricing.Quote{}, errs.Mark(usageErr, ErrCouponInvalid)
		}
	}

	quote, err := pricing.ComputeQuote(
		req.SessionsTotal, req.PricePerSession, &req.CourseID, rules, coupon, now,
	)
	if err != nil {
		return pricing.Quote{}, errs.Mark(err, ErrDomainValidation)
	}
	return quote, nil
}

func loadTemplate(ctx context.Context, tx shared.Tx) (schedule.Template, error) {
	slots, err := tx.Schedule().ActiveSlots(ctx)
	if err != nil {
		return schedule.Template{}, errs.Mark(err, ErrTransactionFailed)
	}
	tpl, err := schedule.NewTemplate(slots)
	if err != nil {
		return schedule.Template{}, errs.Mark(err, ErrDomainValidation)
	}
	return tpl, nil
}

func markScheduleErr(err error) error {
	switch {
	case errors.Is(err, schedule.ErrPastSlot):
		return errs.Mark(err, ErrPastSlot)
	case errors.Is(err, schedule.ErrEmptyTemplate):
		return errs.Mark(err, ErrScheduleUnconfigured)
	case errors.Is(err, schedule.ErrSlotNotInTemplate):
		return errs.Mark(err, ErrSlotNotInTemplate)
	case errors.Is(err, schedule.ErrInvalidSessionCount):
		return errs.Mark(err, ErrInvalidSessionCount)
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}
