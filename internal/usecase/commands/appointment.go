package commands

import (
	"context"
	"time"

	"tutorbook/internal/domain/appointment"
	"tutorbook/internal/domain/schedule"
	"tutorbook/internal/domain/user"
	reqdto "tutorbook/internal/handler/dto/request"
	"tutorbook/internal/infra"
	"tutorbook/internal/pkg/clock"
	"tutorbook/internal/pkg/errs"
	"tutorbook/internal/usecase/queries"
	"tutorbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound = errs.New("appointment not found")
	ErrAppointmentNotOwned = errs.New("appointment not owned by user")
	ErrInvalidTransition   = errs.New("invalid appointment state transition")
	ErrMissingReschedule   = errs.New("reschedule requires a new start time")
	ErrInvalidNotes        = errs.New("invalid appointment notes")
)

// Actor identifies who is performing an appointment action. Learners
// may only act on their own appointments; admins on any.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

func (a Actor) mayActOn(appt *appointment.Appointment) bool {
	return a.Role == user.RoleAdmin || appt.UserID() == a.UserID
}

type AppointmentCommands interface {
	Apply(ctx context.Context, id uuid.UUID, req reqdto.AppointmentActionRequest, actor Actor) (*queries.AppointmentView, error)
}

type appointmentCommandsImpl struct {
	uow      shared.UnitOfWork
	calendar schedule.Calendar
	clock    clock.Clock
}

func NewAppointmentCommands(uow shared.UnitOfWork, calendar schedule.Calendar, clk clock.Clock) AppointmentCommands {
	return &appointmentCommandsImpl{
		uow:      uow,
		calendar: calendar,
		clock:    clk,
	}
}

// Apply executes one appointment action. Rescheduling revalidates the
// new instant against the template and the busy set with this
// appointment excluded, in the same serializable transaction as the
// update, so a reschedule can never land on an occupied slot.
func (c *appointmentCommandsImpl) Apply(
	ctx context.Context,
	id uuid.UUID,
	req reqdto.AppointmentActionRequest,
	actor Actor,
) (*queries.AppointmentView, error) {
	var view *queries.AppointmentView
	err := c.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, err := tx.Appointments().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrAppointmentNotFound
			}
			return errs.Mark(err, ErrTransactionFailed)
		}
		if !actor.mayActOn(appt) {
			return ErrAppointmentNotOwned
		}

		if err := c.applyAction(ctx, tx, appt, req); err != nil {
			return err
		}

		if err := tx.Appointments().Update(ctx, appt); err != nil {
			return errs.Mark(err, ErrTransactionFailed)
		}

		view = appointmentToView(appt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (c *appointmentCommandsImpl) applyAction(
	ctx context.Context,
	tx shared.Tx,
	appt *appointment.Appointment,
	req reqdto.AppointmentActionRequest,
) error {
	switch req.Action {
	case reqdto.ActionCancel:
		if err := appt.Cancel(); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
	case reqdto.ActionConfirmDone:
		if err := appt.ConfirmDone(); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
	case reqdto.ActionNoShow:
		if err := appt.MarkNoShow(); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
	case reqdto.ActionAddNotes:
		notes := req.GetNotes()
		if notes == nil {
			return ErrInvalidNotes
		}
		if err := appt.SetTeacherNotes(*notes); err != nil {
			return errs.Mark(err, ErrInvalidNotes)
		}
	case reqdto.ActionReschedule:
		if req.NewStartAt == nil {
			return ErrMissingReschedule
		}
		return c.reschedule(ctx, tx, appt, *req.NewStartAt)
	default:
		return ErrInvalidTransition
	}
	return nil
}

func (c *appointmentCommandsImpl) reschedule(
	ctx context.Context,
	tx shared.Tx,
	appt *appointment.Appointment,
	newStartAt time.Time,
) error {
	tpl, err := loadTemplate(ctx, tx)
	if err != nil {
		return err
	}

	occurrences, err := schedule.GenerateOccurrences(c.calendar, tpl, newStartAt, 1, c.clock.Now(), 0)
	if err != nil {
		return markScheduleErr(err)
	}
	occ := occurrences[0]

	ignoreID := appt.ID()
	busy, err := tx.Appointments().FindOccupyingWithin(ctx, occ.StartAt, occ.EndAt, &ignoreID)
	if err != nil {
		return errs.Mark(err, ErrTransactionFailed)
	}
	if _, conflict := schedule.FindConflict(occurrences, busy); conflict {
		return ErrSlotConflict
	}

	if err := appt.Reschedule(occ.StartAt, occ.EndAt); err != nil {
		return errs.Mark(err, ErrInvalidTransition)
	}
	return nil
}

func appointmentToView(appt *appointment.Appointment) *queries.AppointmentView {
	return &queries.AppointmentView{
		ID:           appt.ID(),
		BookingID:    appt.BookingID(),
		UserID:       appt.UserID(),
		StartAt:      appt.StartAt(),
		EndAt:        appt.EndAt(),
		Status:       appt.Status().String(),
		TeacherNotes: appt.TeacherNotes(),
		CreatedAt:    appt.CreatedAt(),
		UpdatedAt:    appt.UpdatedAt(),
	}
}
