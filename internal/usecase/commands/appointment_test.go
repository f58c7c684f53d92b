//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"tutorbook/internal/domain/appointment"
	"tutorbook/internal/domain/schedule"
	"tutorbook/internal/domain/user"
	reqdto "tutorbook/internal/handler/dto/request"
	"tutorbook/internal/pkg/clock"
	"tutorbook/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentCommandFixture struct {
	uow      *fakeUoW
	commands commands.AppointmentCommands
	now      time.Time
	owner    uuid.UUID
	appt     *appointment.Appointment
}

func newAppointmentCommandFixture(t *testing.T, status appointment.Status) *appointmentCommandFixture {
	t.Helper()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	owner := uuid.New()

	// Mondays 09:00-10:00; the appointment under test sits on the
	// first Monday after "now".
	slot, err := schedule.NewTemplateSlot(1, 540, 60)
	require.NoError(t, err)

	startAt := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	appt := appointment.ReconstructAppointment(
		uuid.New(), uuid.New(), owner,
		startAt, startAt.Add(time.Hour),
		status, nil, now.Add(-time.Hour), now.Add(-time.Hour),
	)

	tx := &fakeTx{
		schedule:     &fakeScheduleRepo{slots: []schedule.TemplateSlot{slot}},
		appointments: &fakeAppointmentRepo{existing: appt},
		bookings:     &fakeBookingRepo{},
		coupons:      &fakeCouponRepo{},
		rules:        &fakeRuleRepo{},
		users:        &fakeUserRepo{},
	}
	uow := &fakeUoW{tx: tx}

	cal, err := schedule.NewCalendar("UTC")
	require.NoError(t, err)

	return &appointmentCommandFixture{
		uow:      uow,
		commands: commands.NewAppointmentCommands(uow, cal, clock.NewMockClock(now)),
		now:      now,
		owner:    owner,
		appt:     appt,
	}
}

func (f *appointmentCommandFixture) ownerActor() commands.Actor {
	return commands.Actor{UserID: f.owner, Role: user.RoleLearner}
}

func TestApplyAppointmentAction(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels a scheduled appointment", func(t *testing.T) {
		f := newAppointmentCommandFixture(t, appointment.StatusScheduled)

		view, err := f.commands.Apply(ctx, f.appt.ID(),
			reqdto.AppointmentActionRequest{Action: reqdto.ActionCancel}, f.ownerActor())
		require.NoError(t, err)
		assert.Equal(t, "CANCELED", view.Status)
		require.NotNil(t, f.uow.tx.appointments.updated)
	})

	t.Run("admin may act on someone else's appointment", func(t *testing.T) {
		f := newAppointmentCommandFixture(t, appointment.StatusScheduled)
		admin := commands.Actor{UserID: uuid.New(), Role: user.RoleAdmin}

		view, err := f.commands.Apply(ctx, f.appt.ID(),
			reqdto.AppointmentActionRequest{Action: reqdto.ActionConfirmDone}, admin)
		require.NoError(t, err)
		assert.Equal(t, "DONE", view.Status)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		f := newAppointmentCommandFixture(t, appointment.StatusScheduled)
		stranger := commands.Actor{UserID: uuid.New(), Role: user.RoleLearner}

		_, err := f.commands.Apply(ctx, f.appt.ID(),
			reqdto.AppointmentActionRequest{Action: reqdto.ActionCancel}, stranger)
		require.ErrorIs(t, err, commands.ErrAppointmentNotOwned)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		f := newAppointmentCommandFixture(t, appointment.StatusScheduled)

		_, err := f.commands.Apply(ctx, uuid.New(),
			reqdto.AppointmentActionRequest{Action: reqdto.ActionCancel}, f.ownerActor())
		require.ErrorIs(t, err, commands.ErrAppointmentNotFound)
	})

	t.Run("canceling a done appointment is an invalid transition", func(t *testing.T) {
		f := newAppointmentCommandFixture(t, appointment.StatusDone)

		_, err := f.commands.Apply(ctx, f.appt.ID(),
			reqdto.AppointmentActionRequest{Action: reqdto.ActionCancel}, f.ownerActor())
		require.ErrorIs(t, err, commands.ErrInvalidTransition)
		assert.Nil(t, f.uow.tx.appointments.updated)
	})

	t.Run("notes require non-blank content", func(t *testing.T) {
		f := newAppointmentCommandFixture(t, appointment.StatusScheduled)
		blank := "   "

		_, err := f.commands.Apply(ctx, f.appt.ID(),
			reqdto.AppointmentActionRequest{Action: reqdto.ActionAddNotes, Notes: &blank}, f.ownerActor())
		require.ErrorIs(t, err, commands.ErrInvalidNotes)
	})

	t.Run("notes are trimmed and stored", func(t *testing.T) {
		f := newAppointmentCommandFixture(t, appointment.StatusScheduled)
		notes := "  covered unit 3, assign exercises  "

		view, err := f.commands.Apply(ctx, f.appt.ID(),
			reqdto.AppointmentActionRequest{Action: reqdto.ActionAddNotes, Notes: &notes}, f.ownerActor())
		require.NoError(t, err)
		require.NotNil(t, view.TeacherNotes)
		assert.Equal(t, "covered unit 3, assign exercises", *view.TeacherNotes)
	})

	t.Run("reschedule without a new start time", func(t *testing.T) {
		f := newAppointmentCommandFixture(t, appointment.StatusScheduled)

		_, err := f.commands.Apply(ctx, f.appt.ID(),
			reqdto.AppointmentActionRequest{Action: reqdto.ActionReschedule}, f.ownerActor())
		require.ErrorIs(t, err, commands.ErrMissingReschedule)
	})

	t.Run("reschedule moves to a free template slot", func(t *testing.T) {
		f := newAppointmentCommandFixture(t, appointment.StatusScheduled)
		newStart := f.appt.StartAt().Add(7 * 24 * time.Hour)

		view, err := f.commands.Apply(ctx, f.appt.ID(),
			reqdto.AppointmentActionRequest{Action: reqdto.ActionReschedule, NewStartAt: &newStart}, f.ownerActor())
		require.NoError(t, err)
		assert.Equal(t, "RESCHEDULED", view.Status)
		assert.Equal(t, newStart, view.StartAt)
	})

	t.Run("reschedule ignores the appointment's own current slot", func(t *testing.T) {
		f := newAppointmentCommandFixture(t, appointment.StatusScheduled)

		// The busy set contains the appointment itself; moving it onto
		// its own instant must not self-conflict.
		f.uow.tx.appointments.busy = []busyEntry{
			{id: f.appt.ID(), interval: schedule.Interval{StartAt: f.appt.StartAt(), EndAt: f.appt.EndAt()}},
		}
		newStart := f.appt.StartAt()

		_, err := f.commands.Apply(ctx, f.appt.ID(),
			reqdto.AppointmentActionRequest{Action: reqdto.ActionReschedule, NewStartAt: &newStart}, f.ownerActor())
		require.NoError(t, err)
	})

	t.Run("reschedule onto an occupied slot conflicts", func(t *testing.T) {
		f := newAppointmentCommandFixture(t, appointment.StatusScheduled)
		newStart := f.appt.StartAt().Add(7 * 24 * time.Hour)

		f.uow.tx.appointments.busy = []busyEntry{
			{id: uuid.New(), interval: schedule.Interval{StartAt: newStart, EndAt: newStart.Add(time.Hour)}},
		}

		_, err := f.commands.Apply(ctx, f.appt.ID(),
			reqdto.AppointmentActionRequest{Action: reqdto.ActionReschedule, NewStartAt: &newStart}, f.ownerActor())
		require.ErrorIs(t, err, commands.ErrSlotConflict)
	})

	t.Run("reschedule off the template is rejected", func(t *testing.T) {
		f := newAppointmentCommandFixture(t, appointment.StatusScheduled)
		// Tuesday instead of Monday
		newStart := time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC)

		_, err := f.commands.Apply(ctx, f.appt.ID(),
			reqdto.AppointmentActionRequest{Action: reqdto.ActionReschedule, NewStartAt: &newStart}, f.ownerActor())
		require.ErrorIs(t, err, commands.ErrSlotNotInTemplate)
	})
}
