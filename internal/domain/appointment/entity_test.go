//go:build unit

package appointment_test

import (
	"testing"
	"time"

	"tutorbook/internal/domain/appointment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduled(t *testing.T) *appointment.Appointment {
	t.Helper()
	start := time.Date(2026, time.February, 2, 8, 0, 0, 0, time.UTC)
	appt, err := appointment.NewAppointment(uuid.New(), uuid.New(), start, start.Add(time.Hour))
	require.NoError(t, err)
	return appt
}

func TestNewAppointment(t *testing.T) {
	t.Run("starts scheduled and occupying", func(t *testing.T) {
		appt := newScheduled(t)
		assert.Equal(t, appointment.StatusScheduled, appt.Status())
		assert.True(t, appt.IsOccupying())
	})

	t.Run("rejects inverted interval", func(t *testing.T) {
		start := time.Now()
		_, err := appointment.NewAppointment(uuid.New(), uuid.New(), start, start)
		assert.ErrorIs(t, err, appointment.ErrInvalidInterval)
	})
}

func TestAppointmentTransitions(t *testing.T) {
	t.Run("cancel frees the slot", func(t *testing.T) {
		appt := newScheduled(t)
		require.NoError(t, appt.Cancel())
		assert.Equal(t, appointment.StatusCanceled, appt.Status())
		assert.False(t, appt.IsOccupying())
	})

	t.Run("cancel after done fails", func(t *testing.T) {
		appt := newScheduled(t)
		require.NoError(t, appt.ConfirmDone())
		assert.ErrorIs(t, appt.Cancel(), appointment.ErrAlreadyFinalized)
	})

	t.Run("confirm done", func(t *testing.T) {
		appt := newScheduled(t)
		require.NoError(t, appt.ConfirmDone())
		assert.Equal(t, appointment.StatusDone, appt.Status())
		assert.ErrorIs(t, appt.ConfirmDone(), appointment.ErrAlreadyFinalized)
	})

	t.Run("no show", func(t *testing.T) {
		appt := newScheduled(t)
		require.NoError(t, appt.MarkNoShow())
		assert.Equal(t, appointment.StatusNoShow, appt.Status())
		assert.False(t, appt.IsOccupying())
	})

	t.Run("reschedule moves the interval and keeps occupying", func(t *testing.T) {
		appt := newScheduled(t)
		newStart := appt.StartAt().Add(7 * 24 * time.Hour)

		require.NoError(t, appt.Reschedule(newStart, newStart.Add(time.Hour)))
		assert.Equal(t, appointment.StatusRescheduled, appt.Status())
		assert.True(t, appt.StartAt().Equal(newStart))
		assert.True(t, appt.IsOccupying())

		// A rescheduled appointment may be rescheduled again.
		again := newStart.Add(7 * 24 * time.Hour)
		require.NoError(t, appt.Reschedule(again, again.Add(time.Hour)))
	})

	t.Run("canceled appointment cannot be rescheduled", func(t *testing.T) {
		appt := newScheduled(t)
		require.NoError(t, appt.Cancel())
		err := appt.Reschedule(appt.StartAt(), appt.EndAt())
		assert.ErrorIs(t, err, appointment.ErrNotReschedulable)
	})

	t.Run("reschedule rejects inverted interval", func(t *testing.T) {
		appt := newScheduled(t)
		err := appt.Reschedule(appt.EndAt(), appt.StartAt())
		assert.ErrorIs(t, err, appointment.ErrInvalidInterval)
	})
}

func TestSetTeacherNotes(t *testing.T) {
	appt := newScheduled(t)

	require.NoError(t, appt.SetTeacherNotes("covered unit 3, assign exercises 1-10"))
	require.NotNil(t, appt.TeacherNotes())
	assert.Equal(t, "covered unit 3, assign exercises 1-10", *appt.TeacherNotes())

	assert.ErrorIs(t, appt.SetTeacherNotes(""), appointment.ErrEmptyTeacherNotes)
}
