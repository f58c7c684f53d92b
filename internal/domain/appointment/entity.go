package appointment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInterval     = errors.New("appointment end must be after start")
	ErrNotReschedulable    = errors.New("appointment can no longer be rescheduled")
	ErrAlreadyFinalized    = errors.New("appointment is already finalized")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrEmptyTeacherNotes   = errors.New("notes cannot be empty")
	ErrTeacherNotesTooLong = errors.New("notes exceed maximum length")
)

const maxTeacherNotesLength = 2000

// Appointment is one committed session occupying [startAt, endAt).
type Appointment struct {
	id           uuid.UUID
	bookingID    uuid.UUID
	userID       uuid.UUID
	startAt      time.Time
	endAt        time.Time
	status       Status
	teacherNotes *string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewAppointment(bookingID, userID uuid.UUID, startAt, endAt time.Time) (*Appointment, error) {
	if !endAt.After(startAt) {
		return nil, ErrInvalidInterval
	}
	return &Appointment{
		id:        uuid.New(),
		bookingID: bookingID,
		userID:    userID,
		startAt:   startAt,
		endAt:     endAt,
		status:    StatusScheduled,
	}, nil
}

func ReconstructAppointment(
	id, bookingID, userID uuid.UUID,
	startAt, endAt time.Time,
	status Status,
	teacherNotes *string,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:           id,
		bookingID:    bookingID,
		userID:       userID,
		startAt:      startAt,
		endAt:        endAt,
		status:       status,
		teacherNotes: teacherNotes,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (a *Appointment) ID() uuid.UUID         { return a.id }
func (a *Appointment) BookingID() uuid.UUID  { return a.bookingID }
func (a *Appointment) UserID() uuid.UUID     { return a.userID }
func (a *Appointment) StartAt() time.Time    { return a.startAt }
func (a *Appointment) EndAt() time.Time      { return a.endAt }
func (a *Appointment) Status() Status        { return a.status }
func (a *Appointment) TeacherNotes() *string { return a.teacherNotes }
func (a *Appointment) CreatedAt() time.Time  { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time  { return a.updatedAt }

func (a *Appointment) IsOccupying() bool {
	return a.status.IsOccupying()
}

// Cancel frees the slot. Done and no-show appointments are history and
// cannot be canceled.
func (a *Appointment) Cancel() error {
	if a.status == StatusDone || a.status == StatusNoShow {
		return ErrAlreadyFinalized
	}
	a.status = StatusCanceled
	return nil
}

// ConfirmDone marks the session as delivered.
func (a *Appointment) ConfirmDone() error {
	if !a.status.IsOccupying() {
		return ErrAlreadyFinalized
	}
	a.status = StatusDone
	return nil
}

// MarkNoShow records that the learner did not attend.
func (a *Appointment) MarkNoShow() error {
	if !a.status.IsOccupying() {
		return ErrAlreadyFinalized
	}
	a.status = StatusNoShow
	return nil
}

// Reschedule moves the appointment to a new validated interval. The
// caller must have re-run conflict validation with this appointment
// excluded from the busy set.
func (a *Appointment) Reschedule(startAt, endAt time.Time) error {
	if !a.status.IsOccupying() {
		return ErrNotReschedulable
	}
	if !endAt.After(startAt) {
		return ErrInvalidInterval
	}
	a.startAt = startAt
	a.endAt = endAt
	a.status = StatusRescheduled
	return nil
}

// SetTeacherNotes attaches or replaces the tutor's session notes.
func (a *Appointment) SetTeacherNotes(notes string) error {
	if notes == "" {
		return ErrEmptyTeacherNotes
	}
	if len(notes) > maxTeacherNotesLength {
		return ErrTeacherNotesTooLong
	}
	a.teacherNotes = &notes
	return nil
}
