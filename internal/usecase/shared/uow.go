package shared

import (
	"context"
	"time"

	"tutorbook/internal/domain/appointment"
	"tutorbook/internal/domain/booking"
	"tutorbook/internal/domain/pricing"
	"tutorbook/internal/domain/schedule"
	"tutorbook/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Read-committed transaction with retry for ordinary writes
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinSerializable: Serializable transaction with retry for the
	// check-then-insert booking path, where read-committed would race
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Schedule() ScheduleRepository
	Appointments() AppointmentRepository
	Bookings() BookingRepository
	Coupons() CouponRepository
	Rules() DiscountRuleRepository
	Users() UserRepository
	DB() db.DBTX
}

type ScheduleRepository interface {
	ActiveSlots(ctx context.Context) ([]schedule.TemplateSlot, error)
	ReplaceAll(ctx context.Context, slots []schedule.TemplateSlot) error
}

type AppointmentRepository interface {
	CreateBatch(ctx context.Context, appts []*appointment.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	Update(ctx context.Context, appt *appointment.Appointment) error
	// FindOccupyingWithin returns the intervals of SCHEDULED and
	// RESCHEDULED appointments intersecting [start, end), optionally
	// excluding one appointment for reschedule self-checks.
	FindOccupyingWithin(ctx context.Context, start, end time.Time, ignoreID *uuid.UUID) ([]schedule.Interval, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
}

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (*pricing.Coupon, error)
	IncrementRedemption(ctx context.Context, id uuid.UUID) error
}

type DiscountRuleRepository interface {
	ActiveForCourse(ctx context.Context, courseID *uuid.UUID) ([]*pricing.DiscountRule, error)
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}
