package booking

import (
	"errors"
	"time"

	"tutorbook/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrBookingCanceled = errors.New("booking is already canceled")
	ErrNotesTooLong    = errors.New("notes exceed maximum length")
)

const maxNotesLength = 2000

// Booking is the committed purchase of a weekly session series. It
// freezes the quote's monetary breakdown at creation time so later
// rule or coupon edits never change what the learner agreed to pay.
type Booking struct {
	id             uuid.UUID
	userID         uuid.UUID
	courseID       uuid.UUID
	sessionsTotal  int
	subtotal       float64
	discountAmount float64
	discountSource pricing.DiscountSource
	finalAmount    float64
	couponID       *uuid.UUID
	couponCode     *string
	status         Status
	notes          *string
	createdAt      time.Time
	updatedAt      time.Time
}

// NewBooking freezes a computed quote into a confirmed booking.
func NewBooking(userID, courseID uuid.UUID, quote pricing.Quote, notes *string) (*Booking, error) {
	if notes != nil && len(*notes) > maxNotesLength {
		return nil, ErrNotesTooLong
	}

	b := &Booking{
		id:             uuid.New(),
		userID:         userID,
		courseID:       courseID,
		sessionsTotal:  quote.SessionsTotal,
		subtotal:       quote.Subtotal,
		discountAmount: quote.AppliedDiscount,
		discountSource: quote.DiscountSource,
		finalAmount:    quote.FinalAmount,
		status:         StatusConfirmed,
		notes:          notes,
	}
	if quote.AppliedCoupon != nil {
		id := quote.AppliedCoupon.ID()
		code := quote.AppliedCoupon.Code().String()
		b.couponID = &id
		b.couponCode = &code
	}
	return b, nil
}

func ReconstructBooking(
	id, userID, courseID uuid.UUID,
	sessionsTotal int,
	subtotal, discountAmount float64,
	discountSource pricing.DiscountSource,
	finalAmount float64,
	couponID *uuid.UUID,
	couponCode *string,
	status Status,
	notes *string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		userID:         userID,
		courseID:       courseID,
		sessionsTotal:  sessionsTotal,
		subtotal:       subtotal,
		discountAmount: discountAmount,
		discountSource: discountSource,
		finalAmount:    finalAmount,
		couponID:       couponID,
		couponCode:     couponCode,
		status:         status,
		notes:          notes,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                          { return b.id }
func (b *Booking) UserID() uuid.UUID                      { return b.userID }
func (b *Booking) CourseID() uuid.UUID                    { return b.courseID }
func (b *Booking) SessionsTotal() int                     { return b.sessionsTotal }
func (b *Booking) Subtotal() float64                      { return b.subtotal }
func (b *Booking) DiscountAmount() float64                { return b.discountAmount }
func (b *Booking) DiscountSource() pricing.DiscountSource { return b.discountSource }
func (b *Booking) FinalAmount() float64                   { return b.finalAmount }
func (b *Booking) CouponID() *uuid.UUID                   { return b.couponID }
func (b *Booking) CouponCode() *string                    { return b.couponCode }
func (b *Booking) Status() Status                         { return b.status }
func (b *Booking) Notes() *string                         { return b.notes }
func (b *Booking) CreatedAt() time.Time                   { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time                   { return b.updatedAt }

func (b *Booking) IsActive() bool {
	return b.status == StatusConfirmed
}

// UsedCoupon reports whether the coupon was the winning discount
// source, which is the only case that consumes a redemption.
func (b *Booking) UsedCoupon() bool {
	return b.discountSource == pricing.DiscountSourceCoupon && b.couponID != nil
}

func (b *Booking) Cancel() error {
	if b.status == StatusCanceled {
		return ErrBookingCanceled
	}
	b.status = StatusCanceled
	return nil
}
