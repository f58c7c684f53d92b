package pricing

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCouponCode  = errors.New("invalid coupon code format")
	ErrInvalidCouponType  = errors.New("invalid coupon type")
	ErrInvalidCouponValue = errors.New("coupon value must be positive")
	ErrCouponInactive     = errors.New("coupon is not active")
	ErrCouponNotYetValid  = errors.New("coupon is not yet valid")
	ErrCouponExpired      = errors.New("coupon has expired")
	ErrCouponExhausted    = errors.New("coupon redemption limit reached")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type CouponCode string

func NewCouponCode(code string) (CouponCode, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return CouponCode(""), ErrInvalidCouponCode
	}
	return CouponCode(code), nil
}

func (c CouponCode) String() string {
	return string(c)
}

type CouponType string

const (
	CouponTypePercent CouponType = "PERCENT"
	CouponTypeFixed   CouponType = "FIXED"
)

func NewCouponType(s string) (CouponType, error) {
	switch CouponType(s) {
	case CouponTypePercent, CouponTypeFixed:
		return CouponType(s), nil
	default:
		return "", ErrInvalidCouponType
	}
}

// Coupon is a redeemable discount code. Nil window ends are unbounded
// and a nil maxRedemptions means no redemption cap.
type Coupon struct {
	id             uuid.UUID
	code           CouponCode
	couponType     CouponType
	value          float64
	startsAt       *time.Time
	endsAt         *time.Time
	maxRedemptions *int
	redeemedCount  int
	active         bool
}

func NewCoupon(
	id uuid.UUID,
	code string,
	couponType string,
	value float64,
	startsAt, endsAt *time.Time,
	maxRedemptions *int,
) (*Coupon, error) {
	couponCode, err := NewCouponCode(code)
	if err != nil {
		return nil, err
	}
	typ, err := NewCouponType(couponType)
	if err != nil {
		return nil, err
	}
	if value <= 0 {
		return nil, ErrInvalidCouponValue
	}
	if typ == CouponTypePercent && value > 100 {
		return nil, ErrInvalidCouponValue
	}
	return &Coupon{
		id:             id,
		code:           couponCode,
		couponType:     typ,
		value:          value,
		startsAt:       startsAt,
		endsAt:         endsAt,
		maxRedemptions: maxRedemptions,
		active:         true,
	}, nil
}

func ReconstructCoupon(
	id uuid.UUID,
	code string,
	couponType string,
	value float64,
	startsAt, endsAt *time.Time,
	maxRedemptions *int,
	redeemedCount int,
	active bool,
) *Coupon {
	return &Coupon{
		id:             id,
		code:           CouponCode(code),
		couponType:     CouponType(couponType),
		value:          value,
		startsAt:       startsAt,
		endsAt:         endsAt,
		maxRedemptions: maxRedemptions,
		redeemedCount:  redeemedCount,
		active:         active,
	}
}

func (c *Coupon) ID() uuid.UUID        { return c.id }
func (c *Coupon) Code() CouponCode     { return c.code }
func (c *Coupon) Type() CouponType     { return c.couponType }
func (c *Coupon) Value() float64       { return c.value }
func (c *Coupon) StartsAt() *time.Time { return c.startsAt }
func (c *Coupon) EndsAt() *time.Time   { return c.endsAt }
func (c *Coupon) MaxRedemptions() *int { return c.maxRedemptions }
func (c *Coupon) RedeemedCount() int   { return c.redeemedCount }
func (c *Coupon) IsEnabled() bool      { return c.active }

// IsActiveAt reports whether the coupon can discount a booking at t.
// Both window ends are inclusive.
func (c *Coupon) IsActiveAt(t time.Time) bool {
	if !c.active {
		return false
	}
	if c.startsAt != nil && t.Before(*c.startsAt) {
		return false
	}
	if c.endsAt != nil && t.After(*c.endsAt) {
		return false
	}
	if c.maxRedemptions != nil && c.redeemedCount >= *c.maxRedemptions {
		return false
	}
	return true
}

// ValidateUsage explains why a coupon is unusable at t, if it is.
func (c *Coupon) ValidateUsage(t time.Time) error {
	if !c.active {
		return ErrCouponInactive
	}
	if c.startsAt != nil && t.Before(*c.startsAt) {
		return ErrCouponNotYetValid
	}
	if c.endsAt != nil && t.After(*c.endsAt) {
		return ErrCouponExpired
	}
	if c.maxRedemptions != nil && c.redeemedCount >= *c.maxRedemptions {
		return ErrCouponExhausted
	}
	return nil
}

// DiscountAmount is the raw discount the coupon grants on a subtotal,
// before the best-of selection and the subtotal cap.
func (c *Coupon) DiscountAmount(subtotal float64) float64 {
	if c.couponType == CouponTypePercent {
		return subtotal * c.value / 100
	}
	return c.value
}
