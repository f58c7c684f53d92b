package queries

import (
	"context"

	"tutorbook/internal/domain/pricing"
	"tutorbook/internal/infra"
	"tutorbook/internal/pkg/clock"
	"tutorbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrQuoteFailed     = errs.New("failed to compute quote")
	ErrInvalidQuoteReq = errs.New("invalid quote request")
)

// CouponReadStore resolves a coupon code outside any transaction.
// A missing code yields (nil, nil): quotes are advisory and proceed
// without the coupon rather than failing.
type CouponReadStore interface {
	FindByCode(ctx context.Context, code string) (*pricing.Coupon, error)
}

type DiscountRuleReadStore interface {
	ActiveForCourse(ctx context.Context, courseID *uuid.UUID) ([]*pricing.DiscountRule, error)
}

type QuoteInput struct {
	SessionsTotal   int
	PricePerSession float64
	CourseID        *uuid.UUID
	CouponCode      *string
}

type PricingQueries interface {
	Quote(ctx context.Context, input QuoteInput) (*QuoteView, error)
}

type pricingQueriesImpl struct {
	coupons CouponReadStore
	rules   DiscountRuleReadStore
	clock   clock.Clock
}

func NewPricingQueries(coupons CouponReadStore, rules DiscountRuleReadStore, clk clock.Clock) PricingQueries {
	return &pricingQueriesImpl{
		coupons: coupons,
		rules:   rules,
		clock:   clk,
	}
}

func (q *pricingQueriesImpl) Quote(ctx context.Context, input QuoteInput) (*QuoteView, error) {
	rules, err := q.rules.ActiveForCourse(ctx, input.CourseID)
	if err != nil {
		return nil, errs.Mark(err, ErrQuoteFailed)
	}

	var coupon *pricing.Coupon
	if input.CouponCode != nil && *input.CouponCode != "" {
		coupon, err = q.coupons.FindByCode(ctx, *input.CouponCode)
		if err != nil {
			if !infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Mark(err, ErrQuoteFailed)
			}
			coupon = nil
		}
	}

	quote, err := pricing.ComputeQuote(
		input.SessionsTotal,
		input.PricePerSession,
		input.CourseID,
		rules,
		coupon,
		q.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidQuoteReq)
	}

	view := &QuoteView{
		SessionsTotal:   quote.SessionsTotal,
		PricePerSession: quote.PricePerSession,
		Subtotal:        quote.Subtotal,
		DiscountAmount:  quote.AppliedDiscount,
		DiscountSource:  string(quote.DiscountSource),
		FinalAmount:     quote.FinalAmount,
	}
	if quote.AppliedCoupon != nil {
		code := quote.AppliedCoupon.Code().String()
		view.CouponCode = &code
	}

	if up := pricing.ComputeUpsell(input.SessionsTotal, input.PricePerSession, input.CourseID, rules); up != nil {
		view.Upsell = &UpsellView{
			SessionsNeeded:   up.SessionsNeeded,
			UnlockPercentOff: up.UnlockPercentOff,
			EstimatedSavings: up.EstimatedSavings,
		}
	}

	return view, nil
}
