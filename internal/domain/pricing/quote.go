package pricing

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidSessionsTotal   = errors.New("sessions total must be at least 1")
	ErrInvalidPricePerSession = errors.New("price per session cannot be negative")
)

// DiscountSource records which discount source won the best-of
// selection for a quote.
type DiscountSource string

const (
	DiscountSourceRule   DiscountSource = "RULE"
	DiscountSourceCoupon DiscountSource = "COUPON"
	DiscountSourceNone   DiscountSource = "NONE"
)

// Quote is the full monetary breakdown for a prospective booking.
// Amounts are in currency units; the two discount sources are never
// stacked, the larger one wins, capped at the subtotal.
type Quote struct {
	SessionsTotal   int
	PricePerSession float64
	Subtotal        float64
	AppliedDiscount float64
	DiscountSource  DiscountSource
	AppliedRule     *DiscountRule
	AppliedCoupon   *Coupon
	FinalAmount     float64
}

// ComputeQuote resolves the best qualifying discount rule and the
// coupon's discount against the subtotal and applies whichever is
// larger. A tie between the two resolves to the rule. An inactive or
// exhausted coupon contributes nothing; callers that want to reject
// the request instead check ValidateUsage first.
func ComputeQuote(
	sessionsTotal int,
	pricePerSession float64,
	courseID *uuid.UUID,
	rules []*DiscountRule,
	coupon *Coupon,
	now time.Time,
) (Quote, error) {
	if sessionsTotal < 1 {
		return Quote{}, ErrInvalidSessionsTotal
	}
	if pricePerSession < 0 {
		return Quote{}, ErrInvalidPricePerSession
	}

	subtotal := float64(sessionsTotal) * pricePerSession

	bestRule := BestRule(rules, courseID, sessionsTotal)
	ruleAmount := 0.0
	if bestRule != nil {
		ruleAmount = subtotal * bestRule.PercentOff() / 100
	}

	couponAmount := 0.0
	if coupon != nil && coupon.IsActiveAt(now) {
		couponAmount = coupon.DiscountAmount(subtotal)
	}

	applied := max(ruleAmount, couponAmount)
	if applied > subtotal {
		applied = subtotal
	}

	quote := Quote{
		SessionsTotal:   sessionsTotal,
		PricePerSession: pricePerSession,
		Subtotal:        subtotal,
		AppliedDiscount: applied,
		DiscountSource:  DiscountSourceNone,
		FinalAmount:     subtotal - applied,
	}

	switch {
	case applied > 0 && ruleAmount >= couponAmount:
		quote.DiscountSource = DiscountSourceRule
		quote.AppliedRule = bestRule
	case applied > 0:
		quote.DiscountSource = DiscountSourceCoupon
		quote.AppliedCoupon = coupon
	}

	return quote, nil
}
