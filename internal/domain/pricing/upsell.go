package pricing

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// MaxUpsellSessions bounds how far away the next tier may be before
// the suggestion is suppressed.
const MaxUpsellSessions = 3

// Upsell is an advisory suggestion to add sessions and cross the next
// discount tier. It never affects a committed price.
type Upsell struct {
	SessionsNeeded   int
	UnlockPercentOff float64
	EstimatedSavings float64
}

// ComputeUpsell finds the next rule tier above the currently applying
// one and estimates the savings of booking enough sessions to reach
// it. Coupons are ignored; the comparison is rule discount now versus
// rule discount at the hypothetical next-tier subtotal. Returns nil
// when there is no next tier, the tier is more than MaxUpsellSessions
// sessions away, or the move would not strictly save money.
func ComputeUpsell(
	sessionsTotal int,
	pricePerSession float64,
	courseID *uuid.UUID,
	rules []*DiscountRule,
) *Upsell {
	eligible := make([]*DiscountRule, 0, len(rules))
	for _, rule := range rules {
		if rule.IsActive() && rule.appliesToCourse(courseID) {
			eligible = append(eligible, rule)
		}
	}
	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].MinSessions() < eligible[j].MinSessions()
	})

	currentBest := BestRule(eligible, courseID, sessionsTotal)
	currentThreshold := 0
	if currentBest != nil {
		currentThreshold = currentBest.MinSessions()
	}

	var next *DiscountRule
	for _, rule := range eligible {
		if rule.MinSessions() > currentThreshold {
			next = rule
			break
		}
	}
	if next == nil {
		return nil
	}

	sessionsNeeded := next.MinSessions() - sessionsTotal
	if sessionsNeeded <= 0 || sessionsNeeded > MaxUpsellSessions {
		return nil
	}

	subtotal := float64(sessionsTotal) * pricePerSession
	futureSubtotal := float64(next.MinSessions()) * pricePerSession

	currentDiscount := 0.0
	if currentBest != nil {
		currentDiscount = subtotal * currentBest.PercentOff() / 100
	}
	futureDiscount := futureSubtotal * next.PercentOff() / 100

	savings := futureDiscount - currentDiscount
	if savings <= 0 {
		return nil
	}

	return &Upsell{
		SessionsNeeded:   sessionsNeeded,
		UnlockPercentOff: next.PercentOff(),
		EstimatedSavings: math.Round(savings*100) / 100,
	}
}
