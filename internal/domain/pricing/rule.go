package pricing

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidMinSessions = errors.New("minimum sessions must be at least 1")
	ErrInvalidPercentOff  = errors.New("percent off must be between 0 and 100")
)

// DiscountRule is one tier of the volume discount ladder. A nil
// courseID means the rule applies to every course.
type DiscountRule struct {
	id          uuid.UUID
	courseID    *uuid.UUID
	minSessions int
	percentOff  float64
	active      bool
}

func NewDiscountRule(id uuid.UUID, courseID *uuid.UUID, minSessions int, percentOff float64, active bool) (*DiscountRule, error) {
	if minSessions < 1 {
		return nil, ErrInvalidMinSessions
	}
	if percentOff < 0 || percentOff > 100 {
		return nil, ErrInvalidPercentOff
	}
	return &DiscountRule{
		id:          id,
		courseID:    courseID,
		minSessions: minSessions,
		percentOff:  percentOff,
		active:      active,
	}, nil
}

func ReconstructDiscountRule(id uuid.UUID, courseID *uuid.UUID, minSessions int, percentOff float64, active bool) *DiscountRule {
	return &DiscountRule{
		id:          id,
		courseID:    courseID,
		minSessions: minSessions,
		percentOff:  percentOff,
		active:      active,
	}
}

func (r *DiscountRule) ID() uuid.UUID        { return r.id }
func (r *DiscountRule) CourseID() *uuid.UUID { return r.courseID }
func (r *DiscountRule) MinSessions() int     { return r.minSessions }
func (r *DiscountRule) PercentOff() float64  { return r.percentOff }
func (r *DiscountRule) IsActive() bool       { return r.active }

func (r *DiscountRule) appliesToCourse(courseID *uuid.UUID) bool {
	if r.courseID == nil || courseID == nil {
		return r.courseID == nil
	}
	return *r.courseID == *courseID
}

// Qualifies reports whether the rule is live for this booking: active,
// scoped to the booking's course (or unscoped), and the session count
// meets the tier threshold.
func (r *DiscountRule) Qualifies(courseID *uuid.UUID, sessionsTotal int) bool {
	return r.active && r.appliesToCourse(courseID) && sessionsTotal >= r.minSessions
}

// BestRule selects the qualifying rule with the highest percent off.
// Equal-percent ties may resolve to either rule; the discount amount
// is identical in that case.
func BestRule(rules []*DiscountRule, courseID *uuid.UUID, sessionsTotal int) *DiscountRule {
	var best *DiscountRule
	for _, rule := range rules {
		if !rule.Qualifies(courseID, sessionsTotal) {
			continue
		}
		if best == nil || rule.percentOff > best.percentOff {
			best = rule
		}
	}
	return best
}
