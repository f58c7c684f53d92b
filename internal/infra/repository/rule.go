package repository

import (
	"context"

	"tutorbook/internal/domain/pricing"
	"tutorbook/internal/infra"
	"tutorbook/internal/infra/db"

	"github.com/google/uuid"
)

type DiscountRuleRepository struct {
	db db.DBTX
}

func NewDiscountRuleRepository(db db.DBTX) *DiscountRuleRepository {
	return &DiscountRuleRepository{db: db}
}

// ActiveForCourse returns active rules scoped to the course plus
// platform-wide rules (course_id IS NULL). A nil courseID returns only
// the platform-wide ones.
func (r *DiscountRuleRepository) ActiveForCourse(ctx context.Context, courseID *uuid.UUID) ([]*pricing.DiscountRule, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, course_id, min_sessions, percent_off, is_active
		FROM discount_rules
		WHERE is_active AND (course_id IS NULL OR course_id = $1)
		ORDER BY min_sessions
	`, courseID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query discount rules", err)
	}
	defer rows.Close()

	var rules []*pricing.DiscountRule
	for rows.Next() {
		var (
			id          uuid.UUID
			ruleCourse  *uuid.UUID
			minSessions int
			percentOff  float64
			active      bool
		)
		if err := rows.Scan(&id, &ruleCourse, &minSessions, &percentOff, &active); err != nil {
			return nil, infra.WrapRepoErr("failed to scan discount rule", err)
		}
		rules = append(rules, pricing.ReconstructDiscountRule(id, ruleCourse, minSessions, percentOff, active))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read discount rules", err)
	}
	return rules, nil
}
