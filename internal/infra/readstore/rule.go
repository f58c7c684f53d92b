package readstore

import (
	"context"

	"tutorbook/internal/domain/pricing"
	"tutorbook/internal/infra"
	"tutorbook/internal/infra/db"

	"github.com/google/uuid"
)

type DiscountRuleReadStore struct {
	db db.DBTX
}

func NewDiscountRuleReadStore(db db.DBTX) *DiscountRuleReadStore {
	return &DiscountRuleReadStore{db: db}
}

func (s *DiscountRuleReadStore) ActiveForCourse(ctx context.Context, courseID *uuid.UUID) ([]*pricing.DiscountRule, error) {
	rows, err := s.db.Query(ctx, `
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
