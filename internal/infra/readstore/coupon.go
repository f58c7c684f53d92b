package readstore

import (
	"context"
	"time"

	"tutorbook/internal/domain/pricing"
	"tutorbook/internal/infra"
	"tutorbook/internal/infra/db"
	"tutorbook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(db db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: db}
}

func (s *CouponReadStore) FindByCode(ctx context.Context, code string) (*pricing.Coupon, error) {
	normalized, err := pricing.NewCouponCode(code)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid coupon code", err, infra.KindNotFound)
	}

	var (
		id               uuid.UUID
		couponType       string
		value            float64
		startsAt, endsAt *time.Time
		maxRedemptions   *int
		redeemedCount    int
		active           bool
	)
	err = s.db.QueryRow(ctx, `
		SELECT id, coupon_type, value, starts_at, ends_at,
			max_redemptions, redeemed_count, is_active
		FROM coupons
		WHERE code = $1
	`, normalized.String()).Scan(
		&id, &couponType, &value, &startsAt, &endsAt,
		&maxRedemptions, &redeemedCount, &active,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon", err)
	}

	return pricing.ReconstructCoupon(
		id, normalized.String(), couponType, value,
		startsAt, endsAt, maxRedemptions, redeemedCount, active,
	), nil
}
