package repository

import (
	"context"
	"time"

	"tutorbook/internal/domain/pricing"
	"tutorbook/internal/infra"
	"tutorbook/internal/infra/db"
	"tutorbook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CouponRepository struct {
	db db.DBTX
}

func NewCouponRepository(db db.DBTX) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*pricing.Coupon, error) {
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
	err = r.db.QueryRow(ctx, `
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

// IncrementRedemption consumes one redemption. The WHERE guard keeps the
// counter from ever exceeding max_redemptions under concurrent bookings.
func (r *CouponRepository) IncrementRedemption(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE coupons
		SET redeemed_count = redeemed_count + 1, updated_at = now()
		WHERE id = $1
		  AND (max_redemptions IS NULL OR redeemed_count < max_redemptions)
	`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to increment coupon redemption", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon redemptions exhausted", nil, infra.KindConflict)
	}
	return nil
}
