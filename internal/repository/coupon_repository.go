package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"invoicing-service/internal/models"
	"invoicing-service/internal/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CouponRepository struct {
	db *sqlx.DB
}

func NewCouponRepository(db *sqlx.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

const couponColumns = `
	id, org_id, kind, code, name, description, value, status, start_date, expiry_date,
	minimum_spend, applicable_items, stackable, max_uses, max_uses_per_customer,
	usage_log, sell_price, bookings, purchased_invoice_id, created_by,
	created_at, updated_at, state`

func (r *CouponRepository) GetByID(ctx context.Context, orgID int, id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	query := `
		SELECT ` + couponColumns + `
		FROM coupons
		WHERE id = $1 AND org_id = $2 AND state = 'active'`

	err := r.db.GetContext(ctx, &coupon, query, id, orgID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon by id: %w", err)
	}

	return &coupon, nil
}

func (r *CouponRepository) GetByIDs(ctx context.Context, orgID int, ids []uuid.UUID) ([]models.Coupon, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT `+couponColumns+`
		FROM coupons
		WHERE org_id = ? AND id IN (?)`, orgID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build coupon lookup query: %w", err)
	}

	var coupons []models.Coupon
	err = r.db.SelectContext(ctx, &coupons, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupons by ids: %w", err)
	}

	return coupons, nil
}

// FindActiveByCode looks up a non-deleted coupon by its sanitized code.
// excludeID skips one coupon so an update does not collide with itself;
// pass uuid.Nil to match any coupon.
func (r *CouponRepository) FindActiveByCode(ctx context.Context, orgID int, code string, excludeID uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	query := `
		SELECT ` + couponColumns + `
		FROM coupons
		WHERE org_id = $1 AND code = $2 AND state = 'active' AND id <> $3
		LIMIT 1`

	err := r.db.GetContext(ctx, &coupon, query, orgID, code, excludeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find coupon by code: %w", err)
	}

	return &coupon, nil
}

func (r *CouponRepository) ListByOrg(ctx context.Context, orgID int) ([]models.Coupon, error) {
	var coupons []models.Coupon
	query := `
		SELECT ` + couponColumns + `
		FROM coupons
		WHERE org_id = $1 AND state = 'active'
		ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &coupons, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}

	return coupons, nil
}

func (r *CouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	if coupon.ID == uuid.Nil {
		coupon.ID = uuid.New()
	}
	now := time.Now()
	if coupon.CreatedAt.IsZero() {
		coupon.CreatedAt = now
	}
	coupon.UpdatedAt = now

	query := `
		INSERT INTO coupons (
			id, org_id, kind, code, name, description, value, status, start_date, expiry_date,
			minimum_spend, applicable_items, stackable, max_uses, max_uses_per_customer,
			usage_log, sell_price, bookings, purchased_invoice_id, created_by,
			created_at, updated_at, state
		) VALUES (
			:id, :org_id, :kind, :code, :name, :description, :value, :status, :start_date, :expiry_date,
			:minimum_spend, :applicable_items, :stackable, :max_uses, :max_uses_per_customer,
			:usage_log, :sell_price, :bookings, :purchased_invoice_id, :created_by,
			:created_at, :updated_at, :state
		)`

	_, err := r.db.NamedExecContext(ctx, query, coupon)
	if err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	return nil
}

func (r *CouponRepository) Update(ctx context.Context, coupon *models.Coupon) error {
	coupon.UpdatedAt = time.Now()

	query := `
		UPDATE coupons SET
			kind = :kind,
			code = :code,
			name = :name,
			description = :description,
			value = :value,
			status = :status,
			start_date = :start_date,
			expiry_date = :expiry_date,
			minimum_spend = :minimum_spend,
			applicable_items = :applicable_items,
			stackable = :stackable,
			max_uses = :max_uses,
			max_uses_per_customer = :max_uses_per_customer,
			sell_price = :sell_price,
			purchased_invoice_id = :purchased_invoice_id,
			updated_at = :updated_at,
			state = :state
		WHERE id = :id AND org_id = :org_id`

	_, err := r.db.NamedExecContext(ctx, query, coupon)
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}

	return nil
}

// AppendUsage appends one redemption to a discount coupon's usage log.
func (r *CouponRepository) AppendUsage(ctx context.Context, orgID int, id uuid.UUID, entry models.UsageEntry) error {
	payload, err := utils.JSONBValue([]models.UsageEntry{entry})
	if err != nil {
		return fmt.Errorf("failed to encode usage entry: %w", err)
	}

	query := `
		UPDATE coupons SET
			usage_log = COALESCE(usage_log, '[]'::jsonb) || $3::jsonb,
			updated_at = $4
		WHERE id = $1 AND org_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, orgID, payload, time.Now())
	if err != nil {
		return fmt.Errorf("failed to append coupon usage: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}

	return nil
}

// AppendBooking appends one balance draw to a gift card's booking list.
func (r *CouponRepository) AppendBooking(ctx context.Context, orgID int, id uuid.UUID, booking models.Booking) error {
	payload, err := utils.JSONBValue([]models.Booking{booking})
	if err != nil {
		return fmt.Errorf("failed to encode booking: %w", err)
	}

	query := `
		UPDATE coupons SET
			bookings = COALESCE(bookings, '[]'::jsonb) || $3::jsonb,
			updated_at = $4
		WHERE id = $1 AND org_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, orgID, payload, time.Now())
	if err != nil {
		return fmt.Errorf("failed to append coupon booking: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}

	return nil
}
