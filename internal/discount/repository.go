package discount

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const discountColumns = `id, coach_id, code, percent_off, expires_at, max_usage, use_count, is_active, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByCoach(ctx context.Context, coachID int) ([]Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts WHERE coach_id = $1 ORDER BY created_at DESC`

	var discounts []Discount
	if err := r.db.SelectContext(ctx, &discounts, query, coachID); err != nil {
		return nil, err
	}

	return discounts, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts WHERE id = $1`

	var d Discount
	if err := r.db.GetContext(ctx, &d, query, id); err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *repository) FindByCode(ctx context.Context, coachID int, code string) (*Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts WHERE coach_id = $1 AND code = $2`

	var d Discount
	if err := r.db.GetContext(ctx, &d, query, coachID, code); err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *repository) Create(ctx context.Context, coachID int, d *Discount) (*Discount, error) {
	query := `
		INSERT INTO discounts (coach_id, code, percent_off, expires_at, max_usage)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + discountColumns

	var created Discount
	err := r.db.GetContext(ctx, &created, query,
		coachID, d.Code, d.PercentOff, d.ExpiresAt, d.MaxUsage)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) Update(ctx context.Context, d *Discount) (*Discount, error) {
	query := `
		UPDATE discounts
		SET percent_off = $1, expires_at = $2, max_usage = $3, is_active = $4
		WHERE id = $5
		RETURNING ` + discountColumns

	var updated Discount
	err := r.db.GetContext(ctx, &updated, query,
		d.PercentOff, d.ExpiresAt, d.MaxUsage, d.IsActive, d.ID)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Deactivate(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE discounts SET is_active = FALSE WHERE id = $1`, id)
	return err
}

func (r *repository) IncrementUsage(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE discounts SET use_count = use_count + 1 WHERE id = $1`, id)
	return err
}
