package bookingtype

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListActive(ctx context.Context) ([]BookingType, error) {
	query := `
		SELECT id, coach_id, name, description, base_price_cents, is_active, created_at
		FROM booking_types
		WHERE is_active = TRUE
		ORDER BY created_at DESC
	`

	var types []BookingType
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, err
	}

	return types, nil
}

func (r *repository) ListByCoach(ctx context.Context, coachID int) ([]BookingType, error) {
	query := `
		SELECT id, coach_id, name, description, base_price_cents, is_active, created_at
		FROM booking_types
		WHERE coach_id = $1
		ORDER BY created_at DESC
	`

	var types []BookingType
	if err := r.db.SelectContext(ctx, &types, query, coachID); err != nil {
		return nil, err
	}

	return types, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*BookingType, error) {
	query := `
		SELECT id, coach_id, name, description, base_price_cents, is_active, created_at
		FROM booking_types
		WHERE id = $1
	`

	var bt BookingType
	if err := r.db.GetContext(ctx, &bt, query, id); err != nil {
		return nil, err
	}

	return &bt, nil
}

func (r *repository) Create(ctx context.Context, coachID int, bt *BookingType) (*BookingType, error) {
	query := `
		INSERT INTO booking_types (coach_id, name, description, base_price_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, coach_id, name, description, base_price_cents, is_active, created_at
	`

	var created BookingType
	err := r.db.GetContext(ctx, &created, query, coachID, bt.Name, bt.Description, bt.BasePriceCents)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) Update(ctx context.Context, bt *BookingType) (*BookingType, error) {
	query := `
		UPDATE booking_types
		SET name = $1, description = $2, base_price_cents = $3
		WHERE id = $4
		RETURNING id, coach_id, name, description, base_price_cents, is_active, created_at
	`

	var updated BookingType
	err := r.db.GetContext(ctx, &updated, query, bt.Name, bt.Description, bt.BasePriceCents, bt.ID)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Deactivate(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE booking_types SET is_active = FALSE WHERE id = $1`, id)
	return err
}
