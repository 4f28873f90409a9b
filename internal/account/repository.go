package account

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const accountColumns = `id, email, password_hash, name, role,
		gender, age, height_cm, weight_kg, disability, disability_cause,
		country, address, notes, bio, credentials, philosophy, profile_image,
		is_active, is_online, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Account) (*Account, error) {
	query := `
		INSERT INTO accounts (email, password_hash, name, role, disability, disability_cause)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + accountColumns

	var created Account
	err := r.db.GetContext(ctx, &created, query,
		a.Email, a.PasswordHash, a.Name, a.Role, a.Disability, a.DisabilityCause)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	var a Account
	if err := r.db.GetContext(ctx, &a, query, email); err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	var a Account
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) UpdateProfile(ctx context.Context, a *Account) (*Account, error) {
	query := `
		UPDATE accounts
		SET name = $1,
		    gender = $2,
		    age = $3,
		    height_cm = $4,
		    weight_kg = $5,
		    disability = $6,
		    disability_cause = $7,
		    country = $8,
		    address = $9,
		    notes = $10,
		    bio = $11,
		    credentials = $12,
		    philosophy = $13,
		    updated_at = NOW()
		WHERE id = $14
		RETURNING ` + accountColumns

	var updated Account
	err := r.db.GetContext(ctx, &updated, query,
		a.Name, a.Gender, a.Age, a.HeightCm, a.WeightKg,
		a.Disability, a.DisabilityCause, a.Country, a.Address, a.Notes,
		a.Bio, a.Credentials, a.Philosophy, a.ID)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) UpdateRole(ctx context.Context, id int, role string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET role = $1, updated_at = NOW() WHERE id = $2`,
		role, id)
	return err
}

func (r *repository) SetOnline(ctx context.Context, id int, online bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET is_online = $1, updated_at = NOW() WHERE id = $2`,
		online, id)
	return err
}

func (r *repository) SetProfileImage(ctx context.Context, id int, objectKey string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET profile_image = $1, updated_at = NOW() WHERE id = $2`,
		objectKey, id)
	return err
}

func (r *repository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	return err
}
