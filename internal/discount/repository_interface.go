package discount

import "context"

type Repository interface {
	ListByCoach(ctx context.Context, coachID int) ([]Discount, error)
	GetByID(ctx context.Context, id int) (*Discount, error)
	FindByCode(ctx context.Context, coachID int, code string) (*Discount, error)
	Create(ctx context.Context, coachID int, d *Discount) (*Discount, error)
	Update(ctx context.Context, d *Discount) (*Discount, error)
	Deactivate(ctx context.Context, id int) error
	IncrementUsage(ctx context.Context, id int) error
}
