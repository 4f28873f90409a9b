package account

import "context"

type Repository interface {
	Create(ctx context.Context, a *Account) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id int) (*Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, a *Account) (*Account, error)
	UpdateRole(ctx context.Context, id int, role string) error
	SetOnline(ctx context.Context, id int, online bool) error
	SetProfileImage(ctx context.Context, id int, objectKey string) error
	Delete(ctx context.Context, id int) error
}
