package bookingtype

import "context"

type Repository interface {
	ListActive(ctx context.Context) ([]BookingType, error)
	ListByCoach(ctx context.Context, coachID int) ([]BookingType, error)
	GetByID(ctx context.Context, id int) (*BookingType, error)
	Create(ctx context.Context, coachID int, bt *BookingType) (*BookingType, error)
	Update(ctx context.Context, bt *BookingType) (*BookingType, error)
	Deactivate(ctx context.Context, id int) error
}
