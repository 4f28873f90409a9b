package timeslot

import "context"

type Repository interface {
	ListAvailable(ctx context.Context, f Filters) ([]TimeSlot, error)
	ListByCoach(ctx context.Context, coachID int, f Filters) ([]TimeSlot, error)
	GetByID(ctx context.Context, id int) (*TimeSlot, error)
	Create(ctx context.Context, coachID int, slot *TimeSlot) (*TimeSlot, error)
	Update(ctx context.Context, slot *TimeSlot) (*TimeSlot, error)
	Delete(ctx context.Context, id int) error
	SetAvailability(ctx context.Context, id int, available bool) error
}
