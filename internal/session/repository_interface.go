package session

import (
	"context"
	"time"
)

// BookParams carries everything the booking transaction needs. CoachID is
// the coach expected to own the slot; the transaction rejects a mismatch.
type BookParams struct {
	UserID        int
	CoachID       int
	BookingTypeID int
	TimeSlotID    int
	Notes         *string
	DiscountCode  *string
}

type Repository interface {
	// Book creates the session and flips the slot unavailable in a single
	// transaction, locking the slot row first. The loser of a concurrent
	// booking gets ErrSlotTaken.
	Book(ctx context.Context, p BookParams) (*Session, error)

	GetByID(ctx context.Context, id int) (*Session, error)
	List(ctx context.Context, f Filters) ([]Session, error)
	Update(ctx context.Context, s *Session) (*Session, error)

	// Cancel transitions an active session to cancelled and frees its slot
	// in one transaction.
	Cancel(ctx context.Context, id int) error

	StatsByDay(ctx context.Context, from, to time.Time) ([]StatsByDay, error)
	StatsByCoach(ctx context.Context, from, to time.Time) ([]StatsByCoach, error)
}
