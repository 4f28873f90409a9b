package timeslot

import (
	"context"
	"errors"
	"time"

	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/auth"
)

var (
	ErrSlotNotFound = errors.New("time slot not found")
	ErrNotSlotOwner = errors.New("not the owning coach of this time slot")
	ErrSlotInvalid  = errors.New("invalid time slot")
	ErrSlotBooked   = errors.New("time slot has an active booking")
)

type Service interface {
	ListAvailable(ctx context.Context, f Filters) ([]TimeSlot, error)
	ListByCoach(ctx context.Context, coachID int, f Filters) ([]TimeSlot, error)
	GetByID(ctx context.Context, id int) (*TimeSlot, error)
	Create(ctx context.Context, coachID int, req CreateTimeSlotRequest) (*TimeSlot, error)
	Update(ctx context.Context, caller auth.Identity, id int, req UpdateTimeSlotRequest) (*TimeSlot, error)
	Delete(ctx context.Context, caller auth.Identity, id int) error

	// MarkUnavailable and MarkAvailable are for the session lifecycle, not
	// exposed over HTTP.
	MarkUnavailable(ctx context.Context, id int) error
	MarkAvailable(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListAvailable(ctx context.Context, f Filters) ([]TimeSlot, error) {
	return s.repo.ListAvailable(ctx, f)
}

func (s *service) ListByCoach(ctx context.Context, coachID int, f Filters) ([]TimeSlot, error) {
	return s.repo.ListByCoach(ctx, coachID, f)
}

func (s *service) GetByID(ctx context.Context, id int) (*TimeSlot, error) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrSlotNotFound
	}
	return slot, nil
}

func (s *service) Create(ctx context.Context, coachID int, req CreateTimeSlotRequest) (*TimeSlot, error) {
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, ErrSlotInvalid
	}

	if startTime.Before(time.Now()) {
		return nil, ErrSlotInvalid
	}

	return s.repo.Create(ctx, coachID, &TimeSlot{
		StartTime:   startTime,
		DurationMin: req.DurationMin,
	})
}

func (s *service) Update(ctx context.Context, caller auth.Identity, id int, req UpdateTimeSlotRequest) (*TimeSlot, error) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrSlotNotFound
	}

	if !caller.CanActOnOwned(slot.CoachID) {
		return nil, ErrNotSlotOwner
	}

	if req.StartTime != nil {
		startTime, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return nil, ErrSlotInvalid
		}
		slot.StartTime = startTime
	}
	if req.DurationMin != nil {
		slot.DurationMin = *req.DurationMin
	}
	if req.IsAvailable != nil {
		slot.IsAvailable = *req.IsAvailable
	}

	return s.repo.Update(ctx, slot)
}

func (s *service) Delete(ctx context.Context, caller auth.Identity, id int) error {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrSlotNotFound
	}

	if !caller.CanActOnOwned(slot.CoachID) {
		return ErrNotSlotOwner
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) MarkUnavailable(ctx context.Context, id int) error {
	return s.repo.SetAvailability(ctx, id, false)
}

func (s *service) MarkAvailable(ctx context.Context, id int) error {
	return s.repo.SetAvailability(ctx, id, true)
}
