package bookingtype

import (
	"context"
	"errors"

	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/auth"
)

var (
	ErrBookingTypeNotFound = errors.New("booking type not found")
	ErrNotBookingTypeOwner = errors.New("not the owning coach of this booking type")
)

type Service interface {
	ListActive(ctx context.Context) ([]BookingType, error)
	ListByCoach(ctx context.Context, coachID int) ([]BookingType, error)
	GetByID(ctx context.Context, id int) (*BookingType, error)
	Create(ctx context.Context, coachID int, req CreateBookingTypeRequest) (*BookingType, error)
	Update(ctx context.Context, caller auth.Identity, id int, req UpdateBookingTypeRequest) (*BookingType, error)
	Deactivate(ctx context.Context, caller auth.Identity, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListActive(ctx context.Context) ([]BookingType, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) ListByCoach(ctx context.Context, coachID int) ([]BookingType, error) {
	return s.repo.ListByCoach(ctx, coachID)
}

func (s *service) GetByID(ctx context.Context, id int) (*BookingType, error) {
	bt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrBookingTypeNotFound
	}
	return bt, nil
}

func (s *service) Create(ctx context.Context, coachID int, req CreateBookingTypeRequest) (*BookingType, error) {
	return s.repo.Create(ctx, coachID, &BookingType{
		Name:           req.Name,
		Description:    req.Description,
		BasePriceCents: req.BasePriceCents,
	})
}

func (s *service) Update(ctx context.Context, caller auth.Identity, id int, req UpdateBookingTypeRequest) (*BookingType, error) {
	bt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrBookingTypeNotFound
	}

	if !caller.CanActOnOwned(bt.CoachID) {
		return nil, ErrNotBookingTypeOwner
	}

	if req.Name != nil {
		bt.Name = *req.Name
	}
	if req.Description != nil {
		bt.Description = req.Description
	}
	if req.BasePriceCents != nil {
		bt.BasePriceCents = *req.BasePriceCents
	}

	return s.repo.Update(ctx, bt)
}

func (s *service) Deactivate(ctx context.Context, caller auth.Identity, id int) error {
	bt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrBookingTypeNotFound
	}

	if !caller.CanActOnOwned(bt.CoachID) {
		return ErrNotBookingTypeOwner
	}

	return s.repo.Deactivate(ctx, id)
}
