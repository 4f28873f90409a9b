package discount

import (
	"context"
	"errors"
	"time"

	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/auth"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/bookingtype"
)

var (
	ErrDiscountNotFound = errors.New("discount not found")
	ErrNotDiscountOwner = errors.New("not the owning coach of this discount")
	ErrDiscountInvalid  = errors.New("invalid discount data")
)

type Service interface {
	ListByCoach(ctx context.Context, coachID int) ([]Discount, error)
	Create(ctx context.Context, coachID int, req CreateDiscountRequest) (*Discount, error)
	Update(ctx context.Context, caller auth.Identity, id int, req UpdateDiscountRequest) (*Discount, error)
	Deactivate(ctx context.Context, caller auth.Identity, id int) error
	Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error)

	// Redeem bumps the usage counter when a paid session carries a code. A
	// code that is missing or no longer usable is skipped without error:
	// booking stores codes verbatim and never rejects on discount state.
	Redeem(ctx context.Context, coachID int, code string) error
}

type service struct {
	repo     Repository
	typeRepo bookingtype.Repository
}

func NewService(repo Repository, typeRepo bookingtype.Repository) Service {
	return &service{repo: repo, typeRepo: typeRepo}
}

func (s *service) ListByCoach(ctx context.Context, coachID int) ([]Discount, error) {
	return s.repo.ListByCoach(ctx, coachID)
}

func (s *service) Create(ctx context.Context, coachID int, req CreateDiscountRequest) (*Discount, error) {
	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		return nil, ErrDiscountInvalid
	}

	if expiresAt.Before(time.Now()) {
		return nil, ErrDiscountInvalid
	}

	return s.repo.Create(ctx, coachID, &Discount{
		Code:       req.Code,
		PercentOff: req.PercentOff,
		ExpiresAt:  expiresAt,
		MaxUsage:   req.MaxUsage,
	})
}

func (s *service) Update(ctx context.Context, caller auth.Identity, id int, req UpdateDiscountRequest) (*Discount, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrDiscountNotFound
	}

	if !caller.CanActOnOwned(d.CoachID) {
		return nil, ErrNotDiscountOwner
	}

	if req.PercentOff != nil {
		d.PercentOff = *req.PercentOff
	}
	if req.ExpiresAt != nil {
		expiresAt, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			return nil, ErrDiscountInvalid
		}
		d.ExpiresAt = expiresAt
	}
	if req.MaxUsage != nil {
		d.MaxUsage = *req.MaxUsage
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}

	return s.repo.Update(ctx, d)
}

func (s *service) Deactivate(ctx context.Context, caller auth.Identity, id int) error {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrDiscountNotFound
	}

	if !caller.CanActOnOwned(d.CoachID) {
		return ErrNotDiscountOwner
	}

	return s.repo.Deactivate(ctx, id)
}

func (s *service) Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error) {
	bt, err := s.typeRepo.GetByID(ctx, req.BookingTypeID)
	if err != nil {
		return nil, bookingtype.ErrBookingTypeNotFound
	}

	resp := &PreviewResponse{
		Code:            req.Code,
		BasePriceCents:  bt.BasePriceCents,
		FinalPriceCents: bt.BasePriceCents,
	}

	d, err := s.repo.FindByCode(ctx, bt.CoachID, req.Code)
	if err != nil || !d.Usable(time.Now()) {
		return resp, nil
	}

	resp.Valid = true
	resp.FinalPriceCents = bt.BasePriceCents * int64(100-d.PercentOff) / 100

	return resp, nil
}

func (s *service) Redeem(ctx context.Context, coachID int, code string) error {
	if code == "" {
		return nil
	}

	d, err := s.repo.FindByCode(ctx, coachID, code)
	if err != nil {
		return nil
	}

	if !d.Usable(time.Now()) {
		return nil
	}

	return s.repo.IncrementUsage(ctx, d.ID)
}
