package session

import (
	"context"
	"errors"
	"time"

	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/account"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/auth"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/bookingtype"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/discount"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/email"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/logger"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/metrics"
)

var (
	ErrForbidden           = errors.New("not a participant of this session")
	ErrAlreadyCancelled    = errors.New("session already cancelled")
	ErrSessionCompleted    = errors.New("cannot cancel a completed session")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrBookingTypeInactive = errors.New("booking type is not active")
	ErrStatusChangeByUser  = errors.New("only the coach may change session status")
)

// accountReader is the slice of the account repository the lifecycle needs
// for notification recipients.
type accountReader interface {
	FindByID(ctx context.Context, id int) (*account.Account, error)
}

type Service interface {
	Create(ctx context.Context, userID int, req CreateSessionRequest) (*Session, error)
	List(ctx context.Context, caller auth.Identity, f Filters) ([]Session, error)
	Get(ctx context.Context, caller auth.Identity, id int) (*Session, error)
	Update(ctx context.Context, caller auth.Identity, id int, req UpdateSessionRequest) (*Session, error)
	Cancel(ctx context.Context, caller auth.Identity, id int) (*Session, error)

	StatsByDay(ctx context.Context, from, to time.Time) ([]StatsByDay, error)
	StatsByCoach(ctx context.Context, from, to time.Time) ([]StatsByCoach, error)
}

type service struct {
	repo         Repository
	typeRepo     bookingtype.Repository
	discounts    discount.Service
	accounts     accountReader
	emailService *email.Service
}

func NewService(
	repo Repository,
	typeRepo bookingtype.Repository,
	discounts discount.Service,
	accounts accountReader,
	emailService *email.Service,
) Service {
	return &service{
		repo:         repo,
		typeRepo:     typeRepo,
		discounts:    discounts,
		accounts:     accounts,
		emailService: emailService,
	}
}

func (s *service) Create(ctx context.Context, userID int, req CreateSessionRequest) (*Session, error) {
	bt, err := s.typeRepo.GetByID(ctx, req.BookingTypeID)
	if err != nil {
		return nil, bookingtype.ErrBookingTypeNotFound
	}
	if !bt.IsActive {
		return nil, ErrBookingTypeInactive
	}

	// The availability check and the insert run under a row lock inside
	// Book; a concurrent booking of the same slot loses with ErrSlotTaken.
	created, err := s.repo.Book(ctx, BookParams{
		UserID:        userID,
		CoachID:       bt.CoachID,
		BookingTypeID: bt.ID,
		TimeSlotID:    req.TimeSlotID,
		Notes:         req.Notes,
		DiscountCode:  req.DiscountCode,
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			metrics.RecordBookingConflict()
		}
		return nil, err
	}

	metrics.RecordSessionBooked()
	s.notifyBooked(ctx, created, bt.Name)

	return created, nil
}

func (s *service) notifyBooked(ctx context.Context, sess *Session, typeName string) {
	user, err := s.accounts.FindByID(ctx, sess.UserID)
	if err != nil {
		logger.Errorf("Failed to load user %d for booking email: %v", sess.UserID, err)
		return
	}

	if err := s.emailService.SendSessionConfirmation(ctx, user.Email, user.Name, typeName, sess.StartTime); err != nil {
		logger.Errorf("Failed to queue booking email for session %d: %v", sess.ID, err)
	}
}

func (s *service) List(ctx context.Context, caller auth.Identity, f Filters) ([]Session, error) {
	switch caller.Role {
	case auth.RoleAdmin:
		// admins see everything
	case auth.RoleCoach:
		f.CoachID = &caller.UserID
	default:
		f.UserID = &caller.UserID
	}

	return s.repo.List(ctx, f)
}

func (s *service) Get(ctx context.Context, caller auth.Identity, id int) (*Session, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.CanActOnSession(sess.UserID, sess.CoachID) {
		return nil, ErrForbidden
	}

	return sess, nil
}

func (s *service) Update(ctx context.Context, caller auth.Identity, id int, req UpdateSessionRequest) (*Session, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.CanActOnSession(sess.UserID, sess.CoachID) {
		return nil, ErrForbidden
	}

	coachOrAdmin := caller.IsAdmin() || caller.UserID == sess.CoachID

	if req.Notes != nil {
		sess.Notes = req.Notes
	}

	if req.Status != nil && *req.Status != sess.Status {
		if !coachOrAdmin {
			return nil, ErrStatusChangeByUser
		}
		if !CanTransition(sess.Status, *req.Status) {
			return nil, ErrInvalidTransition
		}
		sess.Status = *req.Status
	}

	if req.IsPaid != nil && *req.IsPaid != sess.IsPaid {
		if !coachOrAdmin {
			return nil, ErrForbidden
		}
		sess.IsPaid = *req.IsPaid

		if sess.IsPaid && sess.DiscountCode != nil {
			if err := s.discounts.Redeem(ctx, sess.CoachID, *sess.DiscountCode); err != nil {
				logger.Errorf("Failed to redeem discount for session %d: %v", sess.ID, err)
			}
		}
	}

	return s.repo.Update(ctx, sess)
}

func (s *service) Cancel(ctx context.Context, caller auth.Identity, id int) (*Session, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.CanActOnSession(sess.UserID, sess.CoachID) {
		return nil, ErrForbidden
	}

	switch sess.Status {
	case StatusCancelled:
		return nil, ErrAlreadyCancelled
	case StatusCompleted:
		return nil, ErrSessionCompleted
	}

	if err := s.repo.Cancel(ctx, id); err != nil {
		if errors.Is(err, ErrNotCancellable) {
			// lost a race with another cancel
			return nil, ErrAlreadyCancelled
		}
		return nil, err
	}

	metrics.RecordSessionCancellation()

	cancelled, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifyCancelled(ctx, cancelled)

	return cancelled, nil
}

func (s *service) notifyCancelled(ctx context.Context, sess *Session) {
	user, err := s.accounts.FindByID(ctx, sess.UserID)
	if err != nil {
		logger.Errorf("Failed to load user %d for cancellation email: %v", sess.UserID, err)
		return
	}

	if err := s.emailService.SendSessionCancellation(ctx, user.Email, user.Name, sess.StartTime); err != nil {
		logger.Errorf("Failed to queue cancellation email for session %d: %v", sess.ID, err)
	}
}

func (s *service) StatsByDay(ctx context.Context, from, to time.Time) ([]StatsByDay, error) {
	return s.repo.StatsByDay(ctx, from, to)
}

func (s *service) StatsByCoach(ctx context.Context, from, to time.Time) ([]StatsByCoach, error) {
	return s.repo.StatsByCoach(ctx, from, to)
}
