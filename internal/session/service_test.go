package session

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/account"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/auth"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/bookingtype"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/discount"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/email"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

// Mock repositories
type MockSessionRepo struct{ mock.Mock }
type MockTypeRepo struct{ mock.Mock }
type MockDiscountService struct{ mock.Mock }
type MockAccountRepo struct{ mock.Mock }

func (m *MockSessionRepo) Book(ctx context.Context, p BookParams) (*Session, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockSessionRepo) GetByID(ctx context.Context, id int) (*Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockSessionRepo) List(ctx context.Context, f Filters) ([]Session, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Session), args.Error(1)
}

func (m *MockSessionRepo) Update(ctx context.Context, s *Session) (*Session, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockSessionRepo) Cancel(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSessionRepo) StatsByDay(ctx context.Context, from, to time.Time) ([]StatsByDay, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]StatsByDay), args.Error(1)
}

func (m *MockSessionRepo) StatsByCoach(ctx context.Context, from, to time.Time) ([]StatsByCoach, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]StatsByCoach), args.Error(1)
}

func (m *MockTypeRepo) ListActive(ctx context.Context) ([]bookingtype.BookingType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bookingtype.BookingType), args.Error(1)
}

func (m *MockTypeRepo) ListByCoach(ctx context.Context, coachID int) ([]bookingtype.BookingType, error) {
	args := m.Called(ctx, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bookingtype.BookingType), args.Error(1)
}

func (m *MockTypeRepo) GetByID(ctx context.Context, id int) (*bookingtype.BookingType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingtype.BookingType), args.Error(1)
}

func (m *MockTypeRepo) Create(ctx context.Context, coachID int, bt *bookingtype.BookingType) (*bookingtype.BookingType, error) {
	args := m.Called(ctx, coachID, bt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingtype.BookingType), args.Error(1)
}

func (m *MockTypeRepo) Update(ctx context.Context, bt *bookingtype.BookingType) (*bookingtype.BookingType, error) {
	args := m.Called(ctx, bt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingtype.BookingType), args.Error(1)
}

func (m *MockTypeRepo) Deactivate(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDiscountService) ListByCoach(ctx context.Context, coachID int) ([]discount.Discount, error) {
	args := m.Called(ctx, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]discount.Discount), args.Error(1)
}

func (m *MockDiscountService) Create(ctx context.Context, coachID int, req discount.CreateDiscountRequest) (*discount.Discount, error) {
	args := m.Called(ctx, coachID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discount.Discount), args.Error(1)
}

func (m *MockDiscountService) Update(ctx context.Context, caller auth.Identity, id int, req discount.UpdateDiscountRequest) (*discount.Discount, error) {
	args := m.Called(ctx, caller, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discount.Discount), args.Error(1)
}

func (m *MockDiscountService) Deactivate(ctx context.Context, caller auth.Identity, id int) error {
	return m.Called(ctx, caller, id).Error(0)
}

func (m *MockDiscountService) Preview(ctx context.Context, req discount.PreviewRequest) (*discount.PreviewResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discount.PreviewResponse), args.Error(1)
}

func (m *MockDiscountService) Redeem(ctx context.Context, coachID int, code string) error {
	return m.Called(ctx, coachID, code).Error(0)
}

func (m *MockAccountRepo) FindByID(ctx context.Context, id int) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func newTestService(sr *MockSessionRepo, tr *MockTypeRepo, ds *MockDiscountService, ar *MockAccountRepo) Service {
	emailService := email.New("from@test.com", "Test", "localhost", "1025", "", "", "localhost:6379")
	return NewService(sr, tr, ds, ar, emailService)
}

func TestService_Create(t *testing.T) {
	futureTime := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name        string
		req         CreateSessionRequest
		setupMocks  func(*MockSessionRepo, *MockTypeRepo, *MockAccountRepo)
		expectError bool
		wantErr     error
	}{
		{
			name: "successful booking",
			req:  CreateSessionRequest{BookingTypeID: 1, TimeSlotID: 2},
			setupMocks: func(sr *MockSessionRepo, tr *MockTypeRepo, ar *MockAccountRepo) {
				tr.On("GetByID", mock.Anything, 1).Return(&bookingtype.BookingType{
					ID:             1,
					CoachID:        5,
					Name:           "Private Lesson",
					BasePriceCents: 5000,
					IsActive:       true,
				}, nil)
				sr.On("Book", mock.Anything, BookParams{
					UserID:        7,
					CoachID:       5,
					BookingTypeID: 1,
					TimeSlotID:    2,
				}).Return(&Session{
					ID:         10,
					UserID:     7,
					CoachID:    5,
					TimeSlotID: 2,
					StartTime:  futureTime,
					Status:     StatusScheduled,
				}, nil)
				ar.On("FindByID", mock.Anything, 7).Return(&account.Account{
					ID:    7,
					Email: "player@example.com",
					Name:  "Player",
				}, nil)
			},
			expectError: false,
		},
		{
			name: "booking type not found",
			req:  CreateSessionRequest{BookingTypeID: 99, TimeSlotID: 2},
			setupMocks: func(sr *MockSessionRepo, tr *MockTypeRepo, ar *MockAccountRepo) {
				tr.On("GetByID", mock.Anything, 99).Return(nil, errors.New("not found"))
			},
			expectError: true,
			wantErr:     bookingtype.ErrBookingTypeNotFound,
		},
		{
			name: "booking type inactive",
			req:  CreateSessionRequest{BookingTypeID: 1, TimeSlotID: 2},
			setupMocks: func(sr *MockSessionRepo, tr *MockTypeRepo, ar *MockAccountRepo) {
				tr.On("GetByID", mock.Anything, 1).Return(&bookingtype.BookingType{
					ID:       1,
					CoachID:  5,
					IsActive: false,
				}, nil)
			},
			expectError: true,
			wantErr:     ErrBookingTypeInactive,
		},
		{
			name: "slot taken by concurrent booking",
			req:  CreateSessionRequest{BookingTypeID: 1, TimeSlotID: 2},
			setupMocks: func(sr *MockSessionRepo, tr *MockTypeRepo, ar *MockAccountRepo) {
				tr.On("GetByID", mock.Anything, 1).Return(&bookingtype.BookingType{
					ID:       1,
					CoachID:  5,
					IsActive: true,
				}, nil)
				sr.On("Book", mock.Anything, mock.Anything).Return(nil, ErrSlotTaken)
			},
			expectError: true,
			wantErr:     ErrSlotTaken,
		},
		{
			name: "slot in past",
			req:  CreateSessionRequest{BookingTypeID: 1, TimeSlotID: 2},
			setupMocks: func(sr *MockSessionRepo, tr *MockTypeRepo, ar *MockAccountRepo) {
				tr.On("GetByID", mock.Anything, 1).Return(&bookingtype.BookingType{
					ID:       1,
					CoachID:  5,
					IsActive: true,
				}, nil)
				sr.On("Book", mock.Anything, mock.Anything).Return(nil, ErrSlotInPast)
			},
			expectError: true,
			wantErr:     ErrSlotInPast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr := new(MockSessionRepo)
			tr := new(MockTypeRepo)
			ds := new(MockDiscountService)
			ar := new(MockAccountRepo)

			tt.setupMocks(sr, tr, ar)

			service := newTestService(sr, tr, ds, ar)
			sess, err := service.Create(context.Background(), 7, tt.req)

			if tt.expectError {
				assert.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Nil(t, sess)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, sess)
				assert.Equal(t, StatusScheduled, sess.Status)
			}
		})
	}
}

func TestService_Get_Authorization(t *testing.T) {
	stored := &Session{ID: 10, UserID: 7, CoachID: 5, Status: StatusScheduled}

	tests := []struct {
		name      string
		caller    auth.Identity
		forbidden bool
	}{
		{"participant user", auth.Identity{UserID: 7, Role: auth.RoleUser}, false},
		{"participant coach", auth.Identity{UserID: 5, Role: auth.RoleCoach}, false},
		{"admin", auth.Identity{UserID: 99, Role: auth.RoleAdmin}, false},
		{"unrelated user", auth.Identity{UserID: 3, Role: auth.RoleUser}, true},
		{"unrelated coach", auth.Identity{UserID: 4, Role: auth.RoleCoach}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr := new(MockSessionRepo)
			tr := new(MockTypeRepo)
			ds := new(MockDiscountService)
			ar := new(MockAccountRepo)

			sr.On("GetByID", mock.Anything, 10).Return(stored, nil)

			service := newTestService(sr, tr, ds, ar)
			sess, err := service.Get(context.Background(), tt.caller, 10)

			if tt.forbidden {
				assert.ErrorIs(t, err, ErrForbidden)
				assert.Nil(t, sess)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 10, sess.ID)
			}
		})
	}
}

func TestService_List_RoleFiltering(t *testing.T) {
	tests := []struct {
		name        string
		caller      auth.Identity
		wantFilters func(f Filters) bool
	}{
		{
			name:   "user sees own sessions",
			caller: auth.Identity{UserID: 7, Role: auth.RoleUser},
			wantFilters: func(f Filters) bool {
				return f.UserID != nil && *f.UserID == 7 && f.CoachID == nil
			},
		},
		{
			name:   "premium user sees own sessions",
			caller: auth.Identity{UserID: 8, Role: auth.RolePremiumUser},
			wantFilters: func(f Filters) bool {
				return f.UserID != nil && *f.UserID == 8 && f.CoachID == nil
			},
		},
		{
			name:   "coach sees coaching sessions",
			caller: auth.Identity{UserID: 5, Role: auth.RoleCoach},
			wantFilters: func(f Filters) bool {
				return f.CoachID != nil && *f.CoachID == 5 && f.UserID == nil
			},
		},
		{
			name:   "admin sees everything",
			caller: auth.Identity{UserID: 1, Role: auth.RoleAdmin},
			wantFilters: func(f Filters) bool {
				return f.UserID == nil && f.CoachID == nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr := new(MockSessionRepo)
			tr := new(MockTypeRepo)
			ds := new(MockDiscountService)
			ar := new(MockAccountRepo)

			sr.On("List", mock.Anything, mock.MatchedBy(tt.wantFilters)).Return([]Session{}, nil)

			service := newTestService(sr, tr, ds, ar)
			_, err := service.List(context.Background(), tt.caller, Filters{})

			assert.NoError(t, err)
			sr.AssertExpectations(t)
		})
	}
}

func TestService_Update(t *testing.T) {
	coach := auth.Identity{UserID: 5, Role: auth.RoleCoach}
	user := auth.Identity{UserID: 7, Role: auth.RoleUser}
	confirmed := StatusConfirmed
	scheduled := StatusScheduled
	paid := true

	t.Run("coach confirms a scheduled session", func(t *testing.T) {
		sr := new(MockSessionRepo)
		tr := new(MockTypeRepo)
		ds := new(MockDiscountService)
		ar := new(MockAccountRepo)

		sr.On("GetByID", mock.Anything, 10).Return(&Session{
			ID: 10, UserID: 7, CoachID: 5, Status: StatusScheduled,
		}, nil)
		sr.On("Update", mock.Anything, mock.MatchedBy(func(s *Session) bool {
			return s.Status == StatusConfirmed
		})).Return(&Session{ID: 10, UserID: 7, CoachID: 5, Status: StatusConfirmed}, nil)

		service := newTestService(sr, tr, ds, ar)
		sess, err := service.Update(context.Background(), coach, 10, UpdateSessionRequest{Status: &confirmed})

		assert.NoError(t, err)
		assert.Equal(t, StatusConfirmed, sess.Status)
	})

	t.Run("user cannot change status", func(t *testing.T) {
		sr := new(MockSessionRepo)
		tr := new(MockTypeRepo)
		ds := new(MockDiscountService)
		ar := new(MockAccountRepo)

		sr.On("GetByID", mock.Anything, 10).Return(&Session{
			ID: 10, UserID: 7, CoachID: 5, Status: StatusScheduled,
		}, nil)

		service := newTestService(sr, tr, ds, ar)
		_, err := service.Update(context.Background(), user, 10, UpdateSessionRequest{Status: &confirmed})

		assert.ErrorIs(t, err, ErrStatusChangeByUser)
	})

	t.Run("backward transition rejected", func(t *testing.T) {
		sr := new(MockSessionRepo)
		tr := new(MockTypeRepo)
		ds := new(MockDiscountService)
		ar := new(MockAccountRepo)

		sr.On("GetByID", mock.Anything, 10).Return(&Session{
			ID: 10, UserID: 7, CoachID: 5, Status: StatusCompleted,
		}, nil)

		service := newTestService(sr, tr, ds, ar)
		_, err := service.Update(context.Background(), coach, 10, UpdateSessionRequest{Status: &scheduled})

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("marking paid redeems the stored discount code", func(t *testing.T) {
		sr := new(MockSessionRepo)
		tr := new(MockTypeRepo)
		ds := new(MockDiscountService)
		ar := new(MockAccountRepo)

		code := "SUMMER20"
		sr.On("GetByID", mock.Anything, 10).Return(&Session{
			ID: 10, UserID: 7, CoachID: 5, Status: StatusConfirmed, DiscountCode: &code,
		}, nil)
		ds.On("Redeem", mock.Anything, 5, "SUMMER20").Return(nil)
		sr.On("Update", mock.Anything, mock.MatchedBy(func(s *Session) bool {
			return s.IsPaid
		})).Return(&Session{ID: 10, UserID: 7, CoachID: 5, Status: StatusConfirmed, IsPaid: true}, nil)

		service := newTestService(sr, tr, ds, ar)
		sess, err := service.Update(context.Background(), coach, 10, UpdateSessionRequest{IsPaid: &paid})

		assert.NoError(t, err)
		assert.True(t, sess.IsPaid)
		ds.AssertExpectations(t)
	})
}

func TestService_Cancel(t *testing.T) {
	user := auth.Identity{UserID: 7, Role: auth.RoleUser}

	t.Run("successful cancellation", func(t *testing.T) {
		sr := new(MockSessionRepo)
		tr := new(MockTypeRepo)
		ds := new(MockDiscountService)
		ar := new(MockAccountRepo)

		active := &Session{ID: 10, UserID: 7, CoachID: 5, Status: StatusScheduled}
		cancelled := &Session{ID: 10, UserID: 7, CoachID: 5, Status: StatusCancelled}

		sr.On("GetByID", mock.Anything, 10).Return(active, nil).Once()
		sr.On("Cancel", mock.Anything, 10).Return(nil)
		sr.On("GetByID", mock.Anything, 10).Return(cancelled, nil).Once()
		ar.On("FindByID", mock.Anything, 7).Return(&account.Account{
			ID: 7, Email: "player@example.com", Name: "Player",
		}, nil)

		service := newTestService(sr, tr, ds, ar)
		sess, err := service.Cancel(context.Background(), user, 10)

		assert.NoError(t, err)
		assert.Equal(t, StatusCancelled, sess.Status)
	})

	t.Run("cancelling twice fails with already cancelled", func(t *testing.T) {
		sr := new(MockSessionRepo)
		tr := new(MockTypeRepo)
		ds := new(MockDiscountService)
		ar := new(MockAccountRepo)

		sr.On("GetByID", mock.Anything, 10).Return(&Session{
			ID: 10, UserID: 7, CoachID: 5, Status: StatusCancelled,
		}, nil)

		service := newTestService(sr, tr, ds, ar)
		_, err := service.Cancel(context.Background(), user, 10)

		assert.ErrorIs(t, err, ErrAlreadyCancelled)
		assert.Contains(t, err.Error(), "already cancelled")
	})

	t.Run("completed session cannot be cancelled", func(t *testing.T) {
		sr := new(MockSessionRepo)
		tr := new(MockTypeRepo)
		ds := new(MockDiscountService)
		ar := new(MockAccountRepo)

		sr.On("GetByID", mock.Anything, 10).Return(&Session{
			ID: 10, UserID: 7, CoachID: 5, Status: StatusCompleted,
		}, nil)

		service := newTestService(sr, tr, ds, ar)
		_, err := service.Cancel(context.Background(), user, 10)

		assert.ErrorIs(t, err, ErrSessionCompleted)
	})

	t.Run("non-participant is rejected", func(t *testing.T) {
		sr := new(MockSessionRepo)
		tr := new(MockTypeRepo)
		ds := new(MockDiscountService)
		ar := new(MockAccountRepo)

		sr.On("GetByID", mock.Anything, 10).Return(&Session{
			ID: 10, UserID: 7, CoachID: 5, Status: StatusScheduled,
		}, nil)

		service := newTestService(sr, tr, ds, ar)
		_, err := service.Cancel(context.Background(), auth.Identity{UserID: 3, Role: auth.RoleUser}, 10)

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("lost cancel race maps to already cancelled", func(t *testing.T) {
		sr := new(MockSessionRepo)
		tr := new(MockTypeRepo)
		ds := new(MockDiscountService)
		ar := new(MockAccountRepo)

		sr.On("GetByID", mock.Anything, 10).Return(&Session{
			ID: 10, UserID: 7, CoachID: 5, Status: StatusScheduled,
		}, nil)
		sr.On("Cancel", mock.Anything, 10).Return(ErrNotCancellable)

		service := newTestService(sr, tr, ds, ar)
		_, err := service.Cancel(context.Background(), user, 10)

		assert.ErrorIs(t, err, ErrAlreadyCancelled)
	})
}
