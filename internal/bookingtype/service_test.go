package bookingtype

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTypeRepo struct{ mock.Mock }

func (m *MockTypeRepo) ListActive(ctx context.Context) ([]BookingType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingType), args.Error(1)
}

func (m *MockTypeRepo) ListByCoach(ctx context.Context, coachID int) ([]BookingType, error) {
	args := m.Called(ctx, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingType), args.Error(1)
}

func (m *MockTypeRepo) GetByID(ctx context.Context, id int) (*BookingType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BookingType), args.Error(1)
}

func (m *MockTypeRepo) Create(ctx context.Context, coachID int, bt *BookingType) (*BookingType, error) {
	args := m.Called(ctx, coachID, bt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BookingType), args.Error(1)
}

func (m *MockTypeRepo) Update(ctx context.Context, bt *BookingType) (*BookingType, error) {
	args := m.Called(ctx, bt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BookingType), args.Error(1)
}

func (m *MockTypeRepo) Deactivate(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func TestService_Create(t *testing.T) {
	repo := new(MockTypeRepo)
	repo.On("Create", mock.Anything, 5, mock.MatchedBy(func(bt *BookingType) bool {
		return bt.Name == "Private Lesson" && bt.BasePriceCents == 5000
	})).Return(&BookingType{
		ID: 1, CoachID: 5, Name: "Private Lesson", BasePriceCents: 5000, IsActive: true,
	}, nil)

	service := NewService(repo)
	bt, err := service.Create(context.Background(), 5, CreateBookingTypeRequest{
		Name:           "Private Lesson",
		BasePriceCents: 5000,
	})

	assert.NoError(t, err)
	assert.True(t, bt.IsActive)
	repo.AssertExpectations(t)
}

func TestService_Update_Ownership(t *testing.T) {
	name := "Group Clinic"

	t.Run("owner updates", func(t *testing.T) {
		repo := new(MockTypeRepo)
		repo.On("GetByID", mock.Anything, 1).Return(&BookingType{ID: 1, CoachID: 5, Name: "Old"}, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(bt *BookingType) bool {
			return bt.Name == "Group Clinic"
		})).Return(&BookingType{ID: 1, CoachID: 5, Name: "Group Clinic"}, nil)

		service := NewService(repo)
		bt, err := service.Update(context.Background(), auth.Identity{UserID: 5, Role: auth.RoleCoach}, 1, UpdateBookingTypeRequest{Name: &name})

		assert.NoError(t, err)
		assert.Equal(t, "Group Clinic", bt.Name)
	})

	t.Run("other coach rejected", func(t *testing.T) {
		repo := new(MockTypeRepo)
		repo.On("GetByID", mock.Anything, 1).Return(&BookingType{ID: 1, CoachID: 5}, nil)

		service := NewService(repo)
		_, err := service.Update(context.Background(), auth.Identity{UserID: 9, Role: auth.RoleCoach}, 1, UpdateBookingTypeRequest{Name: &name})

		assert.ErrorIs(t, err, ErrNotBookingTypeOwner)
	})

	t.Run("missing booking type", func(t *testing.T) {
		repo := new(MockTypeRepo)
		repo.On("GetByID", mock.Anything, 99).Return(nil, errors.New("sql: no rows in result set"))

		service := NewService(repo)
		_, err := service.Update(context.Background(), auth.Identity{UserID: 5, Role: auth.RoleCoach}, 99, UpdateBookingTypeRequest{Name: &name})

		assert.ErrorIs(t, err, ErrBookingTypeNotFound)
	})
}

func TestService_Deactivate(t *testing.T) {
	t.Run("soft delete by owner", func(t *testing.T) {
		repo := new(MockTypeRepo)
		repo.On("GetByID", mock.Anything, 1).Return(&BookingType{ID: 1, CoachID: 5, IsActive: true}, nil)
		repo.On("Deactivate", mock.Anything, 1).Return(nil)

		service := NewService(repo)
		err := service.Deactivate(context.Background(), auth.Identity{UserID: 5, Role: auth.RoleCoach}, 1)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("admin bypasses ownership", func(t *testing.T) {
		repo := new(MockTypeRepo)
		repo.On("GetByID", mock.Anything, 1).Return(&BookingType{ID: 1, CoachID: 5, IsActive: true}, nil)
		repo.On("Deactivate", mock.Anything, 1).Return(nil)

		service := NewService(repo)
		err := service.Deactivate(context.Background(), auth.Identity{UserID: 1, Role: auth.RoleAdmin}, 1)

		assert.NoError(t, err)
	})
}
