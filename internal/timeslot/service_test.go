package timeslot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSlotRepo struct{ mock.Mock }

func (m *MockSlotRepo) ListAvailable(ctx context.Context, f Filters) ([]TimeSlot, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TimeSlot), args.Error(1)
}

func (m *MockSlotRepo) ListByCoach(ctx context.Context, coachID int, f Filters) ([]TimeSlot, error) {
	args := m.Called(ctx, coachID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TimeSlot), args.Error(1)
}

func (m *MockSlotRepo) GetByID(ctx context.Context, id int) (*TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TimeSlot), args.Error(1)
}

func (m *MockSlotRepo) Create(ctx context.Context, coachID int, slot *TimeSlot) (*TimeSlot, error) {
	args := m.Called(ctx, coachID, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TimeSlot), args.Error(1)
}

func (m *MockSlotRepo) Update(ctx context.Context, slot *TimeSlot) (*TimeSlot, error) {
	args := m.Called(ctx, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TimeSlot), args.Error(1)
}

func (m *MockSlotRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSlotRepo) SetAvailability(ctx context.Context, id int, available bool) error {
	return m.Called(ctx, id, available).Error(0)
}

func TestService_Create(t *testing.T) {
	futureTime := time.Now().Add(24 * time.Hour)

	t.Run("successful creation", func(t *testing.T) {
		repo := new(MockSlotRepo)
		repo.On("Create", mock.Anything, 5, mock.MatchedBy(func(s *TimeSlot) bool {
			return s.DurationMin == 60
		})).Return(&TimeSlot{ID: 1, CoachID: 5, StartTime: futureTime, DurationMin: 60, IsAvailable: true}, nil)

		service := NewService(repo)
		slot, err := service.Create(context.Background(), 5, CreateTimeSlotRequest{
			StartTime:   futureTime.Format(time.RFC3339),
			DurationMin: 60,
		})

		assert.NoError(t, err)
		assert.True(t, slot.IsAvailable)
	})

	t.Run("malformed start time", func(t *testing.T) {
		repo := new(MockSlotRepo)
		service := NewService(repo)

		_, err := service.Create(context.Background(), 5, CreateTimeSlotRequest{
			StartTime:   "next tuesday",
			DurationMin: 60,
		})

		assert.ErrorIs(t, err, ErrSlotInvalid)
	})

	t.Run("start time in the past", func(t *testing.T) {
		repo := new(MockSlotRepo)
		service := NewService(repo)

		_, err := service.Create(context.Background(), 5, CreateTimeSlotRequest{
			StartTime:   time.Now().Add(-time.Hour).Format(time.RFC3339),
			DurationMin: 60,
		})

		assert.ErrorIs(t, err, ErrSlotInvalid)
	})
}

func TestService_Update_Ownership(t *testing.T) {
	stored := &TimeSlot{ID: 1, CoachID: 5, StartTime: time.Now().Add(time.Hour), DurationMin: 60, IsAvailable: true}
	duration := 90

	tests := []struct {
		name      string
		caller    auth.Identity
		forbidden bool
	}{
		{"owning coach", auth.Identity{UserID: 5, Role: auth.RoleCoach}, false},
		{"admin", auth.Identity{UserID: 1, Role: auth.RoleAdmin}, false},
		{"other coach", auth.Identity{UserID: 6, Role: auth.RoleCoach}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockSlotRepo)
			repo.On("GetByID", mock.Anything, 1).Return(stored, nil)
			if !tt.forbidden {
				repo.On("Update", mock.Anything, mock.Anything).
					Return(&TimeSlot{ID: 1, CoachID: 5, DurationMin: 90}, nil)
			}

			service := NewService(repo)
			slot, err := service.Update(context.Background(), tt.caller, 1, UpdateTimeSlotRequest{
				DurationMin: &duration,
			})

			if tt.forbidden {
				assert.ErrorIs(t, err, ErrNotSlotOwner)
				assert.Nil(t, slot)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 90, slot.DurationMin)
			}
		})
	}
}

func TestService_Delete(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		repo := new(MockSlotRepo)
		repo.On("GetByID", mock.Anything, 1).Return(&TimeSlot{ID: 1, CoachID: 5}, nil)
		repo.On("Delete", mock.Anything, 1).Return(nil)

		service := NewService(repo)
		err := service.Delete(context.Background(), auth.Identity{UserID: 5, Role: auth.RoleCoach}, 1)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("missing slot", func(t *testing.T) {
		repo := new(MockSlotRepo)
		repo.On("GetByID", mock.Anything, 99).Return(nil, errors.New("sql: no rows in result set"))

		service := NewService(repo)
		err := service.Delete(context.Background(), auth.Identity{UserID: 5, Role: auth.RoleCoach}, 99)

		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		repo := new(MockSlotRepo)
		repo.On("GetByID", mock.Anything, 1).Return(&TimeSlot{ID: 1, CoachID: 5}, nil)

		service := NewService(repo)
		err := service.Delete(context.Background(), auth.Identity{UserID: 2, Role: auth.RoleCoach}, 1)

		assert.ErrorIs(t, err, ErrNotSlotOwner)
	})
}
