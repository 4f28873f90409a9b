package discount

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/bookingtype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockDiscountRepo struct{ mock.Mock }
type MockTypeRepo struct{ mock.Mock }

func (m *MockDiscountRepo) ListByCoach(ctx context.Context, coachID int) ([]Discount, error) {
	args := m.Called(ctx, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Discount), args.Error(1)
}

func (m *MockDiscountRepo) GetByID(ctx context.Context, id int) (*Discount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Discount), args.Error(1)
}

func (m *MockDiscountRepo) FindByCode(ctx context.Context, coachID int, code string) (*Discount, error) {
	args := m.Called(ctx, coachID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Discount), args.Error(1)
}

func (m *MockDiscountRepo) Create(ctx context.Context, coachID int, d *Discount) (*Discount, error) {
	args := m.Called(ctx, coachID, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Discount), args.Error(1)
}

func (m *MockDiscountRepo) Update(ctx context.Context, d *Discount) (*Discount, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Discount), args.Error(1)
}

func (m *MockDiscountRepo) Deactivate(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDiscountRepo) IncrementUsage(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
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

func TestDiscount_Usable(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		discount Discount
		want     bool
	}{
		{"active, unexpired, under limit", Discount{IsActive: true, ExpiresAt: now.Add(time.Hour), MaxUsage: 10, UseCount: 3}, true},
		{"inactive", Discount{IsActive: false, ExpiresAt: now.Add(time.Hour), MaxUsage: 10, UseCount: 3}, false},
		{"expired", Discount{IsActive: true, ExpiresAt: now.Add(-time.Hour), MaxUsage: 10, UseCount: 3}, false},
		{"usage exhausted", Discount{IsActive: true, ExpiresAt: now.Add(time.Hour), MaxUsage: 10, UseCount: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.discount.Usable(now))
		})
	}
}

func TestService_Preview(t *testing.T) {
	bt := &bookingtype.BookingType{ID: 1, CoachID: 5, BasePriceCents: 10000, IsActive: true}

	t.Run("usable code reduces the price", func(t *testing.T) {
		dr := new(MockDiscountRepo)
		tr := new(MockTypeRepo)

		tr.On("GetByID", mock.Anything, 1).Return(bt, nil)
		dr.On("FindByCode", mock.Anything, 5, "SUMMER20").Return(&Discount{
			ID: 1, CoachID: 5, Code: "SUMMER20", PercentOff: 20,
			ExpiresAt: time.Now().Add(time.Hour), MaxUsage: 10, UseCount: 0, IsActive: true,
		}, nil)

		service := NewService(dr, tr)
		resp, err := service.Preview(context.Background(), PreviewRequest{Code: "SUMMER20", BookingTypeID: 1})

		assert.NoError(t, err)
		assert.True(t, resp.Valid)
		assert.Equal(t, int64(10000), resp.BasePriceCents)
		assert.Equal(t, int64(8000), resp.FinalPriceCents)
	})

	t.Run("unknown code returns base price without error", func(t *testing.T) {
		dr := new(MockDiscountRepo)
		tr := new(MockTypeRepo)

		tr.On("GetByID", mock.Anything, 1).Return(bt, nil)
		dr.On("FindByCode", mock.Anything, 5, "NOPE").Return(nil, errors.New("sql: no rows in result set"))

		service := NewService(dr, tr)
		resp, err := service.Preview(context.Background(), PreviewRequest{Code: "NOPE", BookingTypeID: 1})

		assert.NoError(t, err)
		assert.False(t, resp.Valid)
		assert.Equal(t, int64(10000), resp.FinalPriceCents)
	})

	t.Run("expired code returns base price without error", func(t *testing.T) {
		dr := new(MockDiscountRepo)
		tr := new(MockTypeRepo)

		tr.On("GetByID", mock.Anything, 1).Return(bt, nil)
		dr.On("FindByCode", mock.Anything, 5, "STALE").Return(&Discount{
			ID: 2, CoachID: 5, Code: "STALE", PercentOff: 50,
			ExpiresAt: time.Now().Add(-time.Hour), MaxUsage: 10, IsActive: true,
		}, nil)

		service := NewService(dr, tr)
		resp, err := service.Preview(context.Background(), PreviewRequest{Code: "STALE", BookingTypeID: 1})

		assert.NoError(t, err)
		assert.False(t, resp.Valid)
		assert.Equal(t, int64(10000), resp.FinalPriceCents)
	})
}

func TestService_Redeem(t *testing.T) {
	t.Run("usable code increments usage", func(t *testing.T) {
		dr := new(MockDiscountRepo)
		tr := new(MockTypeRepo)

		dr.On("FindByCode", mock.Anything, 5, "SUMMER20").Return(&Discount{
			ID: 1, CoachID: 5, Code: "SUMMER20", PercentOff: 20,
			ExpiresAt: time.Now().Add(time.Hour), MaxUsage: 10, UseCount: 3, IsActive: true,
		}, nil)
		dr.On("IncrementUsage", mock.Anything, 1).Return(nil)

		service := NewService(dr, tr)
		err := service.Redeem(context.Background(), 5, "SUMMER20")

		assert.NoError(t, err)
		dr.AssertExpectations(t)
	})

	t.Run("missing code is silently skipped", func(t *testing.T) {
		dr := new(MockDiscountRepo)
		tr := new(MockTypeRepo)

		dr.On("FindByCode", mock.Anything, 5, "NOPE").Return(nil, errors.New("sql: no rows in result set"))

		service := NewService(dr, tr)
		err := service.Redeem(context.Background(), 5, "NOPE")

		assert.NoError(t, err)
		dr.AssertNotCalled(t, "IncrementUsage", mock.Anything, mock.Anything)
	})

	t.Run("exhausted code is silently skipped", func(t *testing.T) {
		dr := new(MockDiscountRepo)
		tr := new(MockTypeRepo)

		dr.On("FindByCode", mock.Anything, 5, "MAXED").Return(&Discount{
			ID: 3, CoachID: 5, Code: "MAXED", PercentOff: 20,
			ExpiresAt: time.Now().Add(time.Hour), MaxUsage: 5, UseCount: 5, IsActive: true,
		}, nil)

		service := NewService(dr, tr)
		err := service.Redeem(context.Background(), 5, "MAXED")

		assert.NoError(t, err)
		dr.AssertNotCalled(t, "IncrementUsage", mock.Anything, mock.Anything)
	})

	t.Run("empty code is a no-op", func(t *testing.T) {
		dr := new(MockDiscountRepo)
		tr := new(MockTypeRepo)

		service := NewService(dr, tr)
		err := service.Redeem(context.Background(), 5, "")

		assert.NoError(t, err)
		dr.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything, mock.Anything)
	})
}
