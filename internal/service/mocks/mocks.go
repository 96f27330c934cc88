package mocks

import (
	"context"

	"alfacard_miniapp/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ActivateCard(ctx context.Context, telegramID int64, bonus decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, telegramID, bonus)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName string) (*model.User, error) {
	args := m.Called(ctx, telegramID, username, firstName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) ActivateCard(ctx context.Context, telegramID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, telegramID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
