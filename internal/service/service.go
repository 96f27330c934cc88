package service

import (
	"context"
	"errors"

	"alfacard_miniapp/internal/model"

	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrCardAlreadyActivated = errors.New("card already activated")
)

type Service struct {
	*UserService
}

func NewService(userService *UserService) *Service {
	return &Service{
		UserService: userService,
	}
}

type UserServiceI interface {
	GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName string) (*model.User, error)
	ActivateCard(ctx context.Context, telegramID int64) (decimal.Decimal, error)
}

type UserRepository interface {
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	ActivateCard(ctx context.Context, telegramID int64, bonus decimal.Decimal) (decimal.Decimal, error)
}

// Notifier delivers best-effort messages to the user's chat. Failures
// must never propagate into the calling operation.
type Notifier interface {
	NotifyCardActivated(ctx context.Context, telegramID int64, balance decimal.Decimal)
}
