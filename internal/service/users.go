package service

import (
	"context"
	"errors"
	"fmt"

	"alfacard_miniapp/internal/model"
	"alfacard_miniapp/internal/repository"

	"github.com/shopspring/decimal"
)

// CardBonus is credited exactly once, when the card is activated.
var CardBonus = decimal.RequireFromString("500.00")

const createRetries = 3

type UserService struct {
	repo     UserRepository
	notifier Notifier
}

// NewUserService creates the balance/activation service. notifier may
// be nil, in which case activation skips the chat notification.
func NewUserService(repo UserRepository, notifier Notifier) *UserService {
	return &UserService{
		repo:     repo,
		notifier: notifier,
	}
}

// SetNotifier wires the notifier after construction. The bot service
// needs the user service for its replies, so one side is attached late.
func (s *UserService) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// GetOrCreateUser looks the user up by telegram id and registers a new
// one with a zero balance and a fresh referral code when absent. The
// returned snapshot always reflects a persisted row.
func (s *UserService) GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName string) (*model.User, error) {
	user, err := s.repo.GetUserByTelegramID(ctx, telegramID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get user by telegram ID: %w", err)
	}

	for attempt := 0; attempt < createRetries; attempt++ {
		code, err := GenerateReferralCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate referral code: %w", err)
		}

		u := &model.User{
			TelegramID:   telegramID,
			Username:     username,
			FirstName:    firstName,
			Balance:      decimal.Zero,
			ReferralCode: code,
		}

		err = s.repo.CreateUser(ctx, u)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, repository.ErrAlreadyExists) {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		// Either a concurrent request inserted the same telegram_id,
		// or the generated referral code collided. The re-read settles
		// the former; the loop retries the latter with a fresh code.
		user, getErr := s.repo.GetUserByTelegramID(ctx, telegramID)
		if getErr == nil {
			return user, nil
		}
		if !errors.Is(getErr, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to get user by telegram ID: %w", getErr)
		}
	}

	return nil, fmt.Errorf("failed to create user after %d attempts", createRetries)
}

// ActivateCard credits CardBonus and marks the card activated, at most
// once per user. On ErrCardAlreadyActivated the returned balance is the
// user's current balance, without a second credit.
func (s *UserService) ActivateCard(ctx context.Context, telegramID int64) (decimal.Decimal, error) {
	balance, err := s.repo.ActivateCard(ctx, telegramID, CardBonus)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return decimal.Zero, ErrUserNotFound
		case errors.Is(err, repository.ErrAlreadyActivated):
			return balance, ErrCardAlreadyActivated
		default:
			return decimal.Zero, fmt.Errorf("failed to activate card: %w", err)
		}
	}

	if s.notifier != nil {
		// Fire and forget; the request context must not cancel the send.
		go s.notifier.NotifyCardActivated(context.Background(), telegramID, balance)
	}

	return balance, nil
}
