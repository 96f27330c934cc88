package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"alfacard_miniapp/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const pgUniqueViolation = "23505"

type User struct {
	ID            int64           `db:"id"`
	TelegramID    int64           `db:"telegram_id"`
	Username      string          `db:"username"`
	FirstName     string          `db:"first_name"`
	Balance       decimal.Decimal `db:"balance"`
	CardOrdered   bool            `db:"card_ordered"`
	CardActivated bool            `db:"card_activated"`
	ReferralCode  string          `db:"referral_code"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func (u *User) toModel() *model.User {
	return &model.User{
		ID:            u.ID,
		TelegramID:    u.TelegramID,
		Username:      u.Username,
		FirstName:     u.FirstName,
		Balance:       u.Balance,
		CardOrdered:   u.CardOrdered,
		CardActivated: u.CardActivated,
		ReferralCode:  u.ReferralCode,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (r *Repository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var user User
	query, args, err := squirrel.
		Select("*").
		From("users").
		Where(squirrel.Eq{"telegram_id": telegramID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user.toModel(), nil
}

// CreateUser inserts a new user row and fills the generated fields on
// the passed model. A unique violation on telegram_id or referral_code
// is reported as ErrAlreadyExists.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query, args, err := squirrel.
		Insert("users").
		SetMap(map[string]interface{}{
			"telegram_id":   user.TelegramID,
			"username":      user.Username,
			"first_name":    user.FirstName,
			"balance":       user.Balance,
			"referral_code": user.ReferralCode,
		}).
		Suffix("RETURNING id, balance, card_ordered, card_activated, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user insert query: %w", err)
	}

	var row struct {
		ID            int64           `db:"id"`
		Balance       decimal.Decimal `db:"balance"`
		CardOrdered   bool            `db:"card_ordered"`
		CardActivated bool            `db:"card_activated"`
		CreatedAt     time.Time       `db:"created_at"`
		UpdatedAt     time.Time       `db:"updated_at"`
	}

	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	user.ID = row.ID
	user.Balance = row.Balance
	user.CardOrdered = row.CardOrdered
	user.CardActivated = row.CardActivated
	user.CreatedAt = row.CreatedAt
	user.UpdatedAt = row.UpdatedAt

	return nil
}

// ActivateCard credits the bonus and flips card_activated in a single
// conditional update, so at most one concurrent caller wins. The new
// balance is returned on success; on ErrAlreadyActivated the returned
// balance is the current one, uncredited.
func (r *Repository) ActivateCard(ctx context.Context, telegramID int64, bonus decimal.Decimal) (decimal.Decimal, error) {
	query, args, err := squirrel.
		Update("users").
		Set("balance", squirrel.Expr("balance + ?", bonus)).
		Set("card_activated", true).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{
			"telegram_id":    telegramID,
			"card_activated": false,
		}).
		Suffix("RETURNING balance").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build activation query: %w", err)
	}

	var balance decimal.Decimal
	err = r.db.GetContext(ctx, &balance, query, args...)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("failed to activate card: %w", err)
	}

	// No row matched: either the user is unknown or a concurrent call
	// already flipped the flag.
	user, getErr := r.GetUserByTelegramID(ctx, telegramID)
	if getErr != nil {
		return decimal.Zero, getErr
	}

	return user.Balance, ErrAlreadyActivated
}
