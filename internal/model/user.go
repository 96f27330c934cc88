package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID            int64
	TelegramID    int64
	Username      string
	FirstName     string
	Balance       decimal.Decimal
	CardOrdered   bool
	CardActivated bool
	ReferralCode  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
