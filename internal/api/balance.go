package api

import (
	"net/http"
	"strconv"

	"alfacard_miniapp/internal/service"
	"alfacard_miniapp/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

const defaultFirstName = "Гость"

type balanceRoutes struct {
	us service.UserServiceI
}

func NewBalanceRoutes(handler *gin.RouterGroup, us service.UserServiceI) {
	r := &balanceRoutes{us: us}
	handler.GET("/balance", r.GetBalance)
}

type BalanceResponse struct {
	TelegramID    int64   `json:"telegram_id"`
	Balance       float64 `json:"balance"`
	CardOrdered   bool    `json:"card_ordered"`
	CardActivated bool    `json:"card_activated"`
	ReferralCode  string  `json:"referral_code"`
	FirstName     string  `json:"first_name"`
}

func (r *balanceRoutes) GetBalance(c *gin.Context) {
	log := logger.Logger()

	telegramID := c.Query("telegram_id")
	if telegramID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "telegram_id is required"})
		return
	}

	id, err := strconv.ParseInt(telegramID, 10, 64)
	if err != nil {
		log.Info("failed to parse telegram_id", zap.String("telegram_id", telegramID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid telegram_id"})
		return
	}

	username := c.Query("username")
	firstName := c.DefaultQuery("first_name", defaultFirstName)

	user, err := r.us.GetOrCreateUser(c.Request.Context(), id, username, firstName)
	if err != nil {
		log.Error("failed to get or create user",
			zap.Int64("telegram_id", id),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	name := user.FirstName
	if name == "" {
		name = firstName
	}

	c.JSON(http.StatusOK, BalanceResponse{
		TelegramID:    user.TelegramID,
		Balance:       user.Balance.InexactFloat64(),
		CardOrdered:   user.CardOrdered,
		CardActivated: user.CardActivated,
		ReferralCode:  user.ReferralCode,
		FirstName:     name,
	})
}
