package api

import (
	"errors"
	"net/http"

	"alfacard_miniapp/internal/service"
	"alfacard_miniapp/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type activationRoutes struct {
	us service.UserServiceI
}

func NewActivationRoutes(handler *gin.RouterGroup, us service.UserServiceI) {
	r := &activationRoutes{us: us}
	handler.POST("/card/activate", r.ActivateCard)
}

type ActivateCardRequest struct {
	TelegramID int64 `json:"telegram_id"`
}

type ActivateCardResponse struct {
	Success bool    `json:"success"`
	Balance float64 `json:"balance"`
	Bonus   int     `json:"bonus"`
}

func (r *activationRoutes) ActivateCard(c *gin.Context) {
	log := logger.Logger()

	var req ActivateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TelegramID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "telegram_id is required"})
		return
	}

	balance, err := r.us.ActivateCard(c.Request.Context(), req.TelegramID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, service.ErrCardAlreadyActivated):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Card already activated",
				"balance": balance.InexactFloat64(),
			})
		default:
			log.Error("failed to activate card",
				zap.Int64("telegram_id", req.TelegramID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	log.Info("card activated",
		zap.Int64("telegram_id", req.TelegramID))

	c.JSON(http.StatusOK, ActivateCardResponse{
		Success: true,
		Balance: balance.InexactFloat64(),
		Bonus:   int(service.CardBonus.IntPart()),
	})
}
