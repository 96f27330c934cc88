package api

import (
	"net/http"

	"alfacard_miniapp/internal/bot"
	"alfacard_miniapp/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type webhookRoutes struct {
	bot *bot.Service
}

func NewWebhookRoutes(handler *gin.RouterGroup, b *bot.Service) {
	r := &webhookRoutes{bot: b}
	handler.POST("/bot/webhook", r.HandleUpdate)
}

// HandleUpdate always acknowledges the platform with 200 so Telegram
// does not retry delivery, whatever happens with the update itself.
func (r *webhookRoutes) HandleUpdate(c *gin.Context) {
	log := logger.Logger()

	body, err := c.GetRawData()
	if err != nil {
		log.Warn("failed to read webhook body", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	update, err := bot.DecodeUpdate(body)
	if err != nil {
		log.Warn("failed to decode webhook update", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	r.bot.HandleUpdate(c.Request.Context(), update)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
