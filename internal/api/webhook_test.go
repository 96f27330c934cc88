package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"alfacard_miniapp/internal/bot"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newWebhookRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// no API credential and no user directory: dispatch-only mode
	b := bot.NewService(nil, nil, nil, bot.Config{
		WebAppURL:       "https://app.example.com/",
		CardOrderURL:    "https://alfa.me/ASQWHN",
		ReferralLinkFmt: "https://alfacard.promo/ref/%s",
	})

	a := router.Group("/api/v1")
	NewWebhookRoutes(a, b)

	return router
}

func postWebhook(router http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bot/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestWebhook_AlwaysAcknowledges(t *testing.T) {
	router := newWebhookRouter()

	tests := []struct {
		name string
		body string
	}{
		{"start command", `{"update_id":1,"message":{"text":"/start","chat":{"id":42},"from":{"id":42,"first_name":"Ann"}}}`},
		{"known callback", `{"update_id":2,"callback_query":{"id":"cb","data":"help","from":{"id":42},"message":{"chat":{"id":42}}}}`},
		{"unknown callback", `{"update_id":3,"callback_query":{"id":"cb","data":"bogus","from":{"id":42},"message":{"chat":{"id":42}}}}`},
		{"empty update", `{"update_id":4}`},
		{"start without chat", `{"update_id":5,"message":{"text":"/start"}}`},
		{"malformed body", `{not json at all`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postWebhook(router, tt.body)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, true, decodeBody(t, w)["ok"])
		})
	}
}
