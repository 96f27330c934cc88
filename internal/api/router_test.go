package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"alfacard_miniapp/internal/bot"
	"alfacard_miniapp/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newFullRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	b := bot.NewService(nil, nil, nil, bot.Config{
		WebAppURL:       "https://app.example.com/",
		CardOrderURL:    "https://alfa.me/ASQWHN",
		ReferralLinkFmt: "https://alfacard.promo/ref/%s",
	})

	return NewRouter(&mocks.MockUserService{}, b, &fakePinger{}, nil)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newFullRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/card/activate", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}

func TestRouter_BareOptions(t *testing.T) {
	router := newFullRouter()

	// no Access-Control-Request-Method: not a preflight, must still 200
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/balance", nil)
	req.Header.Set("Origin", "https://app.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := newFullRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/balance", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "Method not allowed", decodeBody(t, w)["error"])
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newFullRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nothing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
