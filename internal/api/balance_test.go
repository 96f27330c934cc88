package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"alfacard_miniapp/internal/model"
	"alfacard_miniapp/internal/service"
	"alfacard_miniapp/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter(us service.UserServiceI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	a := router.Group("/api/v1")
	NewBalanceRoutes(a, us)
	NewActivationRoutes(a, us)

	return router
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetBalance_NewUser(t *testing.T) {
	us := &mocks.MockUserService{}
	us.On("GetOrCreateUser", mock.Anything, int64(123), "", "Ann").
		Return(&model.User{
			TelegramID:   123,
			FirstName:    "Ann",
			Balance:      decimal.Zero,
			ReferralCode: "AB12CD34",
		}, nil)

	router := newTestRouter(us)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/balance?telegram_id=123&first_name=Ann", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	body := decodeBody(t, w)
	assert.Equal(t, float64(123), body["telegram_id"])
	assert.Equal(t, float64(0), body["balance"])
	assert.Equal(t, false, body["card_ordered"])
	assert.Equal(t, false, body["card_activated"])
	assert.Equal(t, "AB12CD34", body["referral_code"])
	assert.Equal(t, "Ann", body["first_name"])

	us.AssertExpectations(t)
}

func TestGetBalance_DefaultFirstName(t *testing.T) {
	us := &mocks.MockUserService{}
	us.On("GetOrCreateUser", mock.Anything, int64(123), "ann", "Гость").
		Return(&model.User{TelegramID: 123, FirstName: "Гость", ReferralCode: "AB12CD34"}, nil)

	router := newTestRouter(us)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/balance?telegram_id=123&username=ann", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	us.AssertExpectations(t)
}

func TestGetBalance_MissingTelegramID(t *testing.T) {
	us := &mocks.MockUserService{}

	router := newTestRouter(us)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/balance", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "telegram_id is required", decodeBody(t, w)["error"])
	us.AssertNotCalled(t, "GetOrCreateUser")
}

func TestGetBalance_InvalidTelegramID(t *testing.T) {
	us := &mocks.MockUserService{}

	router := newTestRouter(us)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/balance?telegram_id=abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	us.AssertNotCalled(t, "GetOrCreateUser")
}

func TestGetBalance_StoreFailure(t *testing.T) {
	us := &mocks.MockUserService{}
	us.On("GetOrCreateUser", mock.Anything, int64(123), "", "Гость").
		Return(nil, assert.AnError)

	router := newTestRouter(us)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/balance?telegram_id=123", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// fault detail stays in the logs, not in the body
	assert.Equal(t, "internal server error", decodeBody(t, w)["error"])
}

func TestBalance_MethodNotAllowed(t *testing.T) {
	us := &mocks.MockUserService{}

	router := newTestRouter(us)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/balance", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "Method not allowed", decodeBody(t, w)["error"])
}
