package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"alfacard_miniapp/internal/service"
	"alfacard_miniapp/internal/service/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func postActivation(router http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/card/activate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestActivateCard_Success(t *testing.T) {
	us := &mocks.MockUserService{}
	us.On("ActivateCard", mock.Anything, int64(123)).
		Return(decimal.RequireFromString("500.00"), nil)

	router := newTestRouter(us)
	w := postActivation(router, `{"telegram_id":123}`)

	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(500), body["balance"])
	assert.Equal(t, float64(500), body["bonus"])

	us.AssertExpectations(t)
}

func TestActivateCard_AlreadyActivated(t *testing.T) {
	us := &mocks.MockUserService{}
	us.On("ActivateCard", mock.Anything, int64(123)).
		Return(decimal.RequireFromString("500.00"), service.ErrCardAlreadyActivated)

	router := newTestRouter(us)
	w := postActivation(router, `{"telegram_id":123}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Card already activated", body["error"])
	assert.Equal(t, float64(500), body["balance"])
}

func TestActivateCard_UserNotFound(t *testing.T) {
	us := &mocks.MockUserService{}
	us.On("ActivateCard", mock.Anything, int64(999)).
		Return(decimal.Zero, service.ErrUserNotFound)

	router := newTestRouter(us)
	w := postActivation(router, `{"telegram_id":999}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decodeBody(t, w)["error"])
}

func TestActivateCard_MissingTelegramID(t *testing.T) {
	us := &mocks.MockUserService{}

	router := newTestRouter(us)

	for _, body := range []string{`{}`, ``, `{"telegram_id":0}`, `not json`} {
		w := postActivation(router, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		assert.Equal(t, "telegram_id is required", decodeBody(t, w)["error"])
	}

	us.AssertNotCalled(t, "ActivateCard")
}

func TestActivateCard_StoreFailure(t *testing.T) {
	us := &mocks.MockUserService{}
	us.On("ActivateCard", mock.Anything, int64(123)).
		Return(decimal.Zero, assert.AnError)

	router := newTestRouter(us)
	w := postActivation(router, `{"telegram_id":123}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeBody(t, w)["error"])
}
