package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/prestigesms/sms-console/internal/console/domain"
)

func TestHandleSend_Success(t *testing.T) {
	f := newRouterFixture()
	f.sender.On("Send", mock.Anything, "+36204515510", "+36201234567", "hello").
		Return(nil).Once()

	body := `{"from_number":"+36204515510","to_number":"+36201234567","message_content":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(body))
	req.AddCookie(f.authCookie())
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "SMS sent successfully", resp["message"])
	f.sender.AssertExpectations(t)
}

func TestHandleSend_RequiresAuth(t *testing.T) {
	f := newRouterFixture()

	body := `{"from_number":"+36204515510","to_number":"+36201234567","message_content":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleSend_ValidationFailure(t *testing.T) {
	f := newRouterFixture()
	f.sender.On("Send", mock.Anything, "+36204515510", "12345", "hello").
		Return(&domain.SendError{
			Reason:     domain.SendFailureInvalidDestination,
			Message:    "Invalid destination number format. Must include country code (e.g., +923156780274)",
			HTTPStatus: http.StatusBadRequest,
		}).Once()

	body := `{"from_number":"+36204515510","to_number":"12345","message_content":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(body))
	req.AddCookie(f.authCookie())
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid destination number format. Must include country code (e.g., +923156780274)", resp["error"])
	// Validation failures are a bare error, no details or endpoints.
	assert.NotContains(t, resp, "details")
	assert.NotContains(t, resp, "from")
}

func TestHandleSend_ProviderFailureCarriesContext(t *testing.T) {
	f := newRouterFixture()
	f.sender.On("Send", mock.Anything, "+36204515510", "+36201234567", "hello").
		Return(&domain.SendError{
			Reason:     domain.SendFailureProviderRejected,
			Message:    "Insufficient balance in Telnyx account. Please add credits.",
			Details:    "Telnyx API Error: Account has insufficient funds",
			From:       "+36204515510",
			To:         "+36201234567",
			HTTPStatus: http.StatusPaymentRequired,
		}).Once()

	body := `{"from_number":"+36204515510","to_number":"+36201234567","message_content":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(body))
	req.AddCookie(f.authCookie())
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	// The provider's reported status passes through.
	require.Equal(t, http.StatusPaymentRequired, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Insufficient balance in Telnyx account. Please add credits.", resp["error"])
	assert.Equal(t, "Telnyx API Error: Account has insufficient funds", resp["details"])
	assert.Equal(t, "+36204515510", resp["from"])
	assert.Equal(t, "+36201234567", resp["to"])
}

func TestHandleSend_BadPayload(t *testing.T) {
	f := newRouterFixture()

	req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(`{broken`))
	req.AddCookie(f.authCookie())
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request payload")
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleMessages(t *testing.T) {
	f := newRouterFixture()
	f.directory.On("Messages", mock.Anything, "+36201234567").
		Return([]*domain.Message{
			{ID: "m1", From: "+36201234567", To: "+36204515510", Direction: domain.DirectionInbound},
			{ID: "m2", From: "+36204515510", To: "+36201234567", Direction: domain.DirectionOutbound},
		}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/messages/+36201234567", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "inbound", resp[0]["direction"])
	assert.Equal(t, "outbound", resp[1]["direction"])
}

func TestHandleMessages_EmptyHistoryIsEmptyArray(t *testing.T) {
	f := newRouterFixture()
	f.directory.On("Messages", mock.Anything, "+36209999999").Return(nil, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/messages/+36209999999", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestHandleMessages_StorageFailure(t *testing.T) {
	f := newRouterFixture()
	f.directory.On("Messages", mock.Anything, mock.Anything).
		Return(nil, assert.AnError).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/messages/+36201234567", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to fetch messages")
}
