package http_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/prestigesms/sms-console/internal/console/domain"
)

func TestHandleWebhook_Accepted(t *testing.T) {
	f := newRouterFixture()
	raw := []byte(`{"data":{"event_type":"message.received","payload":{"from":{"phone_number":"+36201234567"},"to":[{"phone_number":"+36204515510"}],"text":"hi"}}}`)
	f.processor.On("Process", mock.Anything, raw).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	f.processor.AssertExpectations(t)
}

func TestHandleWebhook_NoAuthRequired(t *testing.T) {
	// The provider cannot carry a session cookie; /webhook must accept without one.
	f := newRouterFixture()
	f.processor.On("Process", mock.Anything, mock.Anything).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleWebhook_BadPayload(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{name: "missing phone numbers", err: domain.ErrMissingPhoneNumbers},
		{name: "malformed body", err: fmt.Errorf("%w: bad json", domain.ErrMalformedEvent)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newRouterFixture()
			f.processor.On("Process", mock.Anything, mock.Anything).Return(tc.err).Once()

			req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader([]byte(`{}`)))
			rec := httptest.NewRecorder()
			f.handler.ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Invalid payload")
		})
	}
}

func TestHandleWebhook_ProcessingFailure(t *testing.T) {
	f := newRouterFixture()
	f.processor.On("Process", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	// 500 invites the provider to redeliver.
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error processing webhook")
}
