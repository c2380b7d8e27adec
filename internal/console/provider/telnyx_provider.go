package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// TelnyxProvider sends SMS through the Telnyx v2 messages API.
type TelnyxProvider struct {
	logger     *slog.Logger
	httpClient *http.Client
	apiURL     string
	apiKey     string
}

// NewTelnyxProvider creates a TelnyxProvider. apiURL is the API base
// (e.g. "https://api.telnyx.com/v2"); pass a nil httpClient for a default
// with a 10s timeout.
func NewTelnyxProvider(logger *slog.Logger, apiURL, apiKey string, httpClient *http.Client) *TelnyxProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &TelnyxProvider{
		logger:     logger.With("provider", "telnyx"),
		httpClient: httpClient,
		apiURL:     strings.TrimRight(apiURL, "/"),
		apiKey:     apiKey,
	}
}

// telnyxSendRequestBody is the payload for POST /messages. Telnyx resolves the
// messaging profile from the 'from' number itself.
type telnyxSendRequestBody struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

type telnyxSendSuccessResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type telnyxErrorResponse struct {
	Errors []telnyxErrorDetail `json:"errors"`
	// Some failure shapes carry a bare message instead of an error list.
	Message string `json:"message"`
}

type telnyxErrorDetail struct {
	Code   string `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (p *TelnyxProvider) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	p.logger.InfoContext(ctx, "TelnyxProvider: Send called", "from", req.From, "to", req.To)

	reqBytes, err := json.Marshal(telnyxSendRequestBody{From: req.From, To: req.To, Text: req.Text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request for Telnyx: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL+"/messages", bytes.NewBuffer(reqBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request for Telnyx: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to reach Telnyx", "error", err, "to", req.To)
		return nil, &TransportError{Err: err}
	}
	defer httpResp.Body.Close()

	respBodyBytes, readErr := io.ReadAll(httpResp.Body)
	if readErr != nil {
		p.logger.ErrorContext(ctx, "Failed to read Telnyx response body", "status_code", httpResp.StatusCode, "error", readErr)
		return nil, &TransportError{Err: fmt.Errorf("reading response body (status %d): %w", httpResp.StatusCode, readErr)}
	}
	p.logger.DebugContext(ctx, "Received HTTP response from Telnyx", "status_code", httpResp.StatusCode, "body", string(respBodyBytes))

	if httpResp.StatusCode >= 200 && httpResp.StatusCode < 300 {
		var success telnyxSendSuccessResponse
		if err := json.Unmarshal(respBodyBytes, &success); err != nil {
			// Accepted by the provider even if we cannot read the envelope;
			// the correlation ID is simply unavailable.
			p.logger.WarnContext(ctx, "Telnyx accepted the message but the response body was unparseable",
				"status_code", httpResp.StatusCode, "error", err)
			return &SendResult{}, nil
		}
		p.logger.InfoContext(ctx, "SMS submitted to Telnyx", "provider_message_id", success.Data.ID, "to", req.To)
		return &SendResult{ProviderMessageID: success.Data.ID}, nil
	}

	apiErr := &APIError{StatusCode: httpResp.StatusCode, RawBody: string(respBodyBytes)}
	var errResp telnyxErrorResponse
	if err := json.Unmarshal(respBodyBytes, &errResp); err == nil {
		if len(errResp.Errors) > 0 {
			first := errResp.Errors[0]
			apiErr.Code = first.Code
			apiErr.Title = first.Title
			apiErr.Detail = first.Detail
		} else if errResp.Message != "" {
			apiErr.Detail = errResp.Message
		}
	}
	p.logger.WarnContext(ctx, "Telnyx rejected the message",
		"status_code", httpResp.StatusCode, "code", apiErr.Code, "detail", apiErr.Detail, "to", req.To)
	return nil, apiErr
}

func (p *TelnyxProvider) Name() string {
	return "telnyx"
}
