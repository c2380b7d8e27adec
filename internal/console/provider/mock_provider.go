package provider

import "context"

// MockProvider is a configurable in-memory provider for tests and local runs.
type MockProvider struct {
	SendFunc func(ctx context.Context, req SendRequest) (*SendResult, error)
	Calls    []SendRequest
}

func (m *MockProvider) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	m.Calls = append(m.Calls, req)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, req)
	}
	return &SendResult{ProviderMessageID: "mock-message-id"}, nil
}

func (m *MockProvider) Name() string {
	return "mock"
}
