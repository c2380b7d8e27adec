package provider

import "context"

// SendRequest carries the outbound message handed to the provider.
type SendRequest struct {
	From string
	To   string
	Text string
}

// SendResult is what the provider reports back on acceptance.
// ProviderMessageID may be empty; not every acceptance carries one.
type SendResult struct {
	ProviderMessageID string
}

// SMSSenderProvider is the gateway used for the single synchronous send call
// in the outbound pipeline.
type SMSSenderProvider interface {
	Send(ctx context.Context, req SendRequest) (*SendResult, error)
	Name() string
}
