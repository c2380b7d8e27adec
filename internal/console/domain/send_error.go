package domain

import "fmt"

// SendFailureReason is a machine-checkable classification of a send failure.
type SendFailureReason string

const (
	SendFailureMissingFields       SendFailureReason = "missing_fields"
	SendFailureInvalidDestination  SendFailureReason = "invalid_destination_format"
	SendFailureInvalidSource       SendFailureReason = "invalid_source_format"
	SendFailureProviderRejected    SendFailureReason = "provider_rejected"
	SendFailureProviderUnreachable SendFailureReason = "provider_unreachable"
	SendFailureInternal            SendFailureReason = "internal"
)

// SendError carries everything a caller needs to display an unambiguous send
// failure: the classified reason, a user-facing message (possibly a multi-line
// actionable explanation for known provider errors), the raw detail, both
// endpoints, and the HTTP status to respond with.
type SendError struct {
	Reason     SendFailureReason
	Message    string
	Details    string
	From       string
	To         string
	HTTPStatus int
}

func (e *SendError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("send failed (%s): %s", e.Reason, e.Details)
	}
	return fmt.Sprintf("send failed (%s): %s", e.Reason, e.Message)
}

// IsValidation reports whether the failure was rejected before the provider
// call was attempted.
func (e *SendError) IsValidation() bool {
	switch e.Reason {
	case SendFailureMissingFields, SendFailureInvalidDestination, SendFailureInvalidSource:
		return true
	}
	return false
}
