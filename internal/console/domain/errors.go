package domain

import "errors"

var (
	// ErrContactNotFound is returned when a contact lookup or delete matches no row.
	ErrContactNotFound = errors.New("contact not found")

	// ErrMessageNotFound is returned when a message lookup matches no row.
	ErrMessageNotFound = errors.New("message not found")

	// ErrMissingPhoneNumbers marks an inbound-message webhook whose payload
	// lacks the sender or recipient number.
	ErrMissingPhoneNumbers = errors.New("webhook payload missing phone numbers")

	// ErrMalformedEvent marks a webhook body that could not be decoded at all.
	ErrMalformedEvent = errors.New("malformed webhook event")
)
