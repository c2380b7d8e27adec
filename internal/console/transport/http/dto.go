package http

// SendMessageRequest is the body of POST /send.
type SendMessageRequest struct {
	FromNumber     string `json:"from_number"`
	ToNumber       string `json:"to_number"`
	MessageContent string `json:"message_content"`
}

// SendErrorResponse carries the classified failure plus both endpoints so the
// caller can display unambiguous context.
type SendErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
}

// SuccessResponse is the generic {success, message} acknowledgment.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SaveContactRequest is the body of POST /api/contact.
type SaveContactRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Name  string `json:"name"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	PIN string `json:"pin" validate:"required"`
}

type GenericErrorResponse struct {
	Error string `json:"error"`
}
