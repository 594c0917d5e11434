package dto

// ErrorResponse is the JSON error envelope returned by all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON confirmation envelope for operations with
// no payload beyond a human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}
