package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse builds the uniform failure envelope.
func ErrorResponse(message string) Response {
	return Response{
		Success: false,
		Message: message,
	}
}
