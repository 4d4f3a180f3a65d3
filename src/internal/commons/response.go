package commons

import "github.com/api-sage/banking-frontend/src/internal/domain"

type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}

// StatusResponse maps a settled action's banner onto the envelope. data is
// always attached so callers can re-render the session.
func StatusResponse[T any](status domain.Status, data T) Response[T] {
	if status.IsError() {
		response := ErrorResponse[T]("request failed", status.Message)
		response.Data = &data
		return response
	}

	return SuccessResponse(status.Message, data)
}
