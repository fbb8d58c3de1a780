package sdk

import (
	"encoding/json"
	"net/http"

	"github.com/ethanbaker/api/pkg/api_types"
	"github.com/ethanbaker/til/pkg/facts"
)

// ApiResponse represents a standard API response structure
type ApiResponse[T any] struct {
	Status  api_types.StatusType `json:"status"`          // Status message
	Code    int                  `json:"code"`            // Status code
	Message string               `json:"message"`         // Human-readable message
	Data    T                    `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any                  `json:"error,omitempty"` // Optional errors field for error responses
}

// AsGinResponse converts the ApiResponse to a format suitable for Gin framework
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

// AsJSON converts the ApiResponse to a JSON string
func (r ApiResponse[T]) AsJSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func NewSuccess(message string) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  api_types.StatusSuccess,
		Code:    http.StatusOK,
		Message: message,
	}
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  api_types.StatusSuccess,
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	}
}

func NewCreatedResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  api_types.StatusSuccess,
		Code:    http.StatusCreated,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	// Plain errors marshal to {}, so send their text instead
	if e, ok := err.(error); ok {
		err = e.Error()
	}

	return ApiResponse[any]{
		Status:  api_types.StatusError,
		Code:    code,
		Message: message,
		Error:   err,
	}
}

/** Requests */

// CreateFactRequest is the body of POST /api/facts
type CreateFactRequest = facts.Draft

// UpdateFactRequest is the body of PATCH /api/facts/:id. It holds exactly one counter
// and the value to set it to, e.g. {"votesMindBlowing": 10}
type UpdateFactRequest map[string]int

// NewUpdateFactRequest builds an update body for a single counter
func NewUpdateFactRequest(counter facts.Counter, value int) UpdateFactRequest {
	return UpdateFactRequest{string(counter): value}
}

// Counter returns the single counter and value in the request
func (r UpdateFactRequest) Counter() (facts.Counter, int, error) {
	if len(r) != 1 {
		return "", 0, facts.ErrInvalidCounter
	}

	for name, value := range r {
		counter := facts.Counter(name)
		if !counter.Valid() {
			return "", 0, facts.ErrInvalidCounter
		}
		return counter, value, nil
	}

	return "", 0, facts.ErrInvalidCounter
}

/** Responses */

// FactListResponse is the payload of GET /api/facts
type FactListResponse struct {
	Facts    []facts.Fact `json:"facts"`
	Category string       `json:"category"`
	Count    int          `json:"count"`
}
