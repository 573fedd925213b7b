package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
)

// Response is the JSON envelope of every API response.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// Error is the error body of an API response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

const (
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeParentNotFound = "PARENT_NOT_FOUND"
	ErrCodeItemNotFound   = "ITEM_NOT_FOUND"
	ErrCodeCyclicMove     = "CYCLIC_MOVE"
	ErrCodeInvalidMove    = "INVALID_MOVE_OPERATION"
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

func badRequest(msg string) *Error {
	return &Error{Code: ErrCodeBadRequest, Message: msg, Status: http.StatusBadRequest}
}

// mapError translates domain errors into API errors.
func mapError(err error) *Error {
	var apiErr *Error
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, project.ErrParentNotFound):
		return &Error{Code: ErrCodeParentNotFound, Message: err.Error(), Status: http.StatusNotFound}
	case errors.Is(err, project.ErrProjectNotFound):
		return &Error{Code: ErrCodeNotFound, Message: err.Error(), Status: http.StatusNotFound}
	case errors.Is(err, project.ErrItemNotFound):
		return &Error{Code: ErrCodeItemNotFound, Message: err.Error(), Status: http.StatusNotFound}
	case errors.Is(err, project.ErrCyclicMove):
		return &Error{Code: ErrCodeCyclicMove, Message: err.Error(), Status: http.StatusConflict}
	case errors.Is(err, project.ErrInvalidMoveOperation):
		return &Error{Code: ErrCodeInvalidMove, Message: err.Error(), Status: http.StatusBadRequest}
	case errors.Is(err, project.ErrInvalidInput):
		return badRequest(err.Error())
	default:
		return &Error{Code: ErrCodeInternal, Message: "internal error", Status: http.StatusInternalServerError}
	}
}

// WriteJSON writes data wrapped in the response envelope.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Data: data})
}

// WriteError writes err as an error envelope. Unmapped errors are logged and
// reported as internal errors.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	apiErr := mapError(err)
	if apiErr.Status >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed", "error", err)
	}
	writeJSON(w, apiErr.Status, Response{Error: apiErr})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeBody(r *http.Request, out any) error {
	if r.Body == nil {
		return badRequest("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return badRequest("request body is required")
		}
		return badRequest("invalid JSON body: " + err.Error())
	}
	return nil
}
