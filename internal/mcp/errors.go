package mcp

import (
	"errors"
	"fmt"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, project.ErrParentNotFound):
		return &APIError{Code: "PARENT_NOT_FOUND", Message: err.Error(), RecoveryHint: "Omit parent_id to create a root project, or list_projects to find the parent"}
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: err.Error(), RecoveryHint: "Check ID spelling or call search_projects"}
	case errors.Is(err, project.ErrItemNotFound):
		return &APIError{Code: "ITEM_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call get_project to list item IDs"}
	case errors.Is(err, project.ErrCyclicMove):
		return &APIError{Code: "CYCLIC_MOVE", Message: err.Error(), RecoveryHint: "Pick a target outside the moved project's subtree"}
	case errors.Is(err, project.ErrInvalidMoveOperation):
		return &APIError{Code: "INVALID_MOVE_OPERATION", Message: err.Error(), RecoveryHint: "Use move_into, move_before or move_after"}
	case errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
