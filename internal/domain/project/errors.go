package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrParentNotFound indicates the requested parent project doesn't exist.
	ErrParentNotFound = errors.New("parent project not found")
	// ErrItemNotFound indicates the item doesn't exist within the project.
	ErrItemNotFound = errors.New("project item not found")
	// ErrCyclicMove indicates a move would place a project under itself or a descendant.
	ErrCyclicMove = errors.New("project cannot be moved under itself or a descendant")
	// ErrInvalidMoveOperation indicates an unknown move operation.
	ErrInvalidMoveOperation = errors.New("invalid move operation")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
)

// ErrInconsistentHierarchy indicates a violated path, level, children or counter invariant.
var ErrInconsistentHierarchy = errors.New("inconsistent project hierarchy")
