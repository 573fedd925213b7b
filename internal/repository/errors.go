package repository

import "errors"

var (
	// ErrNotFound is returned when a requested snapshot doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when stored data cannot be decoded
	ErrInvalidInput = errors.New("invalid input")
)
