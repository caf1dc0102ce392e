package model

import "errors"

// Platform errors. Callers match them with errors.Is.
var (
	// ErrHandleInvalid is returned for an empty, too long or whitespace-containing handle
	ErrHandleInvalid = errors.New("invalid handle")

	// ErrHandleConflict is returned when a handle is already used by a live account
	ErrHandleConflict = errors.New("handle already exists")

	ErrAccountNotFound = errors.New("account not found")
	ErrPostNotFound    = errors.New("post not found")

	// ErrPostInvalid is returned for an empty message or one over MaxMessageLength
	ErrPostInvalid = errors.New("invalid post message")

	// ErrNotActionable is returned when an operation is illegal for the post variant
	ErrNotActionable = errors.New("operation not allowed for this post")
)
