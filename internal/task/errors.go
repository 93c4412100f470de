package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrEmptyInput   = errors.New("input text is empty")
	ErrBadReference = errors.New("task reference is not a number")
	ErrNotFound     = errors.New("task not found")
	ErrNoCalendar   = errors.New("calendar is not configured")
)
