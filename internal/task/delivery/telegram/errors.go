package telegram

import (
	"errors"

	"personal-ops-assistant/internal/command"
	"personal-ops-assistant/internal/task"
	"personal-ops-assistant/pkg/timeparse"
)

// userMessage converts an error into the chat reply shown to the user.
// Parse and validation errors carry their own descriptive text; anything
// else gets a generic message so internals never leak into chat.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var parseErr *timeparse.ParseError
	var validationErr *timeparse.ValidationError
	switch {
	case errors.As(err, &parseErr),
		errors.As(err, &validationErr),
		errors.Is(err, command.ErrNoTime),
		errors.Is(err, command.ErrEmptyEvent),
		errors.Is(err, task.ErrEmptyInput),
		errors.Is(err, task.ErrBadReference),
		errors.Is(err, task.ErrNotFound),
		errors.Is(err, task.ErrNoCalendar):
		return "⚠️ " + err.Error()
	}
	return "Something went wrong handling that. Please try again."
}
