package task

import (
	"context"

	"personal-ops-assistant/internal/model"
)

// UseCase defines the business logic interface for the task domain.
type UseCase interface {
	// CreateTask stores a new task; the priority is normalized from the text.
	CreateTask(ctx context.Context, sc model.Scope, input CreateTaskInput) (model.Task, error)

	// ListTop returns the top open tasks ordered by priority, then age.
	ListTop(ctx context.Context, sc model.Scope) ([]model.Task, error)

	// ListToday returns tasks created today plus today's calendar events.
	ListToday(ctx context.Context, sc model.Scope) (TodayOutput, error)

	// MarkDone marks the task with the given listing reference as done.
	MarkDone(ctx context.Context, sc model.Scope, ref string) (model.Task, error)

	// CreateEvent parses raw event text and schedules a calendar event,
	// optionally creating a linked task.
	CreateEvent(ctx context.Context, sc model.Scope, input CreateEventInput) (CreateEventOutput, error)

	// ComposeBriefing builds the owner's daily briefing text.
	ComposeBriefing(ctx context.Context, sc model.Scope) (string, error)
}
