package task

import "personal-ops-assistant/internal/model"

// CreateTaskInput is the input for creating a single task from chat text.
// The priority is normalized out of the raw text.
type CreateTaskInput struct {
	Text   string
	Source model.TaskSource
}

// CreateEventInput carries the raw event command payload.
type CreateEventInput struct {
	RawText string
}

// CreateEventOutput is the result of scheduling a calendar event.
type CreateEventOutput struct {
	Request          model.EventRequest
	EventID          string
	EventLink        string
	AttendeesDropped bool // set when the event was retried without attendees
	LinkedTask       *model.Task
}

// TodayOutput is the combined today view: tasks created today and the
// owner's calendar events for the day.
type TodayOutput struct {
	Tasks  []model.Task
	Events []AgendaEvent
}

// AgendaEvent is a calendar event as shown in listings and briefings.
type AgendaEvent struct {
	Summary  string
	Start    string // local "15:04"
	Location string
}
