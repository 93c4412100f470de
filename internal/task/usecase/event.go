package usecase

import (
	"context"
	"personal-ops-assistant/internal/command"
	"personal-ops-assistant/internal/model"
	"personal-ops-assistant/internal/task"
	"personal-ops-assistant/internal/task/repository"
	"personal-ops-assistant/pkg/gcalendar"
)

// CreateEvent parses raw event text and schedules it on the calendar.
// On an attendee-related rejection the event is retried once without
// attendees. A "task:" field creates a task linked to the created event.
func (uc *implUseCase) CreateEvent(ctx context.Context, sc model.Scope, input task.CreateEventInput) (task.CreateEventOutput, error) {
	req, err := command.ParseEventRequest(input.RawText, uc.resolver, uc.resolver.Now)
	if err != nil {
		return task.CreateEventOutput{}, err
	}

	if uc.calendar == nil {
		return task.CreateEventOutput{}, task.ErrNoCalendar
	}

	calReq := gcalendar.CreateEventRequest{
		CalendarID:  uc.calendarID,
		Summary:     req.Title,
		Description: req.Description,
		Location:    eventLocation(req),
		Attendees:   req.Invitees,
		StartTime:   req.StartLocal,
		EndTime:     req.EndLocal,
		Timezone:    uc.resolver.Location().String(),
	}

	out := task.CreateEventOutput{Request: req}

	created, err := uc.calendar.CreateEvent(ctx, calReq)
	if err != nil && len(calReq.Attendees) > 0 && gcalendar.IsAttendeeError(err) {
		uc.l.Warnf(ctx, "CreateEvent: attendees rejected, retrying without: %v", err)
		calReq.Attendees = nil
		out.AttendeesDropped = true
		created, err = uc.calendar.CreateEvent(ctx, calReq)
	}
	if err != nil {
		return task.CreateEventOutput{}, err
	}

	out.EventID = created.ID
	out.EventLink = created.HtmlLink
	uc.l.Infof(ctx, "CreateEvent: %q at %s eventID=%s", req.Title, req.StartLocal, created.ID)

	if req.LinkedTaskTitle != "" {
		linked, taskErr := uc.repo.CreateTask(ctx, repository.CreateTaskOptions{
			OwnerID:       sc.OwnerID,
			Title:         req.LinkedTaskTitle,
			Priority:      command.NormalizePriority(req.LinkedTaskTitle),
			Source:        model.TaskSourceChat,
			LinkedEventID: created.ID,
		})
		if taskErr != nil {
			uc.l.Errorf(ctx, "CreateEvent: linked task creation failed (non-fatal): %v", taskErr)
		} else {
			out.LinkedTask = &linked
		}
	}

	return out, nil
}

// eventLocation composes the calendar location from the loc and addr fields.
func eventLocation(req model.EventRequest) string {
	switch {
	case req.Location != "" && req.Address != "":
		return req.Location + ", " + req.Address
	case req.Address != "":
		return req.Address
	default:
		return req.Location
	}
}
