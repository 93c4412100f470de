package usecase

import (
	"context"
	"time"

	"personal-ops-assistant/internal/model"
	"personal-ops-assistant/internal/task"
	"personal-ops-assistant/internal/task/repository"
	"personal-ops-assistant/pkg/gcalendar"
)

// topLimit caps the "top" listing.
const topLimit = 5

// ListTop returns the top open tasks ordered by priority then age.
func (uc *implUseCase) ListTop(ctx context.Context, sc model.Scope) ([]model.Task, error) {
	return uc.repo.ListTasks(ctx, repository.ListTasksOptions{
		OwnerID:    sc.OwnerID,
		Status:     model.TaskStatusOpen,
		ByPriority: true,
		Limit:      topLimit,
	})
}

// ListToday returns tasks created today plus today's calendar events,
// both computed against the reference timezone.
func (uc *implUseCase) ListToday(ctx context.Context, sc model.Scope) (task.TodayOutput, error) {
	now := uc.resolver.Now()
	loc := uc.resolver.Location()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	tasks, err := uc.repo.ListTasks(ctx, repository.ListTasksOptions{
		OwnerID:     sc.OwnerID,
		Status:      model.TaskStatusOpen,
		CreatedFrom: dayStart,
		CreatedTo:   dayEnd,
		ByPriority:  true,
	})
	if err != nil {
		return task.TodayOutput{}, err
	}

	out := task.TodayOutput{Tasks: tasks}

	// Calendar unavailability degrades the view, it does not fail it.
	if uc.calendar != nil {
		events, listErr := uc.calendar.ListEvents(ctx, gcalendar.ListEventsRequest{
			CalendarID: uc.calendarID,
			TimeMin:    dayStart,
			TimeMax:    dayEnd,
		})
		if listErr != nil {
			uc.l.Warnf(ctx, "ListToday: calendar listing failed (non-fatal): %v", listErr)
		}
		for _, ev := range events {
			out.Events = append(out.Events, task.AgendaEvent{
				Summary:  ev.Summary,
				Start:    ev.StartTime.In(loc).Format("15:04"),
				Location: ev.Location,
			})
		}
	}

	return out, nil
}
