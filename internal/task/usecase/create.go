package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"personal-ops-assistant/internal/command"
	"personal-ops-assistant/internal/model"
	"personal-ops-assistant/internal/task"
	"personal-ops-assistant/internal/task/repository"
)

// CreateTask stores a new task from chat or email text. The priority level
// is normalized from the text itself.
func (uc *implUseCase) CreateTask(ctx context.Context, sc model.Scope, input task.CreateTaskInput) (model.Task, error) {
	title := strings.TrimSpace(input.Text)
	if title == "" {
		return model.Task{}, task.ErrEmptyInput
	}

	source := input.Source
	if source == "" {
		source = model.TaskSourceChat
	}

	created, err := uc.repo.CreateTask(ctx, repository.CreateTaskOptions{
		OwnerID:  sc.OwnerID,
		Title:    title,
		Priority: command.NormalizePriority(title),
		Source:   source,
	})
	if err != nil {
		return model.Task{}, err
	}

	uc.l.Infof(ctx, "CreateTask: created #%d %q priority=%d", created.Seq, created.Title, created.Priority)
	return created, nil
}

// MarkDone marks the task with the given listing reference as done.
func (uc *implUseCase) MarkDone(ctx context.Context, sc model.Scope, ref string) (model.Task, error) {
	seq, err := strconv.ParseInt(strings.TrimSpace(ref), 10, 64)
	if err != nil {
		return model.Task{}, task.ErrBadReference
	}

	updated, err := uc.repo.UpdateStatus(ctx, sc.OwnerID, seq, model.TaskStatusDone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Task{}, task.ErrNotFound
		}
		return model.Task{}, err
	}

	uc.l.Infof(ctx, "MarkDone: task #%d %q", updated.Seq, updated.Title)
	return updated, nil
}
