package repository

import (
	"context"
	"errors"

	"personal-ops-assistant/internal/model"
)

// ErrNotFound is returned when the requested task does not exist.
var ErrNotFound = errors.New("task not found")

// Repository is the task store contract.
type Repository interface {
	// CreateTask inserts a task and returns the stored record with its
	// assigned sequence number and UID.
	CreateTask(ctx context.Context, opt CreateTaskOptions) (model.Task, error)

	// ListTasks returns tasks matching the options, ordered per the options.
	ListTasks(ctx context.Context, opt ListTasksOptions) ([]model.Task, error)

	// UpdateStatus sets the status of a task addressed by owner + sequence.
	UpdateStatus(ctx context.Context, ownerID string, seq int64, status model.TaskStatus) (model.Task, error)

	// HasSourceRef reports whether a task with the given source reference
	// already exists for the owner. Used to dedupe email ingestion.
	HasSourceRef(ctx context.Context, ownerID, sourceRef string) (bool, error)
}
