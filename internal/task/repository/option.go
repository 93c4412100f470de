package repository

import (
	"time"

	"personal-ops-assistant/internal/model"
)

// CreateTaskOptions is the input for Repository.CreateTask.
type CreateTaskOptions struct {
	OwnerID       string
	Title         string
	Priority      model.PriorityLevel
	Source        model.TaskSource
	SourceRef     string
	LinkedEventID string
}

// ListTasksOptions filters and orders task listings.
type ListTasksOptions struct {
	OwnerID string
	Status  model.TaskStatus // empty means any status

	// CreatedFrom/CreatedTo bound CreatedAt when both are non-zero.
	CreatedFrom time.Time
	CreatedTo   time.Time

	// ByPriority orders by priority then creation time; otherwise newest first.
	ByPriority bool
	Limit      int
}
