package model

import "time"

// PriorityLevel is the numeric task priority: 1 high, 2 default, 3 low.
type PriorityLevel int

const (
	PriorityHigh    PriorityLevel = 1
	PriorityDefault PriorityLevel = 2
	PriorityLow     PriorityLevel = 3
)

// TaskStatus is the lifecycle state of a task in the store.
type TaskStatus string

const (
	TaskStatusOpen TaskStatus = "open"
	TaskStatusDone TaskStatus = "done"
)

// TaskSource records where a task came from.
type TaskSource string

const (
	TaskSourceChat  TaskSource = "chat"
	TaskSourceEmail TaskSource = "email"
)

// Task represents a task in the store.
type Task struct {
	Seq           int64  // short numeric reference shown in chat listings
	UID           string // stable UUID
	OwnerID       string
	Title         string
	Priority      PriorityLevel
	Status        TaskStatus
	Source        TaskSource
	SourceRef     string // e.g. gmail message ID for ingested tasks
	LinkedEventID string // calendar event ID when created from an event
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
