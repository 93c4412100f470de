package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"personal-ops-assistant/internal/model"
	"personal-ops-assistant/internal/task/repository"
	pkgLog "personal-ops-assistant/pkg/log"
)

const selectColumns = "seq, uid, owner_id, title, priority, status, source, source_ref, linked_event_id, created_at, updated_at"

type implRepository struct {
	db *sql.DB
	l  pkgLog.Logger
}

// New creates a new SQLite-backed task repository.
func New(db *sql.DB, l pkgLog.Logger) repository.Repository {
	return &implRepository{db: db, l: l}
}

func (r *implRepository) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	now := time.Now().UTC()
	uid := uuid.NewString()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (uid, owner_id, title, priority, status, source, source_ref, linked_event_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uid, opt.OwnerID, opt.Title, int(opt.Priority), string(model.TaskStatusOpen),
		string(opt.Source), opt.SourceRef, opt.LinkedEventID, now.Unix(), now.Unix(),
	)
	if err != nil {
		r.l.Errorf(ctx, "sqlite repository: failed to insert task %q: %v", opt.Title, err)
		return model.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to read inserted task id: %w", err)
	}

	return model.Task{
		Seq:           seq,
		UID:           uid,
		OwnerID:       opt.OwnerID,
		Title:         opt.Title,
		Priority:      opt.Priority,
		Status:        model.TaskStatusOpen,
		Source:        opt.Source,
		SourceRef:     opt.SourceRef,
		LinkedEventID: opt.LinkedEventID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (r *implRepository) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE owner_id = ?", selectColumns)
	args := []any{opt.OwnerID}

	if opt.Status != "" {
		query += " AND status = ?"
		args = append(args, string(opt.Status))
	}
	if !opt.CreatedFrom.IsZero() && !opt.CreatedTo.IsZero() {
		query += " AND created_at >= ? AND created_at < ?"
		args = append(args, opt.CreatedFrom.Unix(), opt.CreatedTo.Unix())
	}

	// seq breaks ties between rows created within the same second.
	if opt.ByPriority {
		query += " ORDER BY priority ASC, created_at ASC, seq ASC"
	} else {
		query += " ORDER BY created_at DESC, seq DESC"
	}
	if opt.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opt.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "sqlite repository: failed to list tasks: %v", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *implRepository) UpdateStatus(ctx context.Context, ownerID string, seq int64, status model.TaskStatus) (model.Task, error) {
	now := time.Now().UTC()

	res, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET status = ?, updated_at = ? WHERE owner_id = ? AND seq = ?",
		string(status), now.Unix(), ownerID, seq,
	)
	if err != nil {
		r.l.Errorf(ctx, "sqlite repository: failed to update task %d: %v", seq, err)
		return model.Task{}, fmt.Errorf("failed to update task status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return model.Task{}, repository.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM tasks WHERE owner_id = ? AND seq = ?", selectColumns),
		ownerID, seq,
	)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, repository.ErrNotFound
	}
	return t, err
}

func (r *implRepository) HasSourceRef(ctx context.Context, ownerID, sourceRef string) (bool, error) {
	if strings.TrimSpace(sourceRef) == "" {
		return false, nil
	}
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM tasks WHERE owner_id = ? AND source_ref = ?",
		ownerID, sourceRef,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check source ref: %w", err)
	}
	return n > 0, nil
}

type scannable interface {
	Scan(...any) error
}

func scanTask(row scannable) (model.Task, error) {
	var (
		t                    model.Task
		priority             int
		status, source       string
		createdAt, updatedAt int64
	)
	err := row.Scan(&t.Seq, &t.UID, &t.OwnerID, &t.Title, &priority, &status,
		&source, &t.SourceRef, &t.LinkedEventID, &createdAt, &updatedAt)
	if err != nil {
		return model.Task{}, err
	}
	t.Priority = model.PriorityLevel(priority)
	t.Status = model.TaskStatus(status)
	t.Source = model.TaskSource(source)
	t.CreatedAt = time.Unix(createdAt, 0).UTC()
	t.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return t, nil
}
