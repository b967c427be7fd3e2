package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Task is a unit of work inside a project. It can be planned into any
// number of sprints.
type Task struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Responsible string    `json:"responsible"`
	StartDate   *string   `json:"start_date"`
	EndDate     *string   `json:"end_date"`
	Comments    string    `json:"comments"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const taskColumns = `t.id, t.project_id, t.title, t.description, t.status, t.priority,
	t.responsible, t.start_date, t.end_date, t.comments, t.created_at, t.updated_at`

// ListTasks returns tasks newest first, optionally limited to one project.
func (d *DB) ListTasks(ctx context.Context, projectID string) ([]Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks t"
	var args []any
	if projectID != "" {
		query += " WHERE t.project_id = ?"
		args = append(args, projectID)
	}
	query += " ORDER BY t.created_at DESC, t.id DESC"

	rows, err := d.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return collectTasks(rows)
}

// GetTask retrieves a task by ID. Returns ErrNotFound if absent.
func (d *DB) GetTask(ctx context.Context, id string) (*Task, error) {
	row := d.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks t WHERE t.id = ?", id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return t, nil
}

// CreateTask inserts a task.
func (d *DB) CreateTask(ctx context.Context, t *Task) error {
	if _, err := d.ExecContext(ctx, `
		INSERT INTO tasks (id, project_id, title, description, status, priority, responsible, start_date, end_date, comments)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.ProjectID, t.Title, t.Description, t.Status, t.Priority, t.Responsible,
		nullableString(t.StartDate), nullableString(t.EndDate), t.Comments); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// UpdateTask overwrites the mutable fields and refreshes updated_at.
// Returns ErrNotFound if the task does not exist.
func (d *DB) UpdateTask(ctx context.Context, t *Task) error {
	res, err := d.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, responsible = ?,
			start_date = ?, end_date = ?, comments = ?, updated_at = `+d.Now()+`
		WHERE id = ?
	`, t.Title, t.Description, t.Status, t.Priority, t.Responsible,
		nullableString(t.StartDate), nullableString(t.EndDate), t.Comments, t.ID)
	if err != nil {
		return fmt.Errorf("update task %s: %w", t.ID, err)
	}
	return requireAffected(res)
}

// DeleteTask removes a task and its sprint associations.
// Returns ErrNotFound if the task does not exist.
func (d *DB) DeleteTask(ctx context.Context, id string) error {
	res, err := d.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return requireAffected(res)
}

func collectTasks(rows *sql.Rows) ([]Task, error) {
	defer func() { _ = rows.Close() }()

	tasks := []Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(row rowScanner) (*Task, error) {
	var t Task
	var startDate, endDate sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.Responsible, &startDate, &endDate, &t.Comments, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	t.StartDate = stringPtr(startDate)
	t.EndDate = stringPtr(endDate)
	t.CreatedAt = parseTimestamp(createdAt)
	t.UpdatedAt = parseTimestamp(updatedAt)
	return &t, nil
}
