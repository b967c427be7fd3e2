package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Sprint is a time-boxed iteration of a project.
type Sprint struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const sprintColumns = `id, project_id, name, start_date, end_date, status, created_at, updated_at`

// ListSprints returns sprints newest first, optionally limited to one project.
func (d *DB) ListSprints(ctx context.Context, projectID string) ([]Sprint, error) {
	query := "SELECT " + sprintColumns + " FROM sprints"
	var args []any
	if projectID != "" {
		query += " WHERE project_id = ?"
		args = append(args, projectID)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := d.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sprints: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sprints := []Sprint{}
	for rows.Next() {
		s, err := scanSprint(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sprint: %w", err)
		}
		sprints = append(sprints, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sprints: %w", err)
	}
	return sprints, nil
}

// GetSprint retrieves a sprint by ID. Returns ErrNotFound if absent.
func (d *DB) GetSprint(ctx context.Context, id string) (*Sprint, error) {
	row := d.QueryRowContext(ctx, "SELECT "+sprintColumns+" FROM sprints WHERE id = ?", id)
	s, err := scanSprint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get sprint %s: %w", id, err)
	}
	return s, nil
}

// CreateSprint inserts a sprint.
func (d *DB) CreateSprint(ctx context.Context, s *Sprint) error {
	if _, err := d.ExecContext(ctx, `
		INSERT INTO sprints (id, project_id, name, start_date, end_date, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.ID, s.ProjectID, s.Name, s.StartDate, s.EndDate, s.Status); err != nil {
		return fmt.Errorf("insert sprint: %w", err)
	}
	return nil
}

// UpdateSprint overwrites the mutable fields and refreshes updated_at.
// Returns ErrNotFound if the sprint does not exist.
func (d *DB) UpdateSprint(ctx context.Context, s *Sprint) error {
	res, err := d.ExecContext(ctx, `
		UPDATE sprints
		SET name = ?, start_date = ?, end_date = ?, status = ?, updated_at = `+d.Now()+`
		WHERE id = ?
	`, s.Name, s.StartDate, s.EndDate, s.Status, s.ID)
	if err != nil {
		return fmt.Errorf("update sprint %s: %w", s.ID, err)
	}
	return requireAffected(res)
}

// DeleteSprint removes a sprint and its task associations.
// Returns ErrNotFound if the sprint does not exist.
func (d *DB) DeleteSprint(ctx context.Context, id string) error {
	res, err := d.ExecContext(ctx, "DELETE FROM sprints WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete sprint %s: %w", id, err)
	}
	return requireAffected(res)
}

// AddTaskToSprint links a task to a sprint. Linking an already linked pair
// succeeds and leaves a single association row.
func (d *DB) AddTaskToSprint(ctx context.Context, sprintID, taskID string) error {
	if _, err := d.ExecContext(ctx, `
		INSERT INTO sprint_tasks (sprint_id, task_id)
		VALUES (?, ?)
		ON CONFLICT (sprint_id, task_id) DO NOTHING
	`, sprintID, taskID); err != nil {
		return fmt.Errorf("add task %s to sprint %s: %w", taskID, sprintID, err)
	}
	return nil
}

// RemoveTaskFromSprint unlinks a task from a sprint.
// Returns ErrNotFound if the pair was not linked.
func (d *DB) RemoveTaskFromSprint(ctx context.Context, sprintID, taskID string) error {
	res, err := d.ExecContext(ctx,
		"DELETE FROM sprint_tasks WHERE sprint_id = ? AND task_id = ?", sprintID, taskID)
	if err != nil {
		return fmt.Errorf("remove task %s from sprint %s: %w", taskID, sprintID, err)
	}
	return requireAffected(res)
}

// ListSprintTasks returns the tasks linked to a sprint, newest first.
func (d *DB) ListSprintTasks(ctx context.Context, sprintID string) ([]Task, error) {
	rows, err := d.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t
		JOIN sprint_tasks st ON st.task_id = t.id
		WHERE st.sprint_id = ?
		ORDER BY t.created_at DESC, t.id DESC
	`, sprintID)
	if err != nil {
		return nil, fmt.Errorf("list sprint %s tasks: %w", sprintID, err)
	}
	return collectTasks(rows)
}

func scanSprint(row rowScanner) (*Sprint, error) {
	var s Sprint
	var createdAt, updatedAt string
	if err := row.Scan(&s.ID, &s.ProjectID, &s.Name, &s.StartDate, &s.EndDate, &s.Status,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	s.CreatedAt = parseTimestamp(createdAt)
	s.UpdatedAt = parseTimestamp(updatedAt)
	return &s, nil
}
