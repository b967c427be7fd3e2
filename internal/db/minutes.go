package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Minutes records what was said at a project meeting.
type Minutes struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	MeetingDate string    `json:"meeting_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const minutesColumns = `id, project_id, title, content, meeting_date, created_at, updated_at`

// ListMinutes returns minutes newest first, optionally limited to one project.
func (d *DB) ListMinutes(ctx context.Context, projectID string) ([]Minutes, error) {
	query := "SELECT " + minutesColumns + " FROM minutes"
	var args []any
	if projectID != "" {
		query += " WHERE project_id = ?"
		args = append(args, projectID)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := d.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list minutes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	list := []Minutes{}
	for rows.Next() {
		m, err := scanMinutes(rows)
		if err != nil {
			return nil, fmt.Errorf("scan minutes: %w", err)
		}
		list = append(list, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate minutes: %w", err)
	}
	return list, nil
}

// GetMinutes retrieves minutes by ID. Returns ErrNotFound if absent.
func (d *DB) GetMinutes(ctx context.Context, id string) (*Minutes, error) {
	row := d.QueryRowContext(ctx, "SELECT "+minutesColumns+" FROM minutes WHERE id = ?", id)
	m, err := scanMinutes(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get minutes %s: %w", id, err)
	}
	return m, nil
}

// CreateMinutes inserts meeting minutes.
func (d *DB) CreateMinutes(ctx context.Context, m *Minutes) error {
	if _, err := d.ExecContext(ctx, `
		INSERT INTO minutes (id, project_id, title, content, meeting_date)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, m.ProjectID, m.Title, m.Content, m.MeetingDate); err != nil {
		return fmt.Errorf("insert minutes: %w", err)
	}
	return nil
}

// UpdateMinutes overwrites the mutable fields and refreshes updated_at.
// Returns ErrNotFound if the minutes do not exist.
func (d *DB) UpdateMinutes(ctx context.Context, m *Minutes) error {
	res, err := d.ExecContext(ctx, `
		UPDATE minutes
		SET title = ?, content = ?, meeting_date = ?, updated_at = `+d.Now()+`
		WHERE id = ?
	`, m.Title, m.Content, m.MeetingDate, m.ID)
	if err != nil {
		return fmt.Errorf("update minutes %s: %w", m.ID, err)
	}
	return requireAffected(res)
}

// DeleteMinutes removes minutes. Returns ErrNotFound if absent.
func (d *DB) DeleteMinutes(ctx context.Context, id string) error {
	res, err := d.ExecContext(ctx, "DELETE FROM minutes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete minutes %s: %w", id, err)
	}
	return requireAffected(res)
}

func scanMinutes(row rowScanner) (*Minutes, error) {
	var m Minutes
	var createdAt, updatedAt string
	if err := row.Scan(&m.ID, &m.ProjectID, &m.Title, &m.Content, &m.MeetingDate,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	m.CreatedAt = parseTimestamp(createdAt)
	m.UpdatedAt = parseTimestamp(updatedAt)
	return &m, nil
}
