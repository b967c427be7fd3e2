package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Column is a kanban board stage of a project. Column IDs have the form
// <project_id>-C<n>; the four default columns are C1 through C4.
type Column struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Name       string    `json:"name"`
	OrderIndex int       `json:"order_index"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}

const columnColumns = `id, project_id, name, order_index, is_default, created_at`

// ListColumns returns columns by board position, optionally limited to one project.
func (d *DB) ListColumns(ctx context.Context, projectID string) ([]Column, error) {
	query := "SELECT " + columnColumns + " FROM kanban_columns"
	var args []any
	if projectID != "" {
		query += " WHERE project_id = ?"
		args = append(args, projectID)
	}
	query += " ORDER BY order_index ASC, id ASC"

	rows, err := d.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns := []Column{}
	for rows.Next() {
		c, err := scanColumn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		columns = append(columns, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}
	return columns, nil
}

// GetColumn retrieves a column by ID. Returns ErrNotFound if absent.
func (d *DB) GetColumn(ctx context.Context, id string) (*Column, error) {
	row := d.QueryRowContext(ctx, "SELECT "+columnColumns+" FROM kanban_columns WHERE id = ?", id)
	c, err := scanColumn(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get column %s: %w", id, err)
	}
	return c, nil
}

// CreateColumn adds a custom column to a project. The ID is allocated as the
// next free <project_id>-C<n>. When orderIndex is nil the column goes after
// the project's last column. Returns ErrNotFound if the project does not exist.
func (d *DB) CreateColumn(ctx context.Context, projectID, name string, orderIndex *int) (*Column, error) {
	col := &Column{ProjectID: projectID, Name: name}

	err := d.RunInTx(ctx, func(tx *TxOps) error {
		var n int
		if err := tx.QueryRow("SELECT COUNT(*) FROM projects WHERE id = ?", projectID).Scan(&n); err != nil {
			return fmt.Errorf("check project %s: %w", projectID, err)
		}
		if n == 0 {
			return ErrNotFound
		}

		rows, err := tx.Query("SELECT id, order_index FROM kanban_columns WHERE project_id = ?", projectID)
		if err != nil {
			return fmt.Errorf("list project columns: %w", err)
		}
		var ids []string
		maxOrder := -1
		for rows.Next() {
			var id string
			var idx int
			if err := rows.Scan(&id, &idx); err != nil {
				_ = rows.Close()
				return fmt.Errorf("scan column: %w", err)
			}
			ids = append(ids, id)
			if idx > maxOrder {
				maxOrder = idx
			}
		}
		if err := rows.Err(); err != nil {
			_ = rows.Close()
			return fmt.Errorf("iterate columns: %w", err)
		}
		_ = rows.Close()

		col.ID = nextIDFrom(columnPrefix(projectID), ids)
		col.OrderIndex = maxOrder + 1
		if orderIndex != nil {
			col.OrderIndex = *orderIndex
		}

		if _, err := tx.Exec(`
			INSERT INTO kanban_columns (id, project_id, name, order_index, is_default)
			VALUES (?, ?, ?, ?, ?)
		`, col.ID, col.ProjectID, col.Name, col.OrderIndex, false); err != nil {
			return fmt.Errorf("insert column: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return col, nil
}

// UpdateColumn renames or moves a column. Returns ErrNotFound if absent.
func (d *DB) UpdateColumn(ctx context.Context, c *Column) error {
	res, err := d.ExecContext(ctx, `
		UPDATE kanban_columns SET name = ?, order_index = ? WHERE id = ?
	`, c.Name, c.OrderIndex, c.ID)
	if err != nil {
		return fmt.Errorf("update column %s: %w", c.ID, err)
	}
	return requireAffected(res)
}

// DeleteColumn removes a column. Returns ErrNotFound if absent.
func (d *DB) DeleteColumn(ctx context.Context, id string) error {
	res, err := d.ExecContext(ctx, "DELETE FROM kanban_columns WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete column %s: %w", id, err)
	}
	return requireAffected(res)
}

func scanColumn(row rowScanner) (*Column, error) {
	var c Column
	var createdAt string
	if err := row.Scan(&c.ID, &c.ProjectID, &c.Name, &c.OrderIndex, &c.IsDefault, &createdAt); err != nil {
		return nil, err
	}
	c.CreatedAt = parseTimestamp(createdAt)
	return &c, nil
}
