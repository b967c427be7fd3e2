package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Project is a top-level container for sprints, tasks, risks, minutes and
// kanban columns.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Aggregates, filled by ListProjects and GetProject.
	SprintCount int `json:"sprint_count"`
	TaskCount   int `json:"task_count"`
	RiskCount   int `json:"risk_count"`
}

// DefaultColumn describes a kanban column every new project starts with.
type DefaultColumn struct {
	Name       string
	OrderIndex int
}

// DefaultColumns are created with every project, in this order.
var DefaultColumns = []DefaultColumn{
	{Name: "To Do", OrderIndex: 0},
	{Name: "In Progress", OrderIndex: 1},
	{Name: "Blocked", OrderIndex: 2},
	{Name: "Done", OrderIndex: 3},
}

const projectColumns = `p.id, p.name, p.description, p.status, p.created_at, p.updated_at,
	(SELECT COUNT(*) FROM sprints s WHERE s.project_id = p.id),
	(SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id),
	(SELECT COUNT(*) FROM risks r WHERE r.project_id = p.id)`

// ListProjects returns all projects, newest first, with their aggregate counts.
func (d *DB) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := d.QueryContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects p
		ORDER BY p.created_at DESC, p.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	projects := []Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// GetProject retrieves a project with its aggregate counts.
// Returns ErrNotFound if the project does not exist.
func (d *DB) GetProject(ctx context.Context, id string) (*Project, error) {
	row := d.QueryRowContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects p
		WHERE p.id = ?
	`, id)

	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	return p, nil
}

// CreateProject inserts the project and its default kanban columns in one
// transaction. Either all five rows exist afterwards or none do.
func (d *DB) CreateProject(ctx context.Context, p *Project) error {
	return d.RunInTx(ctx, func(tx *TxOps) error {
		return createProjectTx(tx, p)
	})
}

func createProjectTx(tx *TxOps, p *Project) error {
	if _, err := tx.Exec(`
		INSERT INTO projects (id, name, description, status)
		VALUES (?, ?, ?, ?)
	`, p.ID, p.Name, p.Description, p.Status); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}

	for i, col := range DefaultColumns {
		if _, err := tx.Exec(`
			INSERT INTO kanban_columns (id, project_id, name, order_index, is_default)
			VALUES (?, ?, ?, ?, ?)
		`, columnID(p.ID, i+1), p.ID, col.Name, col.OrderIndex, true); err != nil {
			return fmt.Errorf("insert default column %q: %w", col.Name, err)
		}
	}
	return nil
}

// UpdateProject overwrites the mutable fields and refreshes updated_at.
// Returns ErrNotFound if the project does not exist.
func (d *DB) UpdateProject(ctx context.Context, p *Project) error {
	res, err := d.ExecContext(ctx, `
		UPDATE projects
		SET name = ?, description = ?, status = ?, updated_at = `+d.Now()+`
		WHERE id = ?
	`, p.Name, p.Description, p.Status, p.ID)
	if err != nil {
		return fmt.Errorf("update project %s: %w", p.ID, err)
	}
	return requireAffected(res)
}

// DeleteProject removes a project and, by cascade, everything it owns.
// Returns ErrNotFound if the project does not exist.
func (d *DB) DeleteProject(ctx context.Context, id string) error {
	res, err := d.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return requireAffected(res)
}

func scanProject(row rowScanner) (*Project, error) {
	var p Project
	var createdAt, updatedAt string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &createdAt, &updatedAt,
		&p.SprintCount, &p.TaskCount, &p.RiskCount); err != nil {
		return nil, err
	}
	p.CreatedAt = parseTimestamp(createdAt)
	p.UpdatedAt = parseTimestamp(updatedAt)
	return &p, nil
}

// requireAffected maps a zero-row UPDATE or DELETE to ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
