package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Risk is a tracked project risk with its assessment and response.
type Risk struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Impact         int       `json:"impact"`
	Probability    int       `json:"probability"`
	MitigationPlan string    `json:"mitigation_plan"`
	Strategy       string    `json:"strategy"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const riskColumns = `id, project_id, name, description, impact, probability,
	mitigation_plan, strategy, status, created_at, updated_at`

// ListRisks returns risks newest first, optionally limited to one project.
func (d *DB) ListRisks(ctx context.Context, projectID string) ([]Risk, error) {
	query := "SELECT " + riskColumns + " FROM risks"
	var args []any
	if projectID != "" {
		query += " WHERE project_id = ?"
		args = append(args, projectID)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := d.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list risks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	risks := []Risk{}
	for rows.Next() {
		r, err := scanRisk(rows)
		if err != nil {
			return nil, fmt.Errorf("scan risk: %w", err)
		}
		risks = append(risks, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate risks: %w", err)
	}
	return risks, nil
}

// GetRisk retrieves a risk by ID. Returns ErrNotFound if absent.
func (d *DB) GetRisk(ctx context.Context, id string) (*Risk, error) {
	row := d.QueryRowContext(ctx, "SELECT "+riskColumns+" FROM risks WHERE id = ?", id)
	r, err := scanRisk(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get risk %s: %w", id, err)
	}
	return r, nil
}

// CreateRisk inserts a risk.
func (d *DB) CreateRisk(ctx context.Context, r *Risk) error {
	if _, err := d.ExecContext(ctx, `
		INSERT INTO risks (id, project_id, name, description, impact, probability, mitigation_plan, strategy, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.ProjectID, r.Name, r.Description, r.Impact, r.Probability,
		r.MitigationPlan, r.Strategy, r.Status); err != nil {
		return fmt.Errorf("insert risk: %w", err)
	}
	return nil
}

// UpdateRisk overwrites the mutable fields and refreshes updated_at.
// Returns ErrNotFound if the risk does not exist.
func (d *DB) UpdateRisk(ctx context.Context, r *Risk) error {
	res, err := d.ExecContext(ctx, `
		UPDATE risks
		SET name = ?, description = ?, impact = ?, probability = ?, mitigation_plan = ?,
			strategy = ?, status = ?, updated_at = `+d.Now()+`
		WHERE id = ?
	`, r.Name, r.Description, r.Impact, r.Probability, r.MitigationPlan, r.Strategy, r.Status, r.ID)
	if err != nil {
		return fmt.Errorf("update risk %s: %w", r.ID, err)
	}
	return requireAffected(res)
}

// DeleteRisk removes a risk. Returns ErrNotFound if absent.
func (d *DB) DeleteRisk(ctx context.Context, id string) error {
	res, err := d.ExecContext(ctx, "DELETE FROM risks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete risk %s: %w", id, err)
	}
	return requireAffected(res)
}

func scanRisk(row rowScanner) (*Risk, error) {
	var r Risk
	var createdAt, updatedAt string
	if err := row.Scan(&r.ID, &r.ProjectID, &r.Name, &r.Description, &r.Impact, &r.Probability,
		&r.MitigationPlan, &r.Strategy, &r.Status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	r.CreatedAt = parseTimestamp(createdAt)
	r.UpdatedAt = parseTimestamp(updatedAt)
	return &r, nil
}
