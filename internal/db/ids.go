package db

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidPrefix is returned by NextID for a prefix with no backing table.
var ErrInvalidPrefix = errors.New("invalid prefix")

// idTable maps an identifier prefix to its table. scoped reports whether the
// table carries a project_id the allocation can be narrowed to.
type idTable struct {
	name   string
	scoped bool
}

var idTables = map[string]idTable{
	"P": {name: "projects"},
	"T": {name: "tasks", scoped: true},
	"S": {name: "sprints", scoped: true},
	"R": {name: "risks", scoped: true},
	"M": {name: "minutes", scoped: true},
}

// ValidPrefix reports whether NextID accepts prefix.
func ValidPrefix(prefix string) bool {
	_, ok := idTables[prefix]
	return ok
}

// NextID computes the next free identifier <prefix><n> for the entity type
// named by prefix (P, T, S, R or M). When projectID is non-empty and the
// table belongs to a project, only that project's ids are considered.
//
// Nothing is reserved. Two concurrent callers can get the same id; the
// second insert then fails with a unique violation.
func (d *DB) NextID(ctx context.Context, prefix, projectID string) (string, error) {
	tbl, ok := idTables[prefix]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}

	query := "SELECT id FROM " + tbl.name
	var args []any
	if tbl.scoped && projectID != "" {
		query += " WHERE project_id = ?"
		args = append(args, projectID)
	}

	rows, err := d.QueryContext(ctx, query, args...)
	if err != nil {
		return "", fmt.Errorf("list %s ids: %w", tbl.name, err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan %s id: %w", tbl.name, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate %s ids: %w", tbl.name, err)
	}

	return nextIDFrom(prefix, ids), nil
}

// nextIDFrom returns prefix followed by one more than the largest numeric
// suffix among ids of the form <prefix><digits>. Other ids are ignored.
// With no match it returns <prefix>1.
func nextIDFrom(prefix string, ids []string) string {
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `(\d+)$`)

	maxNum := 0
	for _, id := range ids {
		m := re.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > maxNum {
			maxNum = n
		}
	}
	return prefix + strconv.Itoa(maxNum+1)
}

// columnID builds the identifier of a project's n-th kanban column.
func columnID(projectID string, n int) string {
	return columnPrefix(projectID) + strconv.Itoa(n)
}

func columnPrefix(projectID string) string {
	return projectID + "-C"
}
