package db

import (
	"database/sql"
	"time"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// timestampFormats covers what both dialects hand back for timestamp
// columns: SQLite TEXT written by strftime, and PostgreSQL timestamptz
// converted to string by database/sql.
var timestampFormats = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp parses a stored timestamp. Returns zero time if parsing fails.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// nullableString maps "" to SQL NULL.
func nullableString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

// stringPtr converts a NullString to *string.
func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
