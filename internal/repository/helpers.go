package repository

import (
	"database/sql"
	"time"
)

const dateLayout = "2006-01-02"

// nullableInt converts a *int to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// nullableFloat converts a *float64 to a value suitable for SQLite storage.
func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// nullableString converts a *string to a value suitable for SQLite storage.
func nullableString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// nullableDate converts a *time.Time to a YYYY-MM-DD string or SQL NULL.
func nullableDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

// intFromNull converts a scanned sql.NullInt64 back to a *int.
func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// floatFromNull converts a scanned sql.NullFloat64 back to a *float64.
func floatFromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// stringFromNull converts a scanned sql.NullString back to a *string.
func stringFromNull(v sql.NullString) *string {
	if !v.Valid || v.String == "" {
		return nil
	}
	s := v.String
	return &s
}

// dateFromNull parses a nullable YYYY-MM-DD string into a *time.Time in the
// local zone. Unparseable values degrade to nil.
func dateFromNull(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t, err := time.ParseInLocation(dateLayout, v.String, time.Local)
	if err != nil {
		return nil
	}
	return &t
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
