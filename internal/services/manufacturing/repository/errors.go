package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrConstraintViolation = errors.New("constraint violation")
)

// ConstraintError keeps the store's message next to the ErrConstraintViolation sentinel.
type ConstraintError struct {
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Constraint != "" {
		return "constraint violation: " + e.Constraint
	}
	return "constraint violation: " + e.Err.Error()
}

func (e *ConstraintError) Unwrap() []error { return []error{ErrConstraintViolation, e.Err} }

// classify maps driver errors onto the repository sentinels and leaves
// anything else untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ConstraintError{Constraint: "unique", Err: err}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &ConstraintError{Constraint: "foreign key", Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return &ConstraintError{Constraint: "unique " + pgErr.ConstraintName, Err: err}
		case "23503":
			return &ConstraintError{Constraint: "foreign key " + pgErr.ConstraintName, Err: err}
		case "23502":
			return &ConstraintError{Constraint: "not null " + pgErr.ColumnName, Err: err}
		case "22001", "22003":
			return &ConstraintError{Constraint: "value out of range " + pgErr.ColumnName, Err: err}
		}
	}

	// sqlite3.Error without the translator (older drivers, raw Exec).
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &ConstraintError{Constraint: "unique", Err: err}
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &ConstraintError{Constraint: "foreign key", Err: err}
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return &ConstraintError{Constraint: "not null", Err: err}
	}
	return err
}
