package database

import (
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by find operations when no row matches.
// It is a result, not a storage failure, and is never wrapped in StorageError.
var ErrNotFound = errors.New("record not found")

// SchemaError marks a fatal initialization failure: the application cannot
// proceed without a valid schema.
type SchemaError struct {
	Table string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %s: %v", e.Table, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// ConstraintViolation marks a uniqueness or foreign-key breach on write.
// The statement did not apply; callers must not assume partial success.
type ConstraintViolation struct {
	Op  string
	Err error
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("%s: constraint violation: %v", e.Op, e.Err)
}

func (e *ConstraintViolation) Unwrap() error { return e.Err }

// StorageError marks a driver or I/O failure on read/write. Surfaced to the
// caller, logged, never retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: storage failure: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// WrapWrite classifies an error from an INSERT/UPDATE/DELETE: constraint
// breaches become ConstraintViolation, everything else StorageError.
func WrapWrite(op string, err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint {
		return &ConstraintViolation{Op: op, Err: err}
	}
	return &StorageError{Op: op, Err: err}
}

// WrapRead classifies an error from a SELECT: no rows becomes ErrNotFound,
// everything else StorageError.
func WrapRead(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return &StorageError{Op: op, Err: err}
}

// IsConstraintViolation reports whether err is a ConstraintViolation.
func IsConstraintViolation(err error) bool {
	var cv *ConstraintViolation
	return errors.As(err, &cv)
}
