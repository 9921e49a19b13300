package database

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ValidationError reports bad input or a violated business rule. Its message
// is safe to show to callers.
//
// Internal marks the rare case where the store did not return a row it just
// wrote; it shares the kind so callers see a 4xx, but it is logged apart.
type ValidationError struct {
	Msg      string
	Internal bool
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StoreError wraps any unexpected failure from SQLite together with the
// runtime operation that hit it ("get", "all", "run", "init").
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("database query failed during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ErrConflict is returned when a write violates a uniqueness constraint.
var ErrConflict = errors.New("record already exists")

func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func isConstraint(err error, code sqlite3.ErrNoExtended) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == code
}

// IsUniqueViolation reports whether err comes from a UNIQUE constraint.
func IsUniqueViolation(err error) bool {
	return isConstraint(err, sqlite3.ErrConstraintUnique) ||
		isConstraint(err, sqlite3.ErrConstraintPrimaryKey)
}

// IsForeignKeyViolation reports whether err comes from a FOREIGN KEY constraint.
func IsForeignKeyViolation(err error) bool {
	return isConstraint(err, sqlite3.ErrConstraintForeignKey)
}
