package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mbolis/quick-forms/log"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail reports whether s has the minimal local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func requireID(name string, id int64) error {
	if id <= 0 {
		return invalid("%s must be a positive integer", name)
	}
	return nil
}

// requireText trims s and fails with msg when nothing is left.
func requireText(s, msg string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Msg: msg}
	}
	return s, nil
}

// patchText validates an optional patch value: absent is fine, present must be
// non-blank after trim.
func patchText(s *string, msg string) (string, bool, error) {
	if s == nil {
		return "", false, nil
	}
	v, err := requireText(*s, msg)
	return v, err == nil, err
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func utcOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}

// patch accumulates the SET list of a partial update.
type patch struct {
	cols []string
	args []any
}

func (p *patch) set(col string, v any) {
	p.cols = append(p.cols, col+" = ?")
	p.args = append(p.args, v)
}

func (p *patch) empty() bool {
	return len(p.cols) == 0
}

func (p *patch) statement(table, key string, id int64) (string, []any) {
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", table, strings.Join(p.cols, ", "), key)
	return query, append(p.args, id)
}

var errNothingToUpdate = &ValidationError{Msg: "no fields to update"}

// reread loads a row that was just inserted. Not finding it means the store
// lost a write, which is logged apart from ordinary validation failures.
func reread[T any](ctx context.Context, entity string, id int64, get func(context.Context, int64) (T, bool, error)) (T, error) {
	v, found, err := get(ctx, id)
	if err != nil {
		return v, err
	}
	if !found {
		log.WithFields(log.Fields{"code": "db.reread_missing", "entity": entity, "id": id}).
			Error("created row could not be read back")
		return v, &ValidationError{Msg: fmt.Sprintf("failed to load %s after creation", entity), Internal: true}
	}
	return v, nil
}
