package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mbolis/quick-forms/model"
)

// Clients is the repository for the clients table: one row per respondent
// per form.
type Clients struct {
	rt runtime
}

const clientColumns = `client_id, name, email, form_id, date_responded`

func scanClient(row scanner) (model.Client, error) {
	var c model.Client
	var formID sql.NullInt64
	err := row.Scan(&c.ID, &c.Name, &c.Email, &formID, &c.DateResponded)
	if err != nil {
		return model.Client{}, err
	}
	c.FormID = int64Ptr(formID)
	c.DateResponded = c.DateResponded.UTC()
	return c, nil
}

func requireEmail(s, msg string) (string, error) {
	email, err := requireText(s, msg)
	if err != nil {
		return "", err
	}
	if !ValidEmail(email) {
		return "", invalid("email must be a valid email address")
	}
	return email, nil
}

func optionalFormID(id *int64) error {
	if id != nil && *id <= 0 {
		return invalid("if provided, form_id must be a positive integer")
	}
	return nil
}

// writeError translates constraint failures on the clients table.
func (r *Clients) writeError(err error, email string, formID *int64) error {
	switch {
	case err == nil:
		return nil
	case IsUniqueViolation(err):
		return fmt.Errorf("client %q: %w", email, ErrConflict)
	case IsForeignKeyViolation(err) && formID != nil:
		return invalid("form %d does not exist", *formID)
	}
	return err
}

func (r *Clients) Create(ctx context.Context, in model.CreateClient) (model.Client, error) {
	name, err := requireText(in.Name, "client name is required")
	if err != nil {
		return model.Client{}, err
	}
	email, err := requireEmail(in.Email, "client email is required")
	if err != nil {
		return model.Client{}, err
	}
	if err = optionalFormID(in.FormID); err != nil {
		return model.Client{}, err
	}
	if in.DateResponded.IsZero() {
		return model.Client{}, invalid("date_responded is required")
	}

	res, err := execute(ctx, r.rt.q, `
		INSERT INTO clients (name, email, form_id, date_responded)
		VALUES (?, ?, ?, ?)`,
		name,
		email,
		in.FormID,
		in.DateResponded.UTC(),
	)
	if err = r.writeError(err, email, in.FormID); err != nil {
		return model.Client{}, err
	}
	return reread(ctx, "client", res.LastInsertID, r.Get)
}

func (r *Clients) Get(ctx context.Context, id int64) (model.Client, bool, error) {
	if err := requireID("client id", id); err != nil {
		return model.Client{}, false, err
	}
	return fetchOne(ctx, r.rt.q, scanClient, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE client_id = ?`,
		id,
	)
}

// ListByForm returns the respondents of a form, most recent first.
func (r *Clients) ListByForm(ctx context.Context, formID int64) ([]model.Client, error) {
	if err := requireID("form_id", formID); err != nil {
		return nil, err
	}
	return fetchMany(ctx, r.rt.q, scanClient, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE form_id = ?
		ORDER BY date_responded DESC, client_id DESC`,
		formID,
	)
}

// GetByEmailAndForm finds the respondent that already answered formID with
// this exact (trimmed, case-sensitive) email.
func (r *Clients) GetByEmailAndForm(ctx context.Context, email string, formID int64) (model.Client, bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return model.Client{}, false, invalid("email is required")
	}
	if err := requireID("form_id", formID); err != nil {
		return model.Client{}, false, err
	}
	return fetchOne(ctx, r.rt.q, scanClient, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE email = ?
			AND form_id = ?`,
		email,
		formID,
	)
}

func (r *Clients) Update(ctx context.Context, id int64, in model.UpdateClient) (model.Client, bool, error) {
	if err := requireID("client id", id); err != nil {
		return model.Client{}, false, err
	}

	var p patch
	if name, ok, err := patchText(in.Name, "if provided, client name must be a non-empty string"); err != nil {
		return model.Client{}, false, err
	} else if ok {
		p.set("name", name)
	}
	var email string
	if in.Email != nil {
		var err error
		if email, err = requireEmail(*in.Email, "if provided, email must be a non-empty string"); err != nil {
			return model.Client{}, false, err
		}
		p.set("email", email)
	}
	if in.FormID.Present {
		if err := optionalFormID(in.FormID.Value); err != nil {
			return model.Client{}, false, err
		}
		p.set("form_id", in.FormID.Value)
	}
	if in.DateResponded != nil {
		if in.DateResponded.IsZero() {
			return model.Client{}, false, invalid("if provided, date_responded must be a valid timestamp")
		}
		p.set("date_responded", in.DateResponded.UTC())
	}
	if p.empty() {
		return model.Client{}, false, errNothingToUpdate
	}

	query, args := p.statement("clients", "client_id", id)
	_, err := execute(ctx, r.rt.q, query, args...)
	if err = r.writeError(err, email, in.FormID.Value); err != nil {
		return model.Client{}, false, err
	}
	return r.Get(ctx, id)
}

// Delete removes the client and its responses.
func (r *Clients) Delete(ctx context.Context, id int64) error {
	if err := requireID("client id", id); err != nil {
		return err
	}
	_, err := execute(ctx, r.rt.q, `DELETE FROM clients WHERE client_id = ?`, id)
	return err
}
