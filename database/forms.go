package database

import (
	"context"
	"database/sql"

	"github.com/mbolis/quick-forms/model"
)

// Forms is the repository for the forms table.
type Forms struct {
	rt runtime
}

const formColumns = `form_id, name, description, status, date_created, date_updated, date_published, date_closed`

func scanForm(row scanner) (model.Form, error) {
	var f model.Form
	var description sql.NullString
	var published, closed sql.NullTime
	err := row.Scan(
		&f.ID, &f.Name, &description, &f.Status,
		&f.DateCreated, &f.DateUpdated, &published, &closed,
	)
	if err != nil {
		return model.Form{}, err
	}
	f.Description = stringPtr(description)
	f.DateCreated = f.DateCreated.UTC()
	f.DateUpdated = f.DateUpdated.UTC()
	f.DatePublished = timePtr(published)
	f.DateClosed = timePtr(closed)
	return f, nil
}

func (r *Forms) Create(ctx context.Context, in model.CreateForm) (model.Form, error) {
	name, err := requireText(in.Name, "form name is required")
	if err != nil {
		return model.Form{}, err
	}
	status, err := requireText(in.Status, "form status is required")
	if err != nil {
		return model.Form{}, err
	}

	now := r.rt.now()
	res, err := execute(ctx, r.rt.q, `
		INSERT INTO forms (name, description, status, date_created, date_updated, date_published, date_closed)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		name,
		trimmedOrNil(in.Description),
		status,
		now,
		now,
		utcOrNil(in.DatePublished),
		utcOrNil(in.DateClosed),
	)
	if err != nil {
		return model.Form{}, err
	}
	return reread(ctx, "form", res.LastInsertID, r.Get)
}

func (r *Forms) Get(ctx context.Context, id int64) (model.Form, bool, error) {
	if err := requireID("form id", id); err != nil {
		return model.Form{}, false, err
	}
	return fetchOne(ctx, r.rt.q, scanForm, `
		SELECT `+formColumns+`
		FROM forms
		WHERE form_id = ?`,
		id,
	)
}

// List returns every form, newest first.
func (r *Forms) List(ctx context.Context) ([]model.Form, error) {
	return fetchMany(ctx, r.rt.q, scanForm, `
		SELECT `+formColumns+`
		FROM forms
		ORDER BY date_created DESC, form_id DESC`)
}

// Update applies the present properties of in and always bumps date_updated.
// found is false when no form has the given id.
func (r *Forms) Update(ctx context.Context, id int64, in model.UpdateForm) (model.Form, bool, error) {
	if err := requireID("form id", id); err != nil {
		return model.Form{}, false, err
	}

	var p patch
	if name, ok, err := patchText(in.Name, "if provided, form name must be a non-empty string"); err != nil {
		return model.Form{}, false, err
	} else if ok {
		p.set("name", name)
	}
	if in.Description.Present {
		p.set("description", trimmedOrNil(in.Description.Value))
	}
	if status, ok, err := patchText(in.Status, "if provided, form status must be a non-empty string"); err != nil {
		return model.Form{}, false, err
	} else if ok {
		p.set("status", status)
	}
	if in.DatePublished.Present {
		p.set("date_published", utcOrNil(in.DatePublished.Value))
	}
	if in.DateClosed.Present {
		p.set("date_closed", utcOrNil(in.DateClosed.Value))
	}
	if p.empty() {
		return model.Form{}, false, errNothingToUpdate
	}
	p.set("date_updated", r.rt.now())

	query, args := p.statement("forms", "form_id", id)
	if _, err := execute(ctx, r.rt.q, query, args...); err != nil {
		return model.Form{}, false, err
	}
	return r.Get(ctx, id)
}

// Delete removes the form. Its fields and clients go with it.
func (r *Forms) Delete(ctx context.Context, id int64) error {
	if err := requireID("form id", id); err != nil {
		return err
	}
	_, err := execute(ctx, r.rt.q, `DELETE FROM forms WHERE form_id = ?`, id)
	return err
}
