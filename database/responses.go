package database

import (
	"context"

	"github.com/mbolis/quick-forms/model"
)

// Responses is the repository for the responses table: one answered field
// per client.
type Responses struct {
	rt runtime
}

const responseColumns = `response_id, client_id, field_id, response_text`

func scanResponse(row scanner) (model.Response, error) {
	var r model.Response
	err := row.Scan(&r.ID, &r.ClientID, &r.FieldID, &r.ResponseText)
	return r, err
}

func (r *Responses) Create(ctx context.Context, in model.CreateResponse) (model.Response, error) {
	if err := requireID("client_id", in.ClientID); err != nil {
		return model.Response{}, err
	}
	if err := requireID("field_id", in.FieldID); err != nil {
		return model.Response{}, err
	}
	text, err := requireText(in.ResponseText, "response_text is required")
	if err != nil {
		return model.Response{}, err
	}

	res, err := execute(ctx, r.rt.q, `
		INSERT INTO responses (client_id, field_id, response_text)
		VALUES (?, ?, ?)`,
		in.ClientID,
		in.FieldID,
		text,
	)
	if IsForeignKeyViolation(err) {
		return model.Response{}, invalid("client %d or field %d does not exist", in.ClientID, in.FieldID)
	}
	if err != nil {
		return model.Response{}, err
	}
	return reread(ctx, "response", res.LastInsertID, r.Get)
}

func (r *Responses) Get(ctx context.Context, id int64) (model.Response, bool, error) {
	if err := requireID("response id", id); err != nil {
		return model.Response{}, false, err
	}
	return fetchOne(ctx, r.rt.q, scanResponse, `
		SELECT `+responseColumns+`
		FROM responses
		WHERE response_id = ?`,
		id,
	)
}

func (r *Responses) ListByClient(ctx context.Context, clientID int64) ([]model.Response, error) {
	if err := requireID("client_id", clientID); err != nil {
		return nil, err
	}
	return fetchMany(ctx, r.rt.q, scanResponse, `
		SELECT `+responseColumns+`
		FROM responses
		WHERE client_id = ?
		ORDER BY response_id ASC`,
		clientID,
	)
}

func (r *Responses) ListByField(ctx context.Context, fieldID int64) ([]model.Response, error) {
	if err := requireID("field_id", fieldID); err != nil {
		return nil, err
	}
	return fetchMany(ctx, r.rt.q, scanResponse, `
		SELECT `+responseColumns+`
		FROM responses
		WHERE field_id = ?
		ORDER BY response_id ASC`,
		fieldID,
	)
}

func (r *Responses) Update(ctx context.Context, id int64, in model.UpdateResponse) (model.Response, bool, error) {
	if err := requireID("response id", id); err != nil {
		return model.Response{}, false, err
	}

	var p patch
	if text, ok, err := patchText(in.ResponseText, "if provided, response_text must be a non-empty string"); err != nil {
		return model.Response{}, false, err
	} else if ok {
		p.set("response_text", text)
	}
	if p.empty() {
		return model.Response{}, false, errNothingToUpdate
	}

	query, args := p.statement("responses", "response_id", id)
	if _, err := execute(ctx, r.rt.q, query, args...); err != nil {
		return model.Response{}, false, err
	}
	return r.Get(ctx, id)
}

func (r *Responses) Delete(ctx context.Context, id int64) error {
	if err := requireID("response id", id); err != nil {
		return err
	}
	_, err := execute(ctx, r.rt.q, `DELETE FROM responses WHERE response_id = ?`, id)
	return err
}
