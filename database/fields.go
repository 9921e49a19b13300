package database

import (
	"context"
	"database/sql"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/mbolis/quick-forms/model"
)

// Fields is the repository for the fields table: the questions of a form.
type Fields struct {
	rt runtime
}

const fieldColumns = `field_id, form_id, question_text, answer_type, options_json, date_updated`

func scanField(row scanner) (model.Field, error) {
	var f model.Field
	var options sql.NullString
	err := row.Scan(&f.ID, &f.FormID, &f.QuestionText, &f.AnswerType, &options, &f.DateUpdated)
	if err != nil {
		return model.Field{}, err
	}
	f.OptionsJSON = stringPtr(options)
	f.DateUpdated = f.DateUpdated.UTC()
	return f, nil
}

// optionsJSON checks that a present options_json is valid JSON text. The
// content itself is up to the front-end.
func optionsJSON(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if !json.Valid([]byte(v)) {
		return nil, invalid("options_json must be valid JSON")
	}
	return &v, nil
}

func (r *Fields) Create(ctx context.Context, in model.CreateField) (model.Field, error) {
	if err := requireID("form_id", in.FormID); err != nil {
		return model.Field{}, err
	}
	question, err := requireText(in.QuestionText, "question_text is required")
	if err != nil {
		return model.Field{}, err
	}
	answerType, err := requireText(in.AnswerType, "answer_type is required")
	if err != nil {
		return model.Field{}, err
	}
	options, err := optionsJSON(in.OptionsJSON)
	if err != nil {
		return model.Field{}, err
	}

	res, err := execute(ctx, r.rt.q, `
		INSERT INTO fields (form_id, question_text, answer_type, options_json, date_updated)
		VALUES (?, ?, ?, ?, ?)`,
		in.FormID,
		question,
		answerType,
		options,
		r.rt.now(),
	)
	if IsForeignKeyViolation(err) {
		return model.Field{}, invalid("form %d does not exist", in.FormID)
	}
	if err != nil {
		return model.Field{}, err
	}
	return reread(ctx, "field", res.LastInsertID, r.Get)
}

func (r *Fields) Get(ctx context.Context, id int64) (model.Field, bool, error) {
	if err := requireID("field id", id); err != nil {
		return model.Field{}, false, err
	}
	return fetchOne(ctx, r.rt.q, scanField, `
		SELECT `+fieldColumns+`
		FROM fields
		WHERE field_id = ?`,
		id,
	)
}

// ListByForm returns the questions of a form in creation order.
func (r *Fields) ListByForm(ctx context.Context, formID int64) ([]model.Field, error) {
	if err := requireID("form_id", formID); err != nil {
		return nil, err
	}
	return fetchMany(ctx, r.rt.q, scanField, `
		SELECT `+fieldColumns+`
		FROM fields
		WHERE form_id = ?
		ORDER BY field_id ASC`,
		formID,
	)
}

func (r *Fields) Update(ctx context.Context, id int64, in model.UpdateField) (model.Field, bool, error) {
	if err := requireID("field id", id); err != nil {
		return model.Field{}, false, err
	}

	var p patch
	if question, ok, err := patchText(in.QuestionText, "if provided, question_text must be a non-empty string"); err != nil {
		return model.Field{}, false, err
	} else if ok {
		p.set("question_text", question)
	}
	if answerType, ok, err := patchText(in.AnswerType, "if provided, answer_type must be a non-empty string"); err != nil {
		return model.Field{}, false, err
	} else if ok {
		p.set("answer_type", answerType)
	}
	if in.OptionsJSON.Present {
		options, err := optionsJSON(in.OptionsJSON.Value)
		if err != nil {
			return model.Field{}, false, err
		}
		p.set("options_json", options)
	}
	if p.empty() {
		return model.Field{}, false, errNothingToUpdate
	}
	p.set("date_updated", r.rt.now())

	query, args := p.statement("fields", "field_id", id)
	if _, err := execute(ctx, r.rt.q, query, args...); err != nil {
		return model.Field{}, false, err
	}
	return r.Get(ctx, id)
}

// Delete removes the field together with the responses given to it.
func (r *Fields) Delete(ctx context.Context, id int64) error {
	if err := requireID("field id", id); err != nil {
		return err
	}
	_, err := execute(ctx, r.rt.q, `DELETE FROM fields WHERE field_id = ?`, id)
	return err
}
