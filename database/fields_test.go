package database

import (
	"context"
	"testing"
	"time"

	"github.com/mbolis/quick-forms/model"
)

func TestFieldsCreateAndList(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	form := createTestForm(t, s, "Feedback", "draft")
	other := createTestForm(t, s, "Other", "draft")

	q1 := createTestField(t, s, form.ID, "Q1")
	createTestField(t, s, other.ID, "Elsewhere")
	q2, err := s.Fields.Create(ctx, model.CreateField{
		FormID:       form.ID,
		QuestionText: "Q2",
		AnswerType:   "checkbox",
		OptionsJSON:  strp(` ["A","B"] `),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if q2.OptionsJSON == nil || *q2.OptionsJSON != `["A","B"]` {
		t.Errorf("OptionsJSON = %v, want trimmed JSON", q2.OptionsJSON)
	}

	fields, err := s.Fields.ListByForm(ctx, form.ID)
	if err != nil {
		t.Fatalf("ListByForm: %v", err)
	}
	if len(fields) != 2 || fields[0].ID != q1.ID || fields[1].ID != q2.ID {
		t.Errorf("ListByForm = %+v, want [%d %d]", fields, q1.ID, q2.ID)
	}
}

func TestFieldsCreateRejects(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	form := createTestForm(t, s, "Feedback", "draft")

	tests := []struct {
		name string
		in   model.CreateField
		want string
	}{
		{"no form", model.CreateField{QuestionText: "Q", AnswerType: "text"}, "form_id must be a positive integer"},
		{"blank question", model.CreateField{FormID: form.ID, QuestionText: " ", AnswerType: "text"}, "question_text is required"},
		{"blank type", model.CreateField{FormID: form.ID, QuestionText: "Q"}, "answer_type is required"},
		{"bad options", model.CreateField{FormID: form.ID, QuestionText: "Q", AnswerType: "radio", OptionsJSON: strp("[A")}, "options_json must be valid JSON"},
		{"unknown form", model.CreateField{FormID: form.ID + 100, QuestionText: "Q", AnswerType: "text"}, "form 101 does not exist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Fields.Create(ctx, tt.in)
			if !IsValidation(err) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if err.Error() != tt.want {
				t.Errorf("err = %q, want %q", err.Error(), tt.want)
			}
		})
	}
	if n := countRows(t, s, "fields"); n != 0 {
		t.Errorf("fields = %d, want 0", n)
	}
}

func TestFieldsUpdate(t *testing.T) {
	s, clock := openTestStore(t)
	ctx := context.Background()
	form := createTestForm(t, s, "Feedback", "draft")
	field, err := s.Fields.Create(ctx, model.CreateField{
		FormID: form.ID, QuestionText: "Colour?", AnswerType: "radio", OptionsJSON: strp(`["red"]`),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	clock.advance(time.Minute)
	updated, found, err := s.Fields.Update(ctx, field.ID, model.UpdateField{
		QuestionText: strp("Favourite colour?"),
		OptionsJSON:  model.Null[string](),
	})
	if err != nil || !found {
		t.Fatalf("Update = found %v, err %v", found, err)
	}
	if updated.QuestionText != "Favourite colour?" || updated.AnswerType != "radio" {
		t.Errorf("Update = %+v", updated)
	}
	if updated.OptionsJSON != nil {
		t.Errorf("OptionsJSON = %q, want nil", *updated.OptionsJSON)
	}
	if !updated.DateUpdated.Equal(clock.t) {
		t.Errorf("DateUpdated = %v, want %v", updated.DateUpdated, clock.t)
	}

	_, _, err = s.Fields.Update(ctx, field.ID, model.UpdateField{})
	if err == nil || err.Error() != "no fields to update" {
		t.Errorf("empty patch err = %v", err)
	}
}

func TestFieldsDelete(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	form := createTestForm(t, s, "Feedback", "draft")
	field := createTestField(t, s, form.ID, "Q1")

	if err := s.Fields.Delete(ctx, field.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := s.Fields.Get(ctx, field.ID); found {
		t.Errorf("field still present after delete")
	}
}
