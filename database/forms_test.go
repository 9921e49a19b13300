package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mbolis/quick-forms/model"
)

func strp(s string) *string { return &s }

func TestFormsCreateGet(t *testing.T) {
	s, clock := openTestStore(t)
	ctx := context.Background()

	published := time.Date(2024, 3, 2, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	created, err := s.Forms.Create(ctx, model.CreateForm{
		Name:          "  Feedback  ",
		Description:   strp("  How did we do?  "),
		Status:        "published",
		DatePublished: &published,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID <= 0 {
		t.Fatalf("ID = %d, want positive", created.ID)
	}
	if created.Name != "Feedback" {
		t.Errorf("Name = %q, want %q", created.Name, "Feedback")
	}
	if created.Description == nil || *created.Description != "How did we do?" {
		t.Errorf("Description = %v, want trimmed text", created.Description)
	}
	if !created.DateCreated.Equal(clock.t) || !created.DateUpdated.Equal(clock.t) {
		t.Errorf("dates = %v / %v, want %v", created.DateCreated, created.DateUpdated, clock.t)
	}
	if created.DatePublished == nil || !created.DatePublished.Equal(published) {
		t.Errorf("DatePublished = %v, want %v", created.DatePublished, published)
	}
	if created.DateClosed != nil {
		t.Errorf("DateClosed = %v, want nil", created.DateClosed)
	}

	got, found, err := s.Forms.Get(ctx, created.ID)
	if err != nil || !found {
		t.Fatalf("Get = found %v, err %v", found, err)
	}
	if got.Name != created.Name || got.Status != created.Status || !got.DateCreated.Equal(created.DateCreated) {
		t.Errorf("Get = %+v, want %+v", got, created)
	}
}

func TestFormsCreateRejectsBlank(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	tests := []struct {
		in   model.CreateForm
		want string
	}{
		{model.CreateForm{Name: "   ", Status: "draft"}, "form name is required"},
		{model.CreateForm{Name: "Feedback", Status: " "}, "form status is required"},
	}
	for _, tt := range tests {
		_, err := s.Forms.Create(ctx, tt.in)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Create(%+v) err = %v, want ValidationError", tt.in, err)
		}
		if ve.Msg != tt.want {
			t.Errorf("Msg = %q, want %q", ve.Msg, tt.want)
		}
	}
	if n := countRows(t, s, "forms"); n != 0 {
		t.Errorf("forms = %d, want 0", n)
	}
}

func TestFormsGetMissing(t *testing.T) {
	s, _ := openTestStore(t)

	_, found, err := s.Forms.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Errorf("found = true for missing form")
	}

	_, _, err = s.Forms.Get(context.Background(), 0)
	if !IsValidation(err) {
		t.Errorf("Get(0) err = %v, want ValidationError", err)
	}
}

func TestFormsListNewestFirst(t *testing.T) {
	s, clock := openTestStore(t)

	first := createTestForm(t, s, "First", "draft")
	clock.advance(time.Minute)
	second := createTestForm(t, s, "Second", "draft")
	// same timestamp, higher id wins
	third := createTestForm(t, s, "Third", "draft")

	forms, err := s.Forms.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []int64{third.ID, second.ID, first.ID}
	if len(forms) != len(want) {
		t.Fatalf("len = %d, want %d", len(forms), len(want))
	}
	for i, f := range forms {
		if f.ID != want[i] {
			t.Errorf("forms[%d].ID = %d, want %d", i, f.ID, want[i])
		}
	}
}

func TestFormsListEmpty(t *testing.T) {
	s, _ := openTestStore(t)

	forms, err := s.Forms.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if forms == nil || len(forms) != 0 {
		t.Errorf("List = %#v, want empty non-nil slice", forms)
	}
}

func TestFormsUpdate(t *testing.T) {
	s, clock := openTestStore(t)
	ctx := context.Background()

	form, err := s.Forms.Create(ctx, model.CreateForm{Name: "Feedback", Description: strp("old"), Status: "draft"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	clock.advance(time.Hour)
	published := clock.t
	updated, found, err := s.Forms.Update(ctx, form.ID, model.UpdateForm{
		Status:        strp("published"),
		Description:   model.Null[string](),
		DatePublished: model.Set(published),
	})
	if err != nil || !found {
		t.Fatalf("Update = found %v, err %v", found, err)
	}
	if updated.Name != "Feedback" {
		t.Errorf("Name = %q, want unchanged", updated.Name)
	}
	if updated.Status != "published" {
		t.Errorf("Status = %q, want %q", updated.Status, "published")
	}
	if updated.Description != nil {
		t.Errorf("Description = %q, want nil", *updated.Description)
	}
	if updated.DatePublished == nil || !updated.DatePublished.Equal(published) {
		t.Errorf("DatePublished = %v, want %v", updated.DatePublished, published)
	}
	if !updated.DateUpdated.Equal(clock.t) {
		t.Errorf("DateUpdated = %v, want %v", updated.DateUpdated, clock.t)
	}
	if !updated.DateCreated.Equal(form.DateCreated) {
		t.Errorf("DateCreated changed to %v", updated.DateCreated)
	}
}

func TestFormsUpdateRejects(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	form := createTestForm(t, s, "Feedback", "draft")

	_, _, err := s.Forms.Update(ctx, form.ID, model.UpdateForm{})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Msg != "no fields to update" {
		t.Errorf("empty patch err = %v, want %q", err, "no fields to update")
	}

	_, _, err = s.Forms.Update(ctx, form.ID, model.UpdateForm{Name: strp("  ")})
	if !IsValidation(err) {
		t.Errorf("blank name err = %v, want ValidationError", err)
	}

	got, _, _ := s.Forms.Get(ctx, form.ID)
	if got.Name != "Feedback" || !got.DateUpdated.Equal(form.DateUpdated) {
		t.Errorf("form changed by rejected updates: %+v", got)
	}
}

func TestFormsUpdateMissing(t *testing.T) {
	s, _ := openTestStore(t)

	_, found, err := s.Forms.Update(context.Background(), 99, model.UpdateForm{Name: strp("Ghost")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if found {
		t.Errorf("found = true for missing form")
	}
}

func TestFormsDeleteCascades(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	form := createTestForm(t, s, "Feedback", "published")
	field := createTestField(t, s, form.ID, "Rating?")
	client, err := s.Clients.Create(ctx, model.CreateClient{
		Name: "Ann", Email: "ann@example.com", FormID: &form.ID, DateResponded: time.Now(),
	})
	if err != nil {
		t.Fatalf("Clients.Create: %v", err)
	}
	if _, err := s.Responses.Create(ctx, model.CreateResponse{
		ClientID: client.ID, FieldID: field.ID, ResponseText: "5",
	}); err != nil {
		t.Fatalf("Responses.Create: %v", err)
	}

	if err := s.Forms.Delete(ctx, form.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	for _, table := range []string{"forms", "fields", "clients", "responses"} {
		if n := countRows(t, s, table); n != 0 {
			t.Errorf("%s = %d after delete, want 0", table, n)
		}
	}

	// deleting again is not an error
	if err := s.Forms.Delete(ctx, form.ID); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}
