package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mbolis/quick-forms/database"
	"github.com/mbolis/quick-forms/log"
	"github.com/mbolis/quick-forms/submission"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&database.ValidationError{Msg: "form name is required"}, http.StatusBadRequest},
		{&database.ValidationError{Msg: "failed to load form after creation", Internal: true}, http.StatusBadRequest},
		{&submission.IncompleteError{Missing: []int64{2}}, http.StatusBadRequest},
		{submission.ErrFormNotFound, http.StatusNotFound},
		{submission.ErrDuplicateSubmission, http.StatusConflict},
		{fmt.Errorf("client %q: %w", "a@b.co", database.ErrConflict), http.StatusConflict},
		{&database.StoreError{Op: "get", Err: errors.New("disk I/O error")}, http.StatusInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := Status(tt.err); got != tt.want {
			t.Errorf("Status(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestLogError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
		missing []int64
	}{
		{"validation", &database.ValidationError{Msg: "no fields to update"}, 400, "no fields to update", nil},
		{"incomplete", &submission.IncompleteError{Missing: []int64{2, 3}}, 400, "all questions must be answered", []int64{2, 3}},
		{"not found", submission.ErrFormNotFound, 404, "form not found", nil},
		{"duplicate", submission.ErrDuplicateSubmission, 409, submission.ErrDuplicateSubmission.Error(), nil},
		{"conflict", fmt.Errorf("client %q: %w", "a@b.co", database.ErrConflict), 409, "record already exists", nil},
		{"store", &database.StoreError{Op: "run", Err: errors.New("database is locked")}, 500, "something went wrong", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			LogError(rec, req, "test", tt.err)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			body := decodeError(t, rec)
			if body.Error != tt.message {
				t.Errorf("error = %q, want %q", body.Error, tt.message)
			}
			if fmt.Sprint(body.Missing) != fmt.Sprint(tt.missing) {
				t.Errorf("missing = %v, want %v", body.Missing, tt.missing)
			}
		})
	}
}

func TestLogStatusMsg(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	LogStatusMsg(rec, req, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id", "%s must be a positive integer", "form id")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if body := decodeError(t, rec); body.Error != "form id must be a positive integer" {
		t.Errorf("error = %q", body.Error)
	}
}
