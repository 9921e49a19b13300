// Package submission implements the public workflow that turns a
// respondent's answers into one client row and one response row per
// question of the form.
package submission

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mbolis/quick-forms/database"
	"github.com/mbolis/quick-forms/log"
	"github.com/mbolis/quick-forms/model"
)

var (
	// ErrFormNotFound means the submitted form id does not exist.
	ErrFormNotFound = errors.New("form not found")
	// ErrDuplicateSubmission means this email already answered the form.
	ErrDuplicateSubmission = errors.New("a response with this email has already been submitted for this form")
)

// IncompleteError lists the fields left unanswered.
type IncompleteError struct {
	Missing []int64
}

func (e *IncompleteError) Error() string {
	return "all questions must be answered"
}

type Request struct {
	FormID  int64
	Name    string
	Email   string
	Answers map[string]model.Answer
}

type Service struct {
	store    *database.Store
	inflight *inflight
	// Now stamps date_responded. Defaults to the current UTC time.
	Now func() time.Time
}

func New(store *database.Store) *Service {
	return &Service{
		store:    store,
		inflight: newInflight(),
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

func rejected(msg string) error {
	return &database.ValidationError{Msg: msg}
}

// PublishedForm loads a form and its questions for public display. Forms that
// are not published are rejected the same way a submission would be.
func (s *Service) PublishedForm(ctx context.Context, formID int64) (model.Form, []model.Field, error) {
	form, err := s.admit(ctx, formID)
	if err != nil {
		return model.Form{}, nil, err
	}
	fields, err := s.store.Fields.ListByForm(ctx, formID)
	if err != nil {
		return model.Form{}, nil, err
	}
	return form, fields, nil
}

func (s *Service) admit(ctx context.Context, formID int64) (model.Form, error) {
	if formID <= 0 {
		return model.Form{}, rejected("invalid form id")
	}
	form, found, err := s.store.Forms.Get(ctx, formID)
	if err != nil {
		return model.Form{}, err
	}
	if !found {
		return model.Form{}, ErrFormNotFound
	}
	if !strings.EqualFold(strings.TrimSpace(form.Status), model.StatusPublished) {
		return model.Form{}, rejected("form is not published")
	}
	return form, nil
}

// Submit runs the whole workflow and returns the new client id.
//
// Nothing is written until every check has passed. The client row and its
// responses are then committed in a single transaction.
func (s *Service) Submit(ctx context.Context, req Request) (int64, error) {
	logger := log.WithFields(log.Fields{
		"submission": uuid.NewString(),
		"form_id":    req.FormID,
	})

	if _, err := s.admit(ctx, req.FormID); err != nil {
		logger.WithError(err).Debug("submission.admit")
		return 0, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return 0, rejected("name is required")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return 0, rejected("email is required")
	}
	if !database.ValidEmail(email) {
		return 0, rejected("please enter a valid email address")
	}
	if req.Answers == nil {
		return 0, rejected("answers are required")
	}

	k := submitter{email, req.FormID}
	unlock, err := s.inflight.lock(ctx, k)
	if err != nil {
		logger.WithError(err).Debug("submission.wait")
		return 0, err
	}
	defer unlock()

	_, exists, err := s.store.Clients.GetByEmailAndForm(ctx, email, req.FormID)
	if err != nil {
		return 0, err
	}
	if exists {
		logger.Debug("submission.already_submitted")
		return 0, ErrDuplicateSubmission
	}

	fields, err := s.store.Fields.ListByForm(ctx, req.FormID)
	if err != nil {
		return 0, err
	}
	var missing []int64
	for _, f := range fields {
		if !req.Answers[strconv.FormatInt(f.ID, 10)].Answered() {
			missing = append(missing, f.ID)
		}
	}
	if len(missing) > 0 {
		logger.WithField("missing", missing).Debug("submission.incomplete")
		return 0, &IncompleteError{Missing: missing}
	}

	var clientID int64
	err = s.store.InTx(ctx, func(tx *database.Store) error {
		client, err := tx.Clients.Create(ctx, model.CreateClient{
			Name:          name,
			Email:         email,
			FormID:        &req.FormID,
			DateResponded: s.Now(),
		})
		if err != nil {
			return err
		}
		clientID = client.ID

		for _, f := range fields {
			text := req.Answers[strconv.FormatInt(f.ID, 10)].Render()
			if text == "" {
				return rejected(fmt.Sprintf("answer required for question (field %d)", f.ID))
			}
			_, err := tx.Responses.Create(ctx, model.CreateResponse{
				ClientID:     client.ID,
				FieldID:      f.ID,
				ResponseText: text,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, database.ErrConflict) {
		logger.Debug("submission.already_submitted")
		return 0, ErrDuplicateSubmission
	}
	if err != nil {
		logger.WithError(err).Warn("submission.commit")
		return 0, err
	}

	logger.WithFields(log.Fields{"client_id": clientID, "responses": len(fields)}).Info("submission.committed")
	return clientID, nil
}
