package routes

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/model"
	"github.com/mbolis/quick-forms/submission"
)

const submittedMessage = "Thank you! Your response has been submitted."

type publicForm struct {
	Form   model.Form    `json:"form"`
	Fields []model.Field `json:"fields"`
}

type submitted struct {
	Message  string `json:"message"`
	ClientID int64  `json:"client_id"`
}

func PublicGetForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "id", "form id")
		if !ok {
			return
		}

		form, fields, err := app.Submissions.PublishedForm(r.Context(), id)
		if err != nil {
			httpx.LogError(w, r, "public.get_form", err)
			return
		}
		render.JSON(w, r, publicForm{Form: form, Fields: fields})
	}
}

func PublicSubmitForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "id", "form id")
		if !ok {
			return
		}
		var in model.Submission
		if !decodeBody(w, r, &in) {
			return
		}

		clientID, err := app.Submissions.Submit(r.Context(), submission.Request{
			FormID:  id,
			Name:    in.Name,
			Email:   in.Email,
			Answers: in.Answers,
		})
		if err != nil {
			httpx.LogError(w, r, "public.submit", err)
			return
		}
		created(w, r, submitted{Message: submittedMessage, ClientID: clientID})
	}
}
