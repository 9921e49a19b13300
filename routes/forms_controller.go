package routes

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/model"
)

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms, err := app.Forms.List(r.Context())
		if err != nil {
			httpx.LogError(w, r, "db.list_forms", err)
			return
		}
		render.JSON(w, r, forms)
	}
}

func GetForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "id", "form id")
		if !ok {
			return
		}

		form, found, err := app.Forms.Get(r.Context(), id)
		if err != nil {
			httpx.LogError(w, r, "db.get_form", err)
			return
		}
		if !found {
			httpx.LogNotFound(w, r, "get_form", "form", id)
			return
		}
		render.JSON(w, r, form)
	}
}

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.CreateForm
		if !decodeBody(w, r, &in) {
			return
		}

		form, err := app.Forms.Create(r.Context(), in)
		if err != nil {
			httpx.LogError(w, r, "db.insert_form", err)
			return
		}
		created(w, r, form)
	}
}

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "id", "form id")
		if !ok {
			return
		}
		var in model.UpdateForm
		if !decodeBody(w, r, &in) {
			return
		}

		form, found, err := app.Forms.Update(r.Context(), id, in)
		if err != nil {
			httpx.LogError(w, r, "db.update_form", err)
			return
		}
		if !found {
			httpx.LogNotFound(w, r, "update_form", "form", id)
			return
		}
		render.JSON(w, r, form)
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "id", "form id")
		if !ok {
			return
		}

		if err := app.Forms.Delete(r.Context(), id); err != nil {
			httpx.LogError(w, r, "db.delete_form", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
