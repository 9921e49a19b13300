package routes

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/model"
)

func ListFormFields(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID, ok := urlID(w, r, "formId", "form id")
		if !ok {
			return
		}

		fields, err := app.Fields.ListByForm(r.Context(), formID)
		if err != nil {
			httpx.LogError(w, r, "db.list_fields", err)
			return
		}
		render.JSON(w, r, fields)
	}
}

func GetField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "id", "field id")
		if !ok {
			return
		}

		field, found, err := app.Fields.Get(r.Context(), id)
		if err != nil {
			httpx.LogError(w, r, "db.get_field", err)
			return
		}
		if !found {
			httpx.LogNotFound(w, r, "get_field", "field", id)
			return
		}
		render.JSON(w, r, field)
	}
}

func CreateField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.CreateField
		if !decodeBody(w, r, &in) {
			return
		}

		field, err := app.Fields.Create(r.Context(), in)
		if err != nil {
			httpx.LogError(w, r, "db.insert_field", err)
			return
		}
		created(w, r, field)
	}
}

func UpdateField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "id", "field id")
		if !ok {
			return
		}
		var in model.UpdateField
		if !decodeBody(w, r, &in) {
			return
		}

		field, found, err := app.Fields.Update(r.Context(), id, in)
		if err != nil {
			httpx.LogError(w, r, "db.update_field", err)
			return
		}
		if !found {
			httpx.LogNotFound(w, r, "update_field", "field", id)
			return
		}
		render.JSON(w, r, field)
	}
}

func DeleteField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "id", "field id")
		if !ok {
			return
		}

		if err := app.Fields.Delete(r.Context(), id); err != nil {
			httpx.LogError(w, r, "db.delete_field", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
