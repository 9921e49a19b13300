package routes

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/model"
)

func ListClientResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, ok := urlID(w, r, "clientId", "client id")
		if !ok {
			return
		}

		responses, err := app.Responses.ListByClient(r.Context(), clientID)
		if err != nil {
			httpx.LogError(w, r, "db.list_responses.client", err)
			return
		}
		render.JSON(w, r, responses)
	}
}

func ListFieldResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fieldID, ok := urlID(w, r, "fieldId", "field id")
		if !ok {
			return
		}

		responses, err := app.Responses.ListByField(r.Context(), fieldID)
		if err != nil {
			httpx.LogError(w, r, "db.list_responses.field", err)
			return
		}
		render.JSON(w, r, responses)
	}
}

func GetResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "id", "response id")
		if !ok {
			return
		}

		response, found, err := app.Responses.Get(r.Context(), id)
		if err != nil {
			httpx.LogError(w, r, "db.get_response", err)
			return
		}
		if !found {
			httpx.LogNotFound(w, r, "get_response", "response", id)
			return
		}
		render.JSON(w, r, response)
	}
}

func CreateResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.CreateResponse
		if !decodeBody(w, r, &in) {
			return
		}

		response, err := app.Responses.Create(r.Context(), in)
		if err != nil {
			httpx.LogError(w, r, "db.insert_response", err)
			return
		}
		created(w, r, response)
	}
}

func UpdateResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "id", "response id")
		if !ok {
			return
		}
		var in model.UpdateResponse
		if !decodeBody(w, r, &in) {
			return
		}

		response, found, err := app.Responses.Update(r.Context(), id, in)
		if err != nil {
			httpx.LogError(w, r, "db.update_response", err)
			return
		}
		if !found {
			httpx.LogNotFound(w, r, "update_response", "response", id)
			return
		}
		render.JSON(w, r, response)
	}
}

func DeleteResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "id", "response id")
		if !ok {
			return
		}

		if err := app.Responses.Delete(r.Context(), id); err != nil {
			httpx.LogError(w, r, "db.delete_response", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
