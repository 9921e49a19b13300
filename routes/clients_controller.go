package routes

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/model"
)

func ListFormClients(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID, ok := urlID(w, r, "formId", "form id")
		if !ok {
			return
		}

		clients, err := app.Clients.ListByForm(r.Context(), formID)
		if err != nil {
			httpx.LogError(w, r, "db.list_clients", err)
			return
		}
		render.JSON(w, r, clients)
	}
}

func GetClient(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "id", "client id")
		if !ok {
			return
		}

		client, found, err := app.Clients.Get(r.Context(), id)
		if err != nil {
			httpx.LogError(w, r, "db.get_client", err)
			return
		}
		if !found {
			httpx.LogNotFound(w, r, "get_client", "client", id)
			return
		}
		render.JSON(w, r, client)
	}
}

func CreateClient(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.CreateClient
		if !decodeBody(w, r, &in) {
			return
		}

		client, err := app.Clients.Create(r.Context(), in)
		if err != nil {
			httpx.LogError(w, r, "db.insert_client", err)
			return
		}
		created(w, r, client)
	}
}

func UpdateClient(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "id", "client id")
		if !ok {
			return
		}
		var in model.UpdateClient
		if !decodeBody(w, r, &in) {
			return
		}

		client, found, err := app.Clients.Update(r.Context(), id, in)
		if err != nil {
			httpx.LogError(w, r, "db.update_client", err)
			return
		}
		if !found {
			httpx.LogNotFound(w, r, "update_client", "client", id)
			return
		}
		render.JSON(w, r, client)
	}
}

func DeleteClient(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "id", "client id")
		if !ok {
			return
		}

		if err := app.Clients.Delete(r.Context(), id); err != nil {
			httpx.LogError(w, r, "db.delete_client", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
