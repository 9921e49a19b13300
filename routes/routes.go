package routes

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/log"
	"github.com/mbolis/quick-forms/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.RequestID, middleware.RealIP, middlewares.Logger, middleware.Recoverer)
	root.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if app.MaxBodyBytes > 0 {
		root.Use(middlewares.MaxBody(app.MaxBodyBytes))
	}

	root.Get("/health", Health(app))
	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()
	api.Use(render.SetContentType(render.ContentTypeJSON))

	api.Route("/forms", func(r chi.Router) {
		r.Get("/", ListForms(app))
		r.Post("/", CreateForm(app))
		r.Get("/{id}", GetForm(app))
		r.Patch("/{id}", UpdateForm(app))
		r.Delete("/{id}", DeleteForm(app))
	})

	api.Route("/fields", func(r chi.Router) {
		r.Post("/", CreateField(app))
		r.Get("/form/{formId}", ListFormFields(app))
		r.Get("/{id}", GetField(app))
		r.Patch("/{id}", UpdateField(app))
		r.Delete("/{id}", DeleteField(app))
	})

	api.Route("/clients", func(r chi.Router) {
		r.Post("/", CreateClient(app))
		r.Get("/form/{formId}", ListFormClients(app))
		r.Get("/{id}", GetClient(app))
		r.Patch("/{id}", UpdateClient(app))
		r.Delete("/{id}", DeleteClient(app))
	})

	api.Route("/responses", func(r chi.Router) {
		r.Post("/", CreateResponse(app))
		r.Get("/client/{clientId}", ListClientResponses(app))
		r.Get("/field/{fieldId}", ListFieldResponses(app))
		r.Get("/{id}", GetResponse(app))
		r.Patch("/{id}", UpdateResponse(app))
		r.Delete("/{id}", DeleteResponse(app))
	})

	api.Route("/public/forms/{id}", func(r chi.Router) {
		r.Get("/", PublicGetForm(app))
		r.Post("/submit", PublicSubmitForm(app))
	})

	return api
}

func Health(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := app.Ping(r.Context()); err != nil {
			httpx.LogInternalError(w, r, "health.db_ping", err)
			return
		}
		render.JSON(w, r, map[string]any{"status": "ok"})
	}
}

// urlID reads a positive integer URL parameter, answering 400 otherwise.
func urlID(w http.ResponseWriter, r *http.Request, param, label string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param."+param,
			"%s must be a positive integer", label)
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "invalid request body")
		return false
	}
	return true
}

func created(w http.ResponseWriter, r *http.Request, v any) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, v)
}
