package httpx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"

	"github.com/mbolis/quick-forms/database"
	"github.com/mbolis/quick-forms/log"
	"github.com/mbolis/quick-forms/submission"
)

const internalErrorMessage = "something went wrong"

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string  `json:"error"`
	Missing []int64 `json:"missing,omitempty"`
}

func logger(r *http.Request, code string) *log.Entry {
	fields := log.Fields{"code": code}
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		fields["request_id"] = reqID
	}
	return log.WithFields(fields)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, body ErrorBody) {
	render.Status(r, status)
	render.JSON(w, r, body)
}

// Will log an error, and send an HTTP response with status 500 and a fixed
// message. The cause never leaves the server.
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	logger(r, code).WithError(err).Error("internal error")
	writeError(w, r, http.StatusInternalServerError, ErrorBody{Error: internalErrorMessage})
}

// Will log a debug message, and send an HTTP response with status 404
func LogNotFound(w http.ResponseWriter, r *http.Request, code string, what string, id any) {
	logger(r, code).Debugf("not found (%v)", id)
	writeError(w, r, http.StatusNotFound, ErrorBody{Error: what + " not found"})
}

// Will log an error code and message at the given level,
// and send an HTTP response with the given status and formatted message
func LogStatusMsg(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	logger(r, code).Log(logrus.Level(level), errMsg)
	writeError(w, r, status, ErrorBody{Error: errMsg})
}

// Status returns the HTTP status an error from the core maps to.
func Status(err error) int {
	var incomplete *submission.IncompleteError
	var invalid *database.ValidationError
	switch {
	case errors.As(err, &incomplete):
		return http.StatusBadRequest
	case errors.Is(err, submission.ErrFormNotFound):
		return http.StatusNotFound
	case errors.Is(err, submission.ErrDuplicateSubmission), errors.Is(err, database.ErrConflict):
		return http.StatusConflict
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// LogError translates an error from the repositories or the submission
// workflow into a response. Validation messages are sent verbatim, store
// failures are logged and hidden behind a generic 500.
func LogError(w http.ResponseWriter, r *http.Request, code string, err error) {
	status := Status(err)
	switch status {
	case http.StatusInternalServerError:
		LogInternalError(w, r, code, err)
		return
	case http.StatusConflict:
		logger(r, code).Debug(err)
		msg := err.Error()
		if !errors.Is(err, submission.ErrDuplicateSubmission) {
			msg = database.ErrConflict.Error()
		}
		writeError(w, r, status, ErrorBody{Error: msg})
		return
	}

	var incomplete *submission.IncompleteError
	if errors.As(err, &incomplete) {
		logger(r, code).WithField("missing", incomplete.Missing).Debug(err)
		writeError(w, r, status, ErrorBody{Error: incomplete.Error(), Missing: incomplete.Missing})
		return
	}

	var invalid *database.ValidationError
	if errors.As(err, &invalid) && invalid.Internal {
		logger(r, code).WithField("internal", true).Error(err)
	} else {
		logger(r, code).Debug(err)
	}
	writeError(w, r, status, ErrorBody{Error: err.Error()})
}
