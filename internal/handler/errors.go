package handler

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"socialmedia/internal/httputil"
	"socialmedia/internal/model"
)

// writePlatformError maps the platform's error taxonomy onto HTTP responses.
func writePlatformError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, model.ErrHandleInvalid):
		httputil.WriteBadRequestWithCode(w, httputil.ErrCodeHandleInvalid, "Handle must be 1-30 characters without whitespace")
	case errors.Is(err, model.ErrPostInvalid):
		httputil.WriteBadRequestWithCode(w, httputil.ErrCodePostInvalid, "Message must be 1-100 characters")
	case errors.Is(err, model.ErrHandleConflict):
		httputil.WriteConflict(w, "Handle already taken")
	case errors.Is(err, model.ErrAccountNotFound):
		httputil.WriteNotFound(w, "Account not found")
	case errors.Is(err, model.ErrPostNotFound):
		httputil.WriteNotFound(w, "Post not found")
	case errors.Is(err, model.ErrNotActionable):
		httputil.WriteUnprocessable(w, httputil.ErrCodeNotActionable, err.Error())
	default:
		log.Printf("[ERROR] %s handler: err=%v", op, err)
		httputil.WriteInternalError(w, "Internal server error")
	}
}

// postIDParam reads the {id} path parameter.
func postIDParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// handleParam reads the {handle} path parameter, undoing percent-encoding.
func handleParam(r *http.Request) string {
	raw := chi.URLParam(r, "handle")
	if h, err := url.PathUnescape(raw); err == nil {
		return h
	}
	return raw
}
