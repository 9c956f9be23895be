package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/bookshelf/book"
	"github.com/marcelsud/bookshelf/internal/user"
	"github.com/marcelsud/bookshelf/internal/validation"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

var errInvalidID = errors.New("id must be a positive integer")

func statusFor(err error) int {
	switch {
	case errors.Is(err, user.ErrNotFound), errors.Is(err, book.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, user.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, user.ErrValidation),
		errors.Is(err, book.ErrValidation),
		errors.Is(err, validation.ErrInvalid),
		errors.Is(err, errInvalidID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps domain errors to status codes. Internal errors are logged, not returned.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error()}

	var verr *validation.Error
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	if status == http.StatusInternalServerError {
		logger := httplog.LogEntry(r.Context())
		logger.Error().Err(err).Msg("request failed")
		resp.Error = http.StatusText(status)
	}
	writeJSON(w, r, status, resp)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger := httplog.LogEntry(r.Context())
		logger.Error().Err(err).Msg("encoding response")
	}
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}
