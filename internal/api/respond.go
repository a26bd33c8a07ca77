package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Veraticus/finmate/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v before committing status, so a value that cannot be
// encoded becomes a 500 instead of an empty 200.
func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("failed to encode response", "error", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal server error"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		a.logger.Error("failed to write response", "error", err)
	}
}

// writeError maps err onto a status code. Client mistakes are 400, unknown
// records 404, configuration problems and everything else 500.
func (a *API) writeError(w http.ResponseWriter, err error) {
	switch {
	case common.IsClientError(err):
		a.writeJSON(w, http.StatusBadRequest, errorResponse{Error: common.UserMessage(err)})
	case errors.Is(err, common.ErrNotFound):
		a.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case common.IsConfigError(err):
		a.logger.Error("configuration error", "error", err)
		a.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	default:
		a.logger.Error("request failed", "error", err)
		a.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// decodeBody reads a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.NewUserError("invalid request body", common.ErrInvalidInput)
	}
	return nil
}
