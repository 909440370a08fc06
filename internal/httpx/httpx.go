package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harborline/disruption-shield/internal/contracts"
)

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError maps the shared error taxonomy onto HTTP statuses: validation
// errors name the offending field, lookup misses become 404s.
func WriteError(w http.ResponseWriter, err error) {
	var verr *contracts.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusBadRequest, map[string]any{"error": verr.Msg, "field": verr.Field})
	case errors.Is(err, contracts.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
	default:
		WriteJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
