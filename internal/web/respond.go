// internal/web/respond.go
//
// JSON response and error-mapping helpers.
//
// Error policy: the three domain error classes map to stable statuses —
// validation 422 (with the field list in the body), duplicate 409, not
// found 404.  Anything else is a 500 with a generic body; the detail goes
// to the log, never to the client.
package web

import (
	"encoding/json"
	"net/http"

	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/apperr"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.Log.Errorw("encode response", "err", err)
	}
}

// respondError maps err onto the wire.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperr.IsValidation(err) != nil:
		ve := apperr.IsValidation(err)
		s.respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation_failed",
			"fields": ve.Fields,
		})
	case apperr.IsDuplicate(err) != nil:
		de := apperr.IsDuplicate(err)
		s.respondJSON(w, http.StatusConflict, map[string]any{
			"error": "duplicate",
			"field": de.Field,
		})
	case apperr.IsNotFound(err) != nil:
		s.respondJSON(w, http.StatusNotFound, map[string]any{
			"error": "not_found",
		})
	default:
		s.Log.Errorw("internal error", "path", r.URL.Path, "err", err)
		s.respondJSON(w, http.StatusInternalServerError, map[string]any{
			"error": "internal",
		})
	}
}

// decodeJSON reads the request body into dst, rejecting unknown garbage
// early with a validation-shaped 422 so clients get one consistent error
// format.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation_failed",
			"fields": []apperr.FieldError{{Field: "body", Reason: "malformed JSON"}},
		})
		return false
	}
	return true
}
