package httpapi

import (
	"net/http"

	"deliverypro-backend-go/internal/services"
)

// GetLocale reports the effective language and direction for this session.
// The ?lang= override has already been applied by the session middleware.
func (s *Server) GetLocale(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, CurrentLocale(r))
}

// GetFlash consumes the session's flash slot; 204 when there is none.
func (s *Server) GetFlash(w http.ResponseWriter, r *http.Request) {
	flash, err := services.GetFlash(r.Context(), s.Sessions, CurrentSessionID(r))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if flash == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	WriteJSON(w, http.StatusOK, flash)
}
