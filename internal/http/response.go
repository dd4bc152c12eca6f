package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"deliverypro-backend-go/internal/services"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

// WriteServiceError surfaces validation failures with their own status and
// message; everything else stays a generic 500 so internals never leak.
func WriteServiceError(w http.ResponseWriter, err error) {
	var serviceErr services.ServiceError
	if errors.As(err, &serviceErr) {
		WriteError(w, serviceErr.Status, serviceErr.Message)
		return
	}
	WriteError(w, http.StatusInternalServerError, "Internal server error")
}
