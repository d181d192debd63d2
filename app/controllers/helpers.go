package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"inkpress/app/repositories"
	"inkpress/app/services"
)

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, map[string]string{"error": message})
}

// sendDomainError maps domain outcomes to status codes. Anything
// unexpected becomes a generic 500; the detail goes to the log only.
func sendDomainError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		sendError(w, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, repositories.ErrNotFound):
		sendError(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, services.ErrInvalidCredentials):
		sendError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrNotConfigured):
		log.Printf("auth misconfigured: %v", err)
		sendError(w, http.StatusInternalServerError, "Server configuration error")
	default:
		log.Printf("internal error: %v", err)
		sendError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
