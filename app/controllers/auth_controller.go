package controllers

import (
	"encoding/json"
	"net/http"

	"inkpress/app/models"
	"inkpress/app/services"
)

// AuthController handles admin login
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Login authenticates the admin and returns a bearer token
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if req.Username == "" || req.Password == "" {
		sendError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, claims, err := ac.auth.Authenticate(req.Username, req.Password)
	if err != nil {
		sendDomainError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user": map[string]string{
			"username": claims.Username,
			"role":     claims.Role,
		},
	})
}
