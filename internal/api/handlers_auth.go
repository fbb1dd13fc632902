package api

import (
	"encoding/json"
	"net/http"

	"github.com/somnahealth/somna-backend/internal/api/respond"
	"github.com/somnahealth/somna-backend/internal/model"
	"github.com/somnahealth/somna-backend/internal/services"
)

type AuthHandler struct {
	svc *services.AuthService
}

func NewAuthHandler(svc *services.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// loginResponse matches the OAuth2 password-flow token shape clients expect.
type loginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        *model.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Username string `json:"username"` // accepted as an alias for email
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	identity := in.Email
	if identity == "" {
		identity = in.Username
	}
	if identity == "" || in.Password == "" {
		respond.FromError(w, model.ErrInvalidCredentials)
		return
	}

	token, user, err := h.svc.Login(r.Context(), identity, in.Password)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}
