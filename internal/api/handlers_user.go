package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/somnahealth/somna-backend/internal/api/respond"
	"github.com/somnahealth/somna-backend/internal/api/validate"
	"github.com/somnahealth/somna-backend/internal/model"
	"github.com/somnahealth/somna-backend/internal/services"
)

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email       string  `json:"email"`
		Password    string  `json:"password"`
		FirstName   *string `json:"firstName,omitempty"`
		LastName    *string `json:"lastName,omitempty"`
		PhoneNumber *string `json:"phoneNumber,omitempty"`
		TimeZone    string  `json:"timeZone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validate.Email(in.Email); err != nil {
		respond.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Password(in.Password); err != nil {
		respond.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	u := &model.User{
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		TimeZone:    in.TimeZone,
	}
	out, err := h.svc.CreateUser(r.Context(), u, in.Password)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	u, err := h.svc.GetUser(r.Context(), userID)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var patch model.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if patch.Email != nil {
		if err := validate.Email(*patch.Email); err != nil {
			respond.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	u, err := h.svc.UpdateUser(r.Context(), userID, patch)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if err := h.svc.DeleteUser(r.Context(), userID); err != nil {
		respond.FromError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
