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

type GoalsHandler struct {
	svc *services.GoalsService
}

func NewGoalsHandler(svc *services.GoalsService) *GoalsHandler { return &GoalsHandler{svc: svc} }

func (h *GoalsHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	g, err := h.svc.GetGoals(r.Context(), userID)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, g)
}

func (h *GoalsHandler) SetGoals(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var patch model.SleepGoalsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if err := validate.OptionalNonNegative("sleepWindow", patch.SleepWindow); err != nil {
		respond.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if patch.SleepDuration != nil && (*patch.SleepDuration <= 0 || *patch.SleepDuration > 24) {
		respond.WriteError(w, http.StatusBadRequest, "sleepDuration must be between 0 and 24 hours")
		return
	}

	g, err := h.svc.SetGoals(r.Context(), userID, patch)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, g)
}
