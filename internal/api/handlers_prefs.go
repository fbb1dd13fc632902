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

type PreferencesHandler struct {
	svc *services.PreferencesService
}

func NewPreferencesHandler(svc *services.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{svc: svc}
}

func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	n, err := h.svc.GetPreferences(r.Context(), userID)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, n)
}

func (h *PreferencesHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var patch model.NotificationPreferencesPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if err := validatePrefsPatch(patch); err != nil {
		respond.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.svc.UpdatePreferences(r.Context(), userID, patch)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, n)
}

func validatePrefsPatch(patch model.NotificationPreferencesPatch) error {
	if err := validate.Frequency("sleepRemindersFrequency", patch.SleepRemindersFrequency); err != nil {
		return err
	}
	if err := validate.Frequency("journalRemindersFrequency", patch.JournalRemindersFrequency); err != nil {
		return err
	}
	if err := validate.ClockString("sleepReminderTime", patch.SleepReminderTime); err != nil {
		return err
	}
	return validate.ClockString("morningReminderTime", patch.MorningReminderTime)
}
