package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-openapi/strfmt"
	"github.com/gorilla/mux"

	"github.com/somnahealth/somna-backend/internal/api/respond"
	"github.com/somnahealth/somna-backend/internal/api/validate"
	"github.com/somnahealth/somna-backend/internal/model"
	"github.com/somnahealth/somna-backend/internal/services"
)

type DiaryHandler struct {
	svc *services.DiaryService
}

func NewDiaryHandler(svc *services.DiaryService) *DiaryHandler { return &DiaryHandler{svc: svc} }

// createDiaryRequest uses pointers for the required fields so that absent
// and zero-valued inputs are distinguishable.
type createDiaryRequest struct {
	Date           *strfmt.Date     `json:"date"`
	BedTime        *model.TimeOfDay `json:"bedTime"`
	FallAsleepTime *model.TimeOfDay `json:"fallAsleepTime"`
	WakeTime       *model.TimeOfDay `json:"wakeTime"`
	GetUpTime      *model.TimeOfDay `json:"getUpTime"`
	Awakenings     int              `json:"awakenings"`
	TotalAwakeTime int              `json:"totalAwakeTime"`
	SleepQuality   int              `json:"sleepQuality"`
	Restedness     int              `json:"restedness"`
	Mood           int              `json:"mood"`
	Notes          *string          `json:"notes,omitempty"`
}

func (in *createDiaryRequest) validate() error {
	required := map[string]bool{
		"date":           in.Date == nil,
		"bedTime":        in.BedTime == nil,
		"fallAsleepTime": in.FallAsleepTime == nil,
		"wakeTime":       in.WakeTime == nil,
		"getUpTime":      in.GetUpTime == nil,
	}
	for field, missing := range required {
		if missing {
			return validate.Required(field)
		}
	}
	if err := validate.NonNegative("awakenings", in.Awakenings); err != nil {
		return err
	}
	if err := validate.NonNegative("totalAwakeTime", in.TotalAwakeTime); err != nil {
		return err
	}
	for field, v := range map[string]int{
		"sleepQuality": in.SleepQuality,
		"restedness":   in.Restedness,
		"mood":         in.Mood,
	} {
		if err := validate.Rating(field, v); err != nil {
			return err
		}
	}
	return nil
}

func (h *DiaryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var in createDiaryRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if err := in.validate(); err != nil {
		respond.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	e := &model.SleepDiaryEntry{
		UserID:         userID,
		Date:           *in.Date,
		BedTime:        *in.BedTime,
		FallAsleepTime: *in.FallAsleepTime,
		WakeTime:       *in.WakeTime,
		GetUpTime:      *in.GetUpTime,
		Awakenings:     in.Awakenings,
		TotalAwakeTime: in.TotalAwakeTime,
		SleepQuality:   in.SleepQuality,
		Restedness:     in.Restedness,
		Mood:           in.Mood,
		Notes:          in.Notes,
	}
	out, err := h.svc.CreateEntry(r.Context(), e)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (h *DiaryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	limit := queryInt(r, "limit", 0)
	skip := queryInt(r, "skip", 0)

	entries, err := h.svc.ListEntries(r.Context(), userID, limit, skip)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"diaries": entries})
}

func (h *DiaryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	e, err := h.svc.GetEntry(r.Context(), vars["userId"], vars["diaryId"])
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, e)
}

func (h *DiaryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var patch model.SleepDiaryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if err := validatePatch(patch); err != nil {
		respond.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	e, err := h.svc.UpdateEntry(r.Context(), vars["userId"], vars["diaryId"], patch)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, e)
}

func (h *DiaryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.svc.DeleteEntry(r.Context(), vars["userId"], vars["diaryId"]); err != nil {
		respond.FromError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validatePatch(patch model.SleepDiaryPatch) error {
	if err := validate.OptionalNonNegative("awakenings", patch.Awakenings); err != nil {
		return err
	}
	if err := validate.OptionalNonNegative("totalAwakeTime", patch.TotalAwakeTime); err != nil {
		return err
	}
	for field, v := range map[string]*int{
		"sleepQuality": patch.SleepQuality,
		"restedness":   patch.Restedness,
		"mood":         patch.Mood,
	} {
		if err := validate.OptionalRating(field, v); err != nil {
			return err
		}
	}
	return nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
