package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/somnahealth/somna-backend/internal/api/respond"
	"github.com/somnahealth/somna-backend/internal/api/validate"
	"github.com/somnahealth/somna-backend/internal/services"
)

type ProgramHandler struct {
	svc *services.ProgramService
}

func NewProgramHandler(svc *services.ProgramService) *ProgramHandler {
	return &ProgramHandler{svc: svc}
}

func (h *ProgramHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	out, err := h.svc.ListProgress(r.Context(), userID)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"weeks": out})
}

func (h *ProgramHandler) StartWeek(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	week, ok := weekVar(w, r)
	if !ok {
		return
	}
	p, err := h.svc.StartWeek(r.Context(), userID, week)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, p)
}

func (h *ProgramHandler) CompleteWeek(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	week, ok := weekVar(w, r)
	if !ok {
		return
	}
	p, err := h.svc.CompleteWeek(r.Context(), userID, week)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

func (h *ProgramHandler) RecordActivity(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	week, ok := weekVar(w, r)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
		Kind string `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if req.Name == "" {
		respond.WriteError(w, http.StatusBadRequest, validate.Required("name").Error())
		return
	}

	a, err := h.svc.RecordActivity(r.Context(), userID, week, req.Name, req.Kind)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, a)
}

// weekVar parses the {week} path variable. The route pattern restricts it
// to digits, so a parse failure still gets a clean 400 rather than a panic.
func weekVar(w http.ResponseWriter, r *http.Request) (int, bool) {
	week, err := strconv.Atoi(mux.Vars(r)["week"])
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "week must be an integer")
		return 0, false
	}
	return week, true
}
