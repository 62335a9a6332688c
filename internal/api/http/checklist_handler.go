package http

import (
	"encoding/json"
	"net/http"

	"campervan-backend/internal/domain"
	"campervan-backend/internal/service"
)

type ChecklistHandler struct {
	checklists service.ChecklistService
}

func NewChecklistHandler(checklists service.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{checklists: checklists}
}

func (h *ChecklistHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}
	lists, err := h.checklists.LoadChecklists(r.Context(), actor, id)
	if err != nil {
		handleError(w, err)
		return
	}
	if lists == nil {
		lists = []domain.Checklist{}
	}
	writeJSON(w, http.StatusOK, lists)
}

type saveChecklistRequest struct {
	Type    domain.ChecklistType   `json:"type"`
	Items   []domain.ChecklistItem `json:"items"`
	Notes   string                 `json:"notes"`
	Mileage string                 `json:"mileage"`
	// Version is the version the client last loaded; a stale value is
	// rejected with a conflict so concurrent staff edits never clobber
	// each other silently.
	Version  int32 `json:"version"`
	Complete bool  `json:"complete"`
}

func (h *ChecklistHandler) Save(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}
	var req saveChecklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	saved, err := h.checklists.SaveChecklist(r.Context(), actor, id, req.Type, req.Items, req.Notes, req.Mileage, req.Version, req.Complete)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *ChecklistHandler) CompleteCheckout(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}
	res, err := h.checklists.CompleteCheckout(r.Context(), actor, id)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ChecklistHandler) CompleteReturn(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}
	res, err := h.checklists.CompleteReturn(r.Context(), actor, id)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
