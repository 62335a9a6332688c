package http

import (
	"encoding/json"
	"net/http"

	"campervan-backend/internal/domain"
	"campervan-backend/internal/service"
)

type CatalogHandler struct {
	catalog service.CatalogService
}

func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")
	vehicles, total, err := h.catalog.ListVehicles(r.Context(), status, page, pageSize)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: vehicles, Total: total, Page: page})
}

func (h *CatalogHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	vehicle, err := h.catalog.GetVehicle(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *CatalogHandler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var vehicle domain.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.catalog.AddVehicle(r.Context(), actor, &vehicle); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *CatalogHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	var vehicle domain.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	vehicle.ID = id
	if err := h.catalog.UpdateVehicle(r.Context(), actor, &vehicle); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *CatalogHandler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	equipment, total, err := h.catalog.ListEquipment(r.Context(), page, pageSize)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: equipment, Total: total, Page: page})
}

func (h *CatalogHandler) AddEquipment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var equipment domain.Equipment
	if err := json.NewDecoder(r.Body).Decode(&equipment); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.catalog.AddEquipment(r.Context(), actor, &equipment); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, equipment)
}

func (h *CatalogHandler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}
	var equipment domain.Equipment
	if err := json.NewDecoder(r.Body).Decode(&equipment); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	equipment.ID = id
	if err := h.catalog.UpdateEquipment(r.Context(), actor, &equipment); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, equipment)
}

func (h *CatalogHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	activeOnly := r.URL.Query().Get("active_only") == "true"
	activities, total, err := h.catalog.ListActivities(r.Context(), activeOnly, page, pageSize)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: activities, Total: total, Page: page})
}

func (h *CatalogHandler) AddActivity(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var activity domain.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.catalog.AddActivity(r.Context(), actor, &activity); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

func (h *CatalogHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid activity id")
		return
	}
	var activity domain.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	activity.ID = id
	if err := h.catalog.UpdateActivity(r.Context(), actor, &activity); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}
