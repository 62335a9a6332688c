package http

import (
	"encoding/json"
	"net/http"
	"net/url"

	"campervan-backend/internal/booking"
	"campervan-backend/internal/service"
)

type ReservationHandler struct {
	reservations service.ReservationService
}

func NewReservationHandler(reservations service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

// Quote re-prices a wizard draft carried in the query string. The
// wizard calls this on every step, so the draft never needs server-side
// session state and survives a bookmarked or shared URL.
func (h *ReservationHandler) Quote(w http.ResponseWriter, r *http.Request) {
	draft, err := booking.DecodeQuery(r.URL.Query())
	if err != nil {
		handleError(w, err)
		return
	}
	totals, err := h.reservations.QuoteDraft(r.Context(), draft)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

type createReservationRequest struct {
	// DraftQuery is the wizard draft in its query-string encoding, the
	// same form the quote endpoint consumes.
	DraftQuery string `json:"draft_query"`
	Notes      string `json:"notes"`
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	values, err := url.ParseQuery(req.DraftQuery)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed draft query")
		return
	}
	draft, err := booking.DecodeQuery(values)
	if err != nil {
		handleError(w, err)
		return
	}

	res, err := h.reservations.CreateReservation(r.Context(), actor, draft, req.Notes)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	res, err := h.reservations.GetReservation(r.Context(), actor, id)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// List is the staff view over all reservations.
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")
	items, total, err := h.reservations.ListReservations(r.Context(), actor, status, page, pageSize)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: items, Total: total, Page: page})
}

// ListMine is the customer view over their own reservations.
func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")
	items, total, err := h.reservations.ListMyReservations(r.Context(), actor, status, page, pageSize)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: items, Total: total, Page: page})
}

func (h *ReservationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
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
	res, err := h.reservations.ConfirmReservation(r.Context(), actor, id)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
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
	var req cancelRequest
	if r.Body != nil {
		// Reason is optional; an empty body cancels without one.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	res, err := h.reservations.CancelReservation(r.Context(), actor, id, req.Reason)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
