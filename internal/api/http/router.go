// Package http exposes the REST surface of the campervan backend:
// public auth and catalog browsing, customer reservation endpoints, and
// staff-only checklist workflow endpoints.
package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"campervan-backend/internal/security"
	"campervan-backend/internal/service"
)

type RouterDeps struct {
	Auth          service.AuthService
	Catalog       service.CatalogService
	Reservations  service.ReservationService
	Checklists    service.ChecklistService
	Notifications service.NotificationService
	Tokens        security.TokenManager
}

// NewRouter wires all handlers under /api/v1. Auth, catalog browsing
// and health are public; everything else requires a bearer token.
func NewRouter(deps RouterDeps) *mux.Router {
	authHandler := NewAuthHandler(deps.Auth)
	catalogHandler := NewCatalogHandler(deps.Catalog)
	reservationHandler := NewReservationHandler(deps.Reservations)
	checklistHandler := NewChecklistHandler(deps.Checklists)
	notificationHandler := NewNotificationHandler(deps.Notifications)
	authMW := NewAuthMiddleware(deps.Tokens)

	root := mux.NewRouter()
	root.Use(Recovery, RequestLogging)

	root.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := root.PathPrefix("/api/v1").Subrouter()

	// Public endpoints.
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST")
	api.HandleFunc("/vehicles", catalogHandler.ListVehicles).Methods("GET")
	api.HandleFunc("/vehicles/{id:[0-9]+}", catalogHandler.GetVehicle).Methods("GET")
	api.HandleFunc("/equipment", catalogHandler.ListEquipment).Methods("GET")
	api.HandleFunc("/activities", catalogHandler.ListActivities).Methods("GET")
	// Quoting a draft needs no account: the wizard prices before login.
	api.HandleFunc("/reservations/quote", reservationHandler.Quote).Methods("GET")

	// Authenticated endpoints.
	authed := api.NewRoute().Subrouter()
	authed.Use(authMW.Authenticate)

	authed.HandleFunc("/vehicles", catalogHandler.AddVehicle).Methods("POST")
	authed.HandleFunc("/vehicles/{id:[0-9]+}", catalogHandler.UpdateVehicle).Methods("PUT")
	authed.HandleFunc("/equipment", catalogHandler.AddEquipment).Methods("POST")
	authed.HandleFunc("/equipment/{id:[0-9]+}", catalogHandler.UpdateEquipment).Methods("PUT")
	authed.HandleFunc("/activities", catalogHandler.AddActivity).Methods("POST")
	authed.HandleFunc("/activities/{id:[0-9]+}", catalogHandler.UpdateActivity).Methods("PUT")

	authed.HandleFunc("/reservations", reservationHandler.Create).Methods("POST")
	authed.HandleFunc("/reservations", reservationHandler.List).Methods("GET")
	authed.HandleFunc("/reservations/mine", reservationHandler.ListMine).Methods("GET")
	authed.HandleFunc("/reservations/{id:[0-9]+}", reservationHandler.Get).Methods("GET")
	authed.HandleFunc("/reservations/{id:[0-9]+}/confirm", reservationHandler.Confirm).Methods("POST")
	authed.HandleFunc("/reservations/{id:[0-9]+}/cancel", reservationHandler.Cancel).Methods("POST")

	authed.HandleFunc("/reservations/{id:[0-9]+}/checklists", checklistHandler.List).Methods("GET")
	authed.HandleFunc("/reservations/{id:[0-9]+}/checklists", checklistHandler.Save).Methods("PUT")
	authed.HandleFunc("/reservations/{id:[0-9]+}/checkout", checklistHandler.CompleteCheckout).Methods("POST")
	authed.HandleFunc("/reservations/{id:[0-9]+}/return", checklistHandler.CompleteReturn).Methods("POST")

	authed.HandleFunc("/notifications", notificationHandler.List).Methods("GET")
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", notificationHandler.MarkAsRead).Methods("POST")

	return root
}
