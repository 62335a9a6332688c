package service

import (
	"context"

	"campervan-backend/internal/booking"
	"campervan-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)                             // access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

type CatalogService interface {
	ListVehicles(ctx context.Context, status string, page, pageSize int32) ([]domain.Vehicle, int32, error)
	GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error)
	AddVehicle(ctx context.Context, actor domain.Actor, v *domain.Vehicle) error
	UpdateVehicle(ctx context.Context, actor domain.Actor, v *domain.Vehicle) error

	ListEquipment(ctx context.Context, page, pageSize int32) ([]domain.Equipment, int32, error)
	AddEquipment(ctx context.Context, actor domain.Actor, e *domain.Equipment) error
	UpdateEquipment(ctx context.Context, actor domain.Actor, e *domain.Equipment) error

	ListActivities(ctx context.Context, activeOnly bool, page, pageSize int32) ([]domain.Activity, int32, error)
	AddActivity(ctx context.Context, actor domain.Actor, a *domain.Activity) error
	UpdateActivity(ctx context.Context, actor domain.Actor, a *domain.Activity) error
}

type ReservationService interface {
	// QuoteDraft re-prices a wizard draft server-side, resolving live
	// catalog prices and bounds. Used by every wizard step.
	QuoteDraft(ctx context.Context, draft booking.Draft) (booking.Totals, error)
	// CreateReservation finalizes a draft into a durable reservation:
	// re-validates and re-prices against the catalog, applies the
	// configured tax rate, reserves equipment stock and persists.
	CreateReservation(ctx context.Context, actor domain.Actor, draft booking.Draft, notes string) (*domain.Reservation, error)
	GetReservation(ctx context.Context, actor domain.Actor, id int32) (*domain.Reservation, error)
	ListReservations(ctx context.Context, actor domain.Actor, status string, page, pageSize int32) ([]domain.Reservation, int32, error)
	ListMyReservations(ctx context.Context, actor domain.Actor, status string, page, pageSize int32) ([]domain.Reservation, int32, error)
	ConfirmReservation(ctx context.Context, actor domain.Actor, id int32) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, actor domain.Actor, id int32, reason string) (*domain.Reservation, error)
}

type ChecklistService interface {
	LoadChecklists(ctx context.Context, actor domain.Actor, reservationID int32) ([]domain.Checklist, error)
	// SaveChecklist upserts the checklist for (reservation, type).
	// expectedVersion 0 means "create"; complete=true additionally
	// requires the completion predicate and stamps the completion actor
	// and time. Draft saves are always allowed.
	SaveChecklist(ctx context.Context, actor domain.Actor, reservationID int32, typ domain.ChecklistType, items []domain.ChecklistItem, notes, mileage string, expectedVersion int32, complete bool) (*domain.Checklist, error)
	// CompleteCheckout moves the reservation onto rent once the handover
	// checklist is complete, and marks the vehicle rented.
	CompleteCheckout(ctx context.Context, actor domain.Actor, reservationID int32) (*domain.Reservation, error)
	// CompleteReturn closes the reservation once the return checklist is
	// complete (including mileage), and releases the vehicle.
	CompleteReturn(ctx context.Context, actor domain.Actor, reservationID int32) (*domain.Reservation, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendReservationConfirmation(ctx context.Context, email, name string, res *domain.Reservation) error
	SendReturnReminder(ctx context.Context, email, name string, res *domain.Reservation) error
	SendCancellationNotice(ctx context.Context, email, name string, res *domain.Reservation, reason string) error
}
