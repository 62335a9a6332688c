package repository

import (
	"context"

	"campervan-backend/internal/domain"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	UpdateStatus(ctx context.Context, id int32, status domain.VehicleStatus) error
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Vehicle, int32, error)
}

type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	Update(ctx context.Context, e *domain.Equipment) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Equipment, int32, error)
	// AdjustAvailableStock adds delta to available_stock, failing with
	// domain.ErrInsufficientStock when the result would go negative.
	AdjustAvailableStock(ctx context.Context, id int32, delta int32) error
}

type ActivityRepository interface {
	Create(ctx context.Context, a *domain.Activity) error
	GetByID(ctx context.Context, id int32) (*domain.Activity, error)
	Update(ctx context.Context, a *domain.Activity) error
	List(ctx context.Context, activeOnly bool, page, pageSize int32) ([]domain.Activity, int32, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int32) (*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Reservation, int32, error)
	ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error)
	// ListEndingOn returns reservations in the given statuses whose end
	// date equals endDate (yyyy-mm-dd). Used by the return reminder job.
	ListEndingOn(ctx context.Context, endDate string, statuses []domain.ReservationStatus) ([]domain.Reservation, error)
	// MarkOverdue flips ON_RENT reservations whose end date is before
	// cutoff to OVERDUE and returns the affected ids.
	MarkOverdue(ctx context.Context, cutoff string) ([]int32, error)
	// ListStalePending returns PENDING reservations created before cutoff.
	ListStalePending(ctx context.Context, cutoff string) ([]domain.Reservation, error)
}

type ChecklistRepository interface {
	GetByReservation(ctx context.Context, reservationID int32) ([]domain.Checklist, error)
	Get(ctx context.Context, reservationID int32, typ domain.ChecklistType) (*domain.Checklist, error)
	// Upsert creates the row for (reservation, type) on first save and
	// overwrites it afterwards. Updates require c.Version to match the
	// stored version; a mismatch fails with domain.ErrVersionConflict.
	// On success c.ID and c.Version reflect the stored row.
	Upsert(ctx context.Context, c *domain.Checklist) error
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
