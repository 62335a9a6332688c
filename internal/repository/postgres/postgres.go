package postgres

import (
	"database/sql"

	_ "github.com/lib/pq"

	"campervan-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.VehicleRepository
	repository.EquipmentRepository
	repository.ActivityRepository
	repository.ReservationRepository
	repository.ChecklistRepository
	repository.UserRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		VehicleRepository:      NewVehicleRepository(db),
		EquipmentRepository:    NewEquipmentRepository(db),
		ActivityRepository:     NewActivityRepository(db),
		ReservationRepository:  NewReservationRepository(db),
		ChecklistRepository:    NewChecklistRepository(db),
		UserRepository:         NewUserRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
