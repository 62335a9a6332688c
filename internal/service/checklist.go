package service

import (
	"context"
	"fmt"
	"time"

	"campervan-backend/internal/checklist"
	"campervan-backend/internal/domain"
	"campervan-backend/internal/logger"
	"campervan-backend/internal/repository"
)

type checklistService struct {
	checklistRepo   repository.ChecklistRepository
	reservationRepo repository.ReservationRepository
	vehicleRepo     repository.VehicleRepository
	noteRepo        repository.NotificationRepository
}

func NewChecklistService(
	checklistRepo repository.ChecklistRepository,
	reservationRepo repository.ReservationRepository,
	vehicleRepo repository.VehicleRepository,
	noteRepo repository.NotificationRepository,
) ChecklistService {
	return &checklistService{
		checklistRepo:   checklistRepo,
		reservationRepo: reservationRepo,
		vehicleRepo:     vehicleRepo,
		noteRepo:        noteRepo,
	}
}

func (s *checklistService) LoadChecklists(ctx context.Context, actor domain.Actor, reservationID int32) ([]domain.Checklist, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrUnauthorized
	}
	if _, err := s.reservationRepo.GetByID(ctx, reservationID); err != nil {
		return nil, err
	}
	// Zero rows is a valid answer: no checklist has been started yet.
	return s.checklistRepo.GetByReservation(ctx, reservationID)
}

func (s *checklistService) SaveChecklist(ctx context.Context, actor domain.Actor, reservationID int32, typ domain.ChecklistType, items []domain.ChecklistItem, notes, mileage string, expectedVersion int32, complete bool) (*domain.Checklist, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrUnauthorized
	}
	if !checklist.ValidType(typ) {
		return nil, domain.NewValidationError("type", "unknown checklist type %q", typ)
	}
	if _, err := s.reservationRepo.GetByID(ctx, reservationID); err != nil {
		return nil, err
	}
	// A nonzero expected version claims an existing row. If it has gone
	// missing the client's state is stale either way, so fail the same
	// as a version mismatch; the upsert would otherwise insert fresh at
	// version 1.
	if expectedVersion > 0 {
		if _, err := s.checklistRepo.Get(ctx, reservationID, typ); err != nil {
			if err == domain.ErrChecklistNotFound {
				return nil, domain.ErrVersionConflict
			}
			return nil, err
		}
	}
	if len(items) == 0 {
		items = checklist.Template(typ)
	}

	c := &domain.Checklist{
		ReservationID: reservationID,
		Type:          typ,
		Items:         items,
		Notes:         notes,
		Mileage:       mileage,
		Version:       expectedVersion,
	}
	if complete {
		if !checklist.IsComplete(c) {
			return nil, domain.ErrChecklistIncomplete
		}
		now := time.Now()
		userID := actor.UserID
		c.CompletedBy = &userID
		c.CompletedAt = &now
	}

	if err := s.checklistRepo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	logger.Info("Checklist saved", "reservation_id", reservationID, "type", typ, "version", c.Version, "complete", complete)
	return c, nil
}

func (s *checklistService) CompleteCheckout(ctx context.Context, actor domain.Actor, reservationID int32) (*domain.Reservation, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrUnauthorized
	}
	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.Status != domain.ReservationStatusPending && res.Status != domain.ReservationStatusConfirmed {
		return nil, domain.ErrInvalidTransition
	}

	handover, err := s.checklistRepo.Get(ctx, reservationID, domain.ChecklistHandover)
	if err != nil {
		if err == domain.ErrChecklistNotFound {
			return nil, domain.ErrChecklistIncomplete
		}
		return nil, err
	}
	if !handover.Completed() || !checklist.IsComplete(handover) {
		return nil, domain.ErrChecklistIncomplete
	}

	res.Status = domain.ReservationStatusOnRent
	if err := s.reservationRepo.Update(ctx, res); err != nil {
		return nil, err
	}
	if err := s.vehicleRepo.UpdateStatus(ctx, res.VehicleID, domain.VehicleStatusRented); err != nil {
		logger.Error("Failed to mark vehicle rented", "vehicle_id", res.VehicleID, "error", err)
	}

	notif := &domain.Notification{
		UserID:  res.CustomerID,
		Title:   "Checkout complete",
		Message: "Your camper van has been handed over. Safe travels!",
		Attributes: map[string]string{
			"type":           "CHECKOUT_COMPLETE",
			"reservation_id": fmt.Sprintf("%d", res.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, notif); err != nil {
		logger.Error("Failed to create checkout notification", "reservation_id", res.ID, "error", err)
	}

	logger.Info("Checkout complete", "reservation_id", res.ID, "staff_id", actor.UserID)
	return res, nil
}

func (s *checklistService) CompleteReturn(ctx context.Context, actor domain.Actor, reservationID int32) (*domain.Reservation, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrUnauthorized
	}
	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	// Overdue rentals still return through the same gate.
	if res.Status != domain.ReservationStatusOnRent && res.Status != domain.ReservationStatusOverdue {
		return nil, domain.ErrInvalidTransition
	}

	ret, err := s.checklistRepo.Get(ctx, reservationID, domain.ChecklistReturn)
	if err != nil {
		if err == domain.ErrChecklistNotFound {
			return nil, domain.ErrChecklistIncomplete
		}
		return nil, err
	}
	if !ret.Completed() || !checklist.IsComplete(ret) {
		return nil, domain.ErrChecklistIncomplete
	}

	res.Status = domain.ReservationStatusCompleted
	if err := s.reservationRepo.Update(ctx, res); err != nil {
		return nil, err
	}

	// Release the vehicle and record the returned mileage.
	vehicle, err := s.vehicleRepo.GetByID(ctx, res.VehicleID)
	if err == nil {
		vehicle.Status = domain.VehicleStatusAvailable
		if km, parseErr := parseMileage(ret.Mileage); parseErr == nil && km > vehicle.MileageKm {
			vehicle.MileageKm = km
		}
		if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
			logger.Error("Failed to release vehicle", "vehicle_id", res.VehicleID, "error", err)
		}
	} else {
		logger.Error("Failed to load vehicle on return", "vehicle_id", res.VehicleID, "error", err)
	}

	notif := &domain.Notification{
		UserID:  res.CustomerID,
		Title:   "Return complete",
		Message: "Thanks for traveling with us. Your rental is now closed.",
		Attributes: map[string]string{
			"type":           "RETURN_COMPLETE",
			"reservation_id": fmt.Sprintf("%d", res.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, notif); err != nil {
		logger.Error("Failed to create return notification", "reservation_id", res.ID, "error", err)
	}

	logger.Info("Return complete", "reservation_id", res.ID, "staff_id", actor.UserID, "mileage", ret.Mileage)
	return res, nil
}

func parseMileage(s string) (int32, error) {
	var km int32
	_, err := fmt.Sscanf(s, "%d", &km)
	return km, err
}
