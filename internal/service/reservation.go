package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"campervan-backend/internal/booking"
	"campervan-backend/internal/domain"
	"campervan-backend/internal/logger"
	"campervan-backend/internal/repository"
)

type reservationService struct {
	reservationRepo repository.ReservationRepository
	vehicleRepo     repository.VehicleRepository
	equipmentRepo   repository.EquipmentRepository
	activityRepo    repository.ActivityRepository
	userRepo        repository.UserRepository
	noteRepo        repository.NotificationRepository
	emailSvc        EmailService
	taxRateBP       int32
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	vehicleRepo repository.VehicleRepository,
	equipmentRepo repository.EquipmentRepository,
	activityRepo repository.ActivityRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	taxRateBasisPoints int32,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		vehicleRepo:     vehicleRepo,
		equipmentRepo:   equipmentRepo,
		activityRepo:    activityRepo,
		userRepo:        userRepo,
		noteRepo:        noteRepo,
		emailSvc:        emailSvc,
		taxRateBP:       taxRateBasisPoints,
	}
}

// repriceDraft rebuilds the draft from catalog data so client-supplied
// prices and bounds are never trusted. The client's line structure is
// kept; unit prices, pricing types and participant bounds come from the
// catalog.
func (s *reservationService) repriceDraft(ctx context.Context, draft booking.Draft) (booking.Draft, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, draft.VehicleID)
	if err != nil {
		return booking.Draft{}, err
	}

	priced, err := booking.NewDraft(vehicle.ID, vehicle.Name, vehicle.PricePerDayCents, draft.Range.Start, draft.Range.End)
	if err != nil {
		return booking.Draft{}, err
	}

	for _, line := range draft.Equipment {
		item, err := s.equipmentRepo.GetByID(ctx, line.EquipmentID)
		if err != nil {
			return booking.Draft{}, err
		}
		priced, err = priced.AddEquipment(item.ID, item.Name, item.UnitPriceCents, line.Quantity, item.PricingType)
		if err != nil {
			return booking.Draft{}, err
		}
	}
	for _, line := range draft.Activities {
		activity, err := s.activityRepo.GetByID(ctx, line.ActivityID)
		if err != nil {
			return booking.Draft{}, err
		}
		if !activity.Active {
			return booking.Draft{}, domain.NewValidationError("activity", "%s is not currently offered", activity.Name)
		}
		min, max := activity.ParticipantBounds()
		priced, err = priced.AddActivity(activity.ID, activity.Name, activity.UnitPriceCents, line.Date, line.Participants, min, max)
		if err != nil {
			return booking.Draft{}, err
		}
	}
	return priced, nil
}

func (s *reservationService) QuoteDraft(ctx context.Context, draft booking.Draft) (booking.Totals, error) {
	priced, err := s.repriceDraft(ctx, draft)
	if err != nil {
		return booking.Totals{}, err
	}
	return priced.Totals(), nil
}

func (s *reservationService) CreateReservation(ctx context.Context, actor domain.Actor, draft booking.Draft, notes string) (*domain.Reservation, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, draft.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != domain.VehicleStatusAvailable {
		return nil, domain.ErrVehicleUnavailable
	}

	priced, err := s.repriceDraft(ctx, draft)
	if err != nil {
		return nil, err
	}
	input := priced.Finalize(s.taxRateBP)

	// Reserve equipment stock line by line, rolling back on failure so a
	// rejected reservation never leaves stock decremented.
	var reserved []domain.EquipmentLine
	restock := func() {
		for _, line := range reserved {
			if err := s.equipmentRepo.AdjustAvailableStock(ctx, line.EquipmentID, line.Quantity); err != nil {
				logger.Error("Failed to restock equipment after aborted reservation", "equipment_id", line.EquipmentID, "error", err)
			}
		}
	}
	for _, line := range input.EquipmentLines {
		if line.Quantity == 0 {
			continue
		}
		if err := s.equipmentRepo.AdjustAvailableStock(ctx, line.EquipmentID, -line.Quantity); err != nil {
			restock()
			return nil, err
		}
		reserved = append(reserved, line)
	}

	res := &domain.Reservation{
		Number:         uuid.NewString(),
		CustomerID:     actor.UserID,
		VehicleID:      input.VehicleID,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		Days:           input.Days,
		EquipmentLines: input.EquipmentLines,
		ActivityLines:  input.ActivityLines,
		SubtotalCents:  input.SubtotalCents,
		TaxCents:       input.TaxCents,
		TotalCents:     input.TotalCents,
		Status:         domain.ReservationStatusPending,
		Notes:          notes,
	}
	if err := s.reservationRepo.Create(ctx, res); err != nil {
		restock()
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	// Confirmation email and notification are best-effort; the
	// reservation stands even if they fail.
	if customer, err := s.userRepo.GetByID(ctx, actor.UserID); err == nil {
		if err := s.emailSvc.SendReservationConfirmation(ctx, customer.Email, customer.Name, res); err != nil {
			logger.Error("Failed to send reservation confirmation", "reservation_id", res.ID, "error", err)
		}
		notif := &domain.Notification{
			UserID:  customer.ID,
			Title:   "Reservation received",
			Message: fmt.Sprintf("Your reservation for %s from %s is awaiting confirmation", vehicle.Name, res.StartDate),
			Attributes: map[string]string{
				"type":           "RESERVATION_CREATED",
				"reservation_id": fmt.Sprintf("%d", res.ID),
			},
		}
		if err := s.noteRepo.Create(ctx, notif); err != nil {
			logger.Error("Failed to create notification", "reservation_id", res.ID, "error", err)
		}
	}

	return res, nil
}

func (s *reservationService) GetReservation(ctx context.Context, actor domain.Actor, id int32) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.CustomerID != actor.UserID && !actor.IsStaff() {
		return nil, domain.ErrUnauthorized
	}
	return res, nil
}

func (s *reservationService) ListReservations(ctx context.Context, actor domain.Actor, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	if !actor.IsStaff() {
		return nil, 0, domain.ErrUnauthorized
	}
	return s.reservationRepo.List(ctx, status, page, pageSize)
}

func (s *reservationService) ListMyReservations(ctx context.Context, actor domain.Actor, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	return s.reservationRepo.ListByCustomer(ctx, actor.UserID, status, page, pageSize)
}

func (s *reservationService) ConfirmReservation(ctx context.Context, actor domain.Actor, id int32) (*domain.Reservation, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrUnauthorized
	}
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != domain.ReservationStatusPending {
		return nil, domain.ErrInvalidTransition
	}
	res.Status = domain.ReservationStatusConfirmed
	if err := s.reservationRepo.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *reservationService) CancelReservation(ctx context.Context, actor domain.Actor, id int32, reason string) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.CustomerID != actor.UserID && !actor.IsStaff() {
		return nil, domain.ErrUnauthorized
	}
	if res.Status != domain.ReservationStatusPending && res.Status != domain.ReservationStatusConfirmed {
		return nil, domain.ErrInvalidTransition
	}

	res.Status = domain.ReservationStatusCancelled
	if reason != "" {
		res.Notes = fmt.Sprintf("%s\nCancelled: %s", res.Notes, reason)
	}
	if err := s.reservationRepo.Update(ctx, res); err != nil {
		return nil, err
	}

	// Release reserved equipment stock.
	for _, line := range res.EquipmentLines {
		if line.Quantity == 0 {
			continue
		}
		if err := s.equipmentRepo.AdjustAvailableStock(ctx, line.EquipmentID, line.Quantity); err != nil {
			logger.Error("Failed to restock equipment on cancellation", "reservation_id", res.ID, "equipment_id", line.EquipmentID, "error", err)
		}
	}

	if customer, err := s.userRepo.GetByID(ctx, res.CustomerID); err == nil {
		if err := s.emailSvc.SendCancellationNotice(ctx, customer.Email, customer.Name, res, reason); err != nil {
			logger.Error("Failed to send cancellation notice", "reservation_id", res.ID, "error", err)
		}
	}

	logger.Info("Reservation cancelled", "reservation_id", res.ID, "by", actor.UserID, "at", time.Now().Format(time.RFC3339))
	return res, nil
}
