package service

import (
	"context"

	"campervan-backend/internal/domain"
	"campervan-backend/internal/repository"
)

type catalogService struct {
	vehicleRepo   repository.VehicleRepository
	equipmentRepo repository.EquipmentRepository
	activityRepo  repository.ActivityRepository
}

func NewCatalogService(
	vehicleRepo repository.VehicleRepository,
	equipmentRepo repository.EquipmentRepository,
	activityRepo repository.ActivityRepository,
) CatalogService {
	return &catalogService{
		vehicleRepo:   vehicleRepo,
		equipmentRepo: equipmentRepo,
		activityRepo:  activityRepo,
	}
}

func (s *catalogService) ListVehicles(ctx context.Context, status string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	return s.vehicleRepo.List(ctx, status, page, pageSize)
}

func (s *catalogService) GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *catalogService) AddVehicle(ctx context.Context, actor domain.Actor, v *domain.Vehicle) error {
	if !actor.HasRole(domain.RoleAdmin) {
		return domain.ErrUnauthorized
	}
	if v.PricePerDayCents < 0 {
		return domain.NewValidationError("price_per_day", "must not be negative")
	}
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}
	return s.vehicleRepo.Create(ctx, v)
}

func (s *catalogService) UpdateVehicle(ctx context.Context, actor domain.Actor, v *domain.Vehicle) error {
	if !actor.IsStaff() {
		return domain.ErrUnauthorized
	}
	if v.PricePerDayCents < 0 {
		return domain.NewValidationError("price_per_day", "must not be negative")
	}
	return s.vehicleRepo.Update(ctx, v)
}

func (s *catalogService) ListEquipment(ctx context.Context, page, pageSize int32) ([]domain.Equipment, int32, error) {
	return s.equipmentRepo.List(ctx, page, pageSize)
}

func (s *catalogService) AddEquipment(ctx context.Context, actor domain.Actor, e *domain.Equipment) error {
	if !actor.HasRole(domain.RoleAdmin) {
		return domain.ErrUnauthorized
	}
	if e.PricingType != domain.PricingPerDay && e.PricingType != domain.PricingPerUnit {
		return domain.NewValidationError("pricing_type", "unknown pricing type %q", e.PricingType)
	}
	if e.Stock < 0 {
		return domain.NewValidationError("stock", "must not be negative")
	}
	if e.AvailableStock == 0 {
		e.AvailableStock = e.Stock
	}
	return s.equipmentRepo.Create(ctx, e)
}

func (s *catalogService) UpdateEquipment(ctx context.Context, actor domain.Actor, e *domain.Equipment) error {
	if !actor.IsStaff() {
		return domain.ErrUnauthorized
	}
	return s.equipmentRepo.Update(ctx, e)
}

func (s *catalogService) ListActivities(ctx context.Context, activeOnly bool, page, pageSize int32) ([]domain.Activity, int32, error) {
	return s.activityRepo.List(ctx, activeOnly, page, pageSize)
}

func (s *catalogService) AddActivity(ctx context.Context, actor domain.Actor, a *domain.Activity) error {
	if !actor.HasRole(domain.RoleAdmin) {
		return domain.ErrUnauthorized
	}
	min, max := a.ParticipantBounds()
	if min > max {
		return domain.NewValidationError("participants", "minimum exceeds maximum")
	}
	return s.activityRepo.Create(ctx, a)
}

func (s *catalogService) UpdateActivity(ctx context.Context, actor domain.Actor, a *domain.Activity) error {
	if !actor.IsStaff() {
		return domain.ErrUnauthorized
	}
	min, max := a.ParticipantBounds()
	if min > max {
		return domain.NewValidationError("participants", "minimum exceeds maximum")
	}
	return s.activityRepo.Update(ctx, a)
}
