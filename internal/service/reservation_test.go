package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"campervan-backend/internal/booking"
	"campervan-backend/internal/domain"
)

func newReservationFixture() (*MockReservationRepo, *MockVehicleRepo, *MockEquipmentRepo, *MockActivityRepo, *MockUserRepo, *MockNotificationRepo, *MockEmailService, ReservationService) {
	reservationRepo := new(MockReservationRepo)
	vehicleRepo := new(MockVehicleRepo)
	equipmentRepo := new(MockEquipmentRepo)
	activityRepo := new(MockActivityRepo)
	userRepo := new(MockUserRepo)
	noteRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)

	svc := NewReservationService(reservationRepo, vehicleRepo, equipmentRepo, activityRepo, userRepo, noteRepo, emailSvc, 1000)
	return reservationRepo, vehicleRepo, equipmentRepo, activityRepo, userRepo, noteRepo, emailSvc, svc
}

func testDraft(t *testing.T) booking.Draft {
	t.Helper()
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC)
	draft, err := booking.NewDraft(1, "Coastal Camper", 8000, start, end)
	assert.NoError(t, err)
	draft, err = draft.AddEquipment(5, "Tent", 1500, 2, domain.PricingPerDay)
	assert.NoError(t, err)
	draft, err = draft.AddActivity(7, "Kayak tour", 3000, start.Add(24*time.Hour), 2, 1, 8)
	assert.NoError(t, err)
	return draft
}

func TestReservationService_QuoteDraft(t *testing.T) {
	_, vehicleRepo, equipmentRepo, activityRepo, _, _, _, svc := newReservationFixture()
	ctx := context.Background()

	vehicle := &domain.Vehicle{ID: 1, Name: "Coastal Camper", PricePerDayCents: 8000, Status: domain.VehicleStatusAvailable}
	tent := &domain.Equipment{ID: 5, Name: "Tent", UnitPriceCents: 1500, PricingType: domain.PricingPerDay, AvailableStock: 4}
	kayak := &domain.Activity{ID: 7, Name: "Kayak tour", UnitPriceCents: 3000, MinParticipants: 1, MaxParticipants: 8, Active: true}

	t.Run("Prices from the catalog, not the client", func(t *testing.T) {
		vehicleRepo.On("GetByID", ctx, int32(1)).Return(vehicle, nil)
		equipmentRepo.On("GetByID", ctx, int32(5)).Return(tent, nil)
		activityRepo.On("GetByID", ctx, int32(7)).Return(kayak, nil)

		// Client lies about unit prices; quote must ignore them.
		draft := testDraft(t)
		draft.PricePerDayCents = 1
		draft.Equipment[0].UnitPriceCents = 1
		draft.Activities[0].UnitPriceCents = 1

		totals, err := svc.QuoteDraft(ctx, draft)
		assert.NoError(t, err)
		assert.Equal(t, int32(24000), totals.VehicleCents)
		assert.Equal(t, int32(9000), totals.EquipmentCents)
		assert.Equal(t, int32(6000), totals.ActivityCents)
		assert.Equal(t, int32(39000), totals.GrandCents)
	})

	t.Run("Inactive activity rejected", func(t *testing.T) {
		activityRepo.ExpectedCalls = nil
		activityRepo.On("GetByID", ctx, int32(7)).Return(&domain.Activity{ID: 7, Name: "Kayak tour", Active: false}, nil)

		_, err := svc.QuoteDraft(ctx, testDraft(t))
		assert.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestReservationService_CreateReservation(t *testing.T) {
	ctx := context.Background()
	actor := domain.Actor{UserID: 3, Roles: []domain.Role{domain.RoleCustomer}}

	vehicle := &domain.Vehicle{ID: 1, Name: "Coastal Camper", PricePerDayCents: 8000, Status: domain.VehicleStatusAvailable}
	tent := &domain.Equipment{ID: 5, Name: "Tent", UnitPriceCents: 1500, PricingType: domain.PricingPerDay, AvailableStock: 4}
	kayak := &domain.Activity{ID: 7, Name: "Kayak tour", UnitPriceCents: 3000, MinParticipants: 1, MaxParticipants: 8, Active: true}
	customer := &domain.User{ID: 3, Name: "Renter", Email: "renter@test.com"}

	t.Run("Success", func(t *testing.T) {
		reservationRepo, vehicleRepo, equipmentRepo, activityRepo, userRepo, noteRepo, emailSvc, svc := newReservationFixture()

		vehicleRepo.On("GetByID", ctx, int32(1)).Return(vehicle, nil)
		equipmentRepo.On("GetByID", ctx, int32(5)).Return(tent, nil)
		activityRepo.On("GetByID", ctx, int32(7)).Return(kayak, nil)
		equipmentRepo.On("AdjustAvailableStock", ctx, int32(5), int32(-2)).Return(nil)
		reservationRepo.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil)
		userRepo.On("GetByID", ctx, int32(3)).Return(customer, nil)
		emailSvc.On("SendReservationConfirmation", ctx, "renter@test.com", "Renter", mock.AnythingOfType("*domain.Reservation")).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		res, err := svc.CreateReservation(ctx, actor, testDraft(t), "first trip")
		assert.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusPending, res.Status)
		assert.Equal(t, int32(39000), res.SubtotalCents)
		assert.Equal(t, int32(3900), res.TaxCents) // 10% configured in fixture
		assert.Equal(t, int32(42900), res.TotalCents)
		assert.Equal(t, int32(3), res.Days)
		assert.NotEmpty(t, res.Number)
		equipmentRepo.AssertCalled(t, "AdjustAvailableStock", ctx, int32(5), int32(-2))
	})

	t.Run("Vehicle not available", func(t *testing.T) {
		_, vehicleRepo, _, _, _, _, _, svc := newReservationFixture()
		vehicleRepo.On("GetByID", ctx, int32(1)).Return(&domain.Vehicle{ID: 1, Status: domain.VehicleStatusRented}, nil)

		_, err := svc.CreateReservation(ctx, actor, testDraft(t), "")
		assert.ErrorIs(t, err, domain.ErrVehicleUnavailable)
	})

	t.Run("Insufficient stock aborts without persisting", func(t *testing.T) {
		reservationRepo, vehicleRepo, equipmentRepo, activityRepo, _, _, _, svc := newReservationFixture()
		vehicleRepo.On("GetByID", ctx, int32(1)).Return(vehicle, nil)
		equipmentRepo.On("GetByID", ctx, int32(5)).Return(tent, nil)
		activityRepo.On("GetByID", ctx, int32(7)).Return(kayak, nil)
		equipmentRepo.On("AdjustAvailableStock", ctx, int32(5), int32(-2)).Return(domain.ErrInsufficientStock)

		_, err := svc.CreateReservation(ctx, actor, testDraft(t), "")
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		reservationRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("Persistence failure restocks reserved equipment", func(t *testing.T) {
		reservationRepo, vehicleRepo, equipmentRepo, activityRepo, _, _, _, svc := newReservationFixture()
		vehicleRepo.On("GetByID", ctx, int32(1)).Return(vehicle, nil)
		equipmentRepo.On("GetByID", ctx, int32(5)).Return(tent, nil)
		activityRepo.On("GetByID", ctx, int32(7)).Return(kayak, nil)
		equipmentRepo.On("AdjustAvailableStock", ctx, int32(5), int32(-2)).Return(nil)
		reservationRepo.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Return(assert.AnError)
		equipmentRepo.On("AdjustAvailableStock", ctx, int32(5), int32(2)).Return(nil)

		_, err := svc.CreateReservation(ctx, actor, testDraft(t), "")
		assert.Error(t, err)
		equipmentRepo.AssertCalled(t, "AdjustAvailableStock", ctx, int32(5), int32(2))
	})
}

func TestReservationService_ConfirmReservation(t *testing.T) {
	ctx := context.Background()
	staff := domain.Actor{UserID: 9, Roles: []domain.Role{domain.RoleStaff}}

	t.Run("Pending becomes confirmed", func(t *testing.T) {
		reservationRepo, _, _, _, _, _, _, svc := newReservationFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42, Status: domain.ReservationStatusPending}, nil)
		reservationRepo.On("Update", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil)

		res, err := svc.ConfirmReservation(ctx, staff, 42)
		assert.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusConfirmed, res.Status)
	})

	t.Run("Customers cannot confirm", func(t *testing.T) {
		_, _, _, _, _, _, _, svc := newReservationFixture()
		customer := domain.Actor{UserID: 3, Roles: []domain.Role{domain.RoleCustomer}}
		_, err := svc.ConfirmReservation(ctx, customer, 42)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Wrong status rejected", func(t *testing.T) {
		reservationRepo, _, _, _, _, _, _, svc := newReservationFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42, Status: domain.ReservationStatusOnRent}, nil)

		_, err := svc.ConfirmReservation(ctx, staff, 42)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestReservationService_CancelReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner cancels pending and stock is released", func(t *testing.T) {
		reservationRepo, _, equipmentRepo, _, userRepo, _, emailSvc, svc := newReservationFixture()
		owner := domain.Actor{UserID: 3, Roles: []domain.Role{domain.RoleCustomer}}
		res := &domain.Reservation{
			ID: 42, CustomerID: 3, Status: domain.ReservationStatusPending,
			EquipmentLines: []domain.EquipmentLine{{EquipmentID: 5, Quantity: 2}},
		}
		reservationRepo.On("GetByID", ctx, int32(42)).Return(res, nil)
		reservationRepo.On("Update", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil)
		equipmentRepo.On("AdjustAvailableStock", ctx, int32(5), int32(2)).Return(nil)
		userRepo.On("GetByID", ctx, int32(3)).Return(&domain.User{ID: 3, Email: "renter@test.com", Name: "Renter"}, nil)
		emailSvc.On("SendCancellationNotice", ctx, "renter@test.com", "Renter", mock.AnythingOfType("*domain.Reservation"), "change of plans").Return(nil)

		out, err := svc.CancelReservation(ctx, owner, 42, "change of plans")
		assert.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusCancelled, out.Status)
		equipmentRepo.AssertCalled(t, "AdjustAvailableStock", ctx, int32(5), int32(2))
	})

	t.Run("Stranger cannot cancel", func(t *testing.T) {
		reservationRepo, _, _, _, _, _, _, svc := newReservationFixture()
		stranger := domain.Actor{UserID: 99, Roles: []domain.Role{domain.RoleCustomer}}
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42, CustomerID: 3, Status: domain.ReservationStatusPending}, nil)

		_, err := svc.CancelReservation(ctx, stranger, 42, "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("On-rent reservation cannot be cancelled", func(t *testing.T) {
		reservationRepo, _, _, _, _, _, _, svc := newReservationFixture()
		staff := domain.Actor{UserID: 9, Roles: []domain.Role{domain.RoleStaff}}
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42, CustomerID: 3, Status: domain.ReservationStatusOnRent}, nil)

		_, err := svc.CancelReservation(ctx, staff, 42, "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}
