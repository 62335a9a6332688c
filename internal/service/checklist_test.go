package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"campervan-backend/internal/checklist"
	"campervan-backend/internal/domain"
)

func newChecklistFixture() (*MockChecklistRepo, *MockReservationRepo, *MockVehicleRepo, *MockNotificationRepo, ChecklistService) {
	checklistRepo := new(MockChecklistRepo)
	reservationRepo := new(MockReservationRepo)
	vehicleRepo := new(MockVehicleRepo)
	noteRepo := new(MockNotificationRepo)
	svc := NewChecklistService(checklistRepo, reservationRepo, vehicleRepo, noteRepo)
	return checklistRepo, reservationRepo, vehicleRepo, noteRepo, svc
}

// completedChecklist builds a fully checked, staff-stamped checklist of
// the given type.
func completedChecklist(reservationID int32, typ domain.ChecklistType, mileage string) *domain.Checklist {
	items := checklist.Template(typ)
	for i := range items {
		items[i].Checked = true
	}
	staffID := int32(9)
	now := time.Now()
	return &domain.Checklist{
		ReservationID: reservationID,
		Type:          typ,
		Items:         items,
		Mileage:       mileage,
		CompletedBy:   &staffID,
		CompletedAt:   &now,
		Version:       1,
	}
}

func TestChecklistService_LoadChecklists(t *testing.T) {
	ctx := context.Background()
	staff := domain.Actor{UserID: 9, Roles: []domain.Role{domain.RoleStaff}}

	t.Run("Non-staff rejected", func(t *testing.T) {
		_, _, _, _, svc := newChecklistFixture()
		customer := domain.Actor{UserID: 3, Roles: []domain.Role{domain.RoleCustomer}}
		_, err := svc.LoadChecklists(ctx, customer, 42)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("No checklists started yet is not an error", func(t *testing.T) {
		checklistRepo, reservationRepo, _, _, svc := newChecklistFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42}, nil)
		checklistRepo.On("GetByReservation", ctx, int32(42)).Return([]domain.Checklist{}, nil)

		lists, err := svc.LoadChecklists(ctx, staff, 42)
		assert.NoError(t, err)
		assert.Empty(t, lists)
	})

	t.Run("Unknown reservation", func(t *testing.T) {
		_, reservationRepo, _, _, svc := newChecklistFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(nil, domain.ErrReservationNotFound)

		_, err := svc.LoadChecklists(ctx, staff, 42)
		assert.ErrorIs(t, err, domain.ErrReservationNotFound)
	})
}

func TestChecklistService_SaveChecklist(t *testing.T) {
	ctx := context.Background()
	staff := domain.Actor{UserID: 9, Roles: []domain.Role{domain.RoleStaff}}

	t.Run("Empty items start from the template", func(t *testing.T) {
		checklistRepo, reservationRepo, _, _, svc := newChecklistFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42}, nil)
		checklistRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.Checklist")).Return(nil)

		saved, err := svc.SaveChecklist(ctx, staff, 42, domain.ChecklistHandover, nil, "", "", 0, false)
		assert.NoError(t, err)
		assert.Len(t, saved.Items, len(checklist.Template(domain.ChecklistHandover)))
		assert.Nil(t, saved.CompletedBy)
	})

	t.Run("Completing with unchecked items is blocked", func(t *testing.T) {
		checklistRepo, reservationRepo, _, _, svc := newChecklistFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42}, nil)
		checklistRepo.On("Get", ctx, int32(42), domain.ChecklistHandover).Return(&domain.Checklist{ReservationID: 42, Type: domain.ChecklistHandover, Version: 1}, nil)

		items := checklist.Template(domain.ChecklistHandover)
		items[0].Checked = true

		_, err := svc.SaveChecklist(ctx, staff, 42, domain.ChecklistHandover, items, "", "", 1, true)
		assert.ErrorIs(t, err, domain.ErrChecklistIncomplete)
		checklistRepo.AssertNotCalled(t, "Upsert", ctx, mock.Anything)
	})

	t.Run("Return checklist needs mileage to complete", func(t *testing.T) {
		checklistRepo, reservationRepo, _, _, svc := newChecklistFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42}, nil)
		checklistRepo.On("Get", ctx, int32(42), domain.ChecklistReturn).Return(&domain.Checklist{ReservationID: 42, Type: domain.ChecklistReturn, Version: 1}, nil)

		items := checklist.Template(domain.ChecklistReturn)
		for i := range items {
			items[i].Checked = true
		}

		_, err := svc.SaveChecklist(ctx, staff, 42, domain.ChecklistReturn, items, "", "", 1, true)
		assert.ErrorIs(t, err, domain.ErrChecklistIncomplete)
	})

	t.Run("Completing stamps the staff member", func(t *testing.T) {
		checklistRepo, reservationRepo, _, _, svc := newChecklistFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42}, nil)
		checklistRepo.On("Get", ctx, int32(42), domain.ChecklistReturn).Return(&domain.Checklist{ReservationID: 42, Type: domain.ChecklistReturn, Version: 1}, nil)
		checklistRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.Checklist")).Return(nil)

		items := checklist.Template(domain.ChecklistReturn)
		for i := range items {
			items[i].Checked = true
		}

		saved, err := svc.SaveChecklist(ctx, staff, 42, domain.ChecklistReturn, items, "clean, no damage", "48211", 1, true)
		assert.NoError(t, err)
		assert.NotNil(t, saved.CompletedBy)
		assert.Equal(t, int32(9), *saved.CompletedBy)
		assert.NotNil(t, saved.CompletedAt)
	})

	t.Run("Stale version surfaces as a conflict", func(t *testing.T) {
		checklistRepo, reservationRepo, _, _, svc := newChecklistFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42}, nil)
		checklistRepo.On("Get", ctx, int32(42), domain.ChecklistHandover).Return(&domain.Checklist{ReservationID: 42, Type: domain.ChecklistHandover, Version: 4}, nil)
		checklistRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.Checklist")).Return(domain.ErrVersionConflict)

		_, err := svc.SaveChecklist(ctx, staff, 42, domain.ChecklistHandover, nil, "", "", 3, false)
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
	})

	t.Run("Nonzero version against a missing checklist is a conflict", func(t *testing.T) {
		checklistRepo, reservationRepo, _, _, svc := newChecklistFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42}, nil)
		checklistRepo.On("Get", ctx, int32(42), domain.ChecklistHandover).Return(nil, domain.ErrChecklistNotFound)

		// The upsert would insert fresh at version 1; the save must not
		// reach it.
		_, err := svc.SaveChecklist(ctx, staff, 42, domain.ChecklistHandover, nil, "", "", 2, false)
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
		checklistRepo.AssertNotCalled(t, "Upsert", ctx, mock.Anything)
	})

	t.Run("Unknown type rejected", func(t *testing.T) {
		_, _, _, _, svc := newChecklistFixture()
		_, err := svc.SaveChecklist(ctx, staff, 42, domain.ChecklistType("INSPECTION"), nil, "", "", 0, false)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Non-staff rejected", func(t *testing.T) {
		_, _, _, _, svc := newChecklistFixture()
		customer := domain.Actor{UserID: 3, Roles: []domain.Role{domain.RoleCustomer}}
		_, err := svc.SaveChecklist(ctx, customer, 42, domain.ChecklistHandover, nil, "", "", 0, false)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestChecklistService_CompleteCheckout(t *testing.T) {
	ctx := context.Background()
	staff := domain.Actor{UserID: 9, Roles: []domain.Role{domain.RoleStaff}}

	t.Run("Handover complete moves reservation on rent", func(t *testing.T) {
		checklistRepo, reservationRepo, vehicleRepo, noteRepo, svc := newChecklistFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42, CustomerID: 3, VehicleID: 1, Status: domain.ReservationStatusConfirmed}, nil)
		checklistRepo.On("Get", ctx, int32(42), domain.ChecklistHandover).Return(completedChecklist(42, domain.ChecklistHandover, ""), nil)
		reservationRepo.On("Update", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil)
		vehicleRepo.On("UpdateStatus", ctx, int32(1), domain.VehicleStatusRented).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		res, err := svc.CompleteCheckout(ctx, staff, 42)
		assert.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusOnRent, res.Status)
		vehicleRepo.AssertCalled(t, "UpdateStatus", ctx, int32(1), domain.VehicleStatusRented)
	})

	t.Run("Missing handover checklist blocks checkout", func(t *testing.T) {
		checklistRepo, reservationRepo, _, _, svc := newChecklistFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42, Status: domain.ReservationStatusConfirmed}, nil)
		checklistRepo.On("Get", ctx, int32(42), domain.ChecklistHandover).Return(nil, domain.ErrChecklistNotFound)

		_, err := svc.CompleteCheckout(ctx, staff, 42)
		assert.ErrorIs(t, err, domain.ErrChecklistIncomplete)
		reservationRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})

	t.Run("Unstamped handover checklist blocks checkout", func(t *testing.T) {
		checklistRepo, reservationRepo, _, _, svc := newChecklistFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42, Status: domain.ReservationStatusConfirmed}, nil)
		unstamped := completedChecklist(42, domain.ChecklistHandover, "")
		unstamped.CompletedBy = nil
		unstamped.CompletedAt = nil
		checklistRepo.On("Get", ctx, int32(42), domain.ChecklistHandover).Return(unstamped, nil)

		_, err := svc.CompleteCheckout(ctx, staff, 42)
		assert.ErrorIs(t, err, domain.ErrChecklistIncomplete)
	})

	t.Run("Already on rent", func(t *testing.T) {
		_, reservationRepo, _, _, svc := newChecklistFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42, Status: domain.ReservationStatusOnRent}, nil)

		_, err := svc.CompleteCheckout(ctx, staff, 42)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("Non-staff rejected", func(t *testing.T) {
		_, _, _, _, svc := newChecklistFixture()
		customer := domain.Actor{UserID: 3, Roles: []domain.Role{domain.RoleCustomer}}
		_, err := svc.CompleteCheckout(ctx, customer, 42)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestChecklistService_CompleteReturn(t *testing.T) {
	ctx := context.Background()
	staff := domain.Actor{UserID: 9, Roles: []domain.Role{domain.RoleStaff}}

	t.Run("Return complete closes the rental and releases the vehicle", func(t *testing.T) {
		checklistRepo, reservationRepo, vehicleRepo, noteRepo, svc := newChecklistFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42, CustomerID: 3, VehicleID: 1, Status: domain.ReservationStatusOnRent}, nil)
		checklistRepo.On("Get", ctx, int32(42), domain.ChecklistReturn).Return(completedChecklist(42, domain.ChecklistReturn, "48211"), nil)
		reservationRepo.On("Update", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil)
		vehicleRepo.On("GetByID", ctx, int32(1)).Return(&domain.Vehicle{ID: 1, Status: domain.VehicleStatusRented, MileageKm: 47500}, nil)
		vehicleRepo.On("Update", ctx, mock.AnythingOfType("*domain.Vehicle")).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		res, err := svc.CompleteReturn(ctx, staff, 42)
		assert.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusCompleted, res.Status)

		vehicleRepo.AssertCalled(t, "Update", ctx, mock.MatchedBy(func(v *domain.Vehicle) bool {
			return v.Status == domain.VehicleStatusAvailable && v.MileageKm == 48211
		}))
	})

	t.Run("Overdue rental returns through the same gate", func(t *testing.T) {
		checklistRepo, reservationRepo, vehicleRepo, noteRepo, svc := newChecklistFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42, CustomerID: 3, VehicleID: 1, Status: domain.ReservationStatusOverdue}, nil)
		checklistRepo.On("Get", ctx, int32(42), domain.ChecklistReturn).Return(completedChecklist(42, domain.ChecklistReturn, "48211"), nil)
		reservationRepo.On("Update", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil)
		vehicleRepo.On("GetByID", ctx, int32(1)).Return(&domain.Vehicle{ID: 1, Status: domain.VehicleStatusRented}, nil)
		vehicleRepo.On("Update", ctx, mock.AnythingOfType("*domain.Vehicle")).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		res, err := svc.CompleteReturn(ctx, staff, 42)
		assert.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusCompleted, res.Status)
	})

	t.Run("Cannot return a reservation that never went out", func(t *testing.T) {
		_, reservationRepo, _, _, svc := newChecklistFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42, Status: domain.ReservationStatusConfirmed}, nil)

		_, err := svc.CompleteReturn(ctx, staff, 42)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("Incomplete return checklist blocks", func(t *testing.T) {
		checklistRepo, reservationRepo, _, _, svc := newChecklistFixture()
		reservationRepo.On("GetByID", ctx, int32(42)).Return(&domain.Reservation{ID: 42, Status: domain.ReservationStatusOnRent}, nil)
		partial := completedChecklist(42, domain.ChecklistReturn, "48211")
		partial.Items[0].Checked = false
		checklistRepo.On("Get", ctx, int32(42), domain.ChecklistReturn).Return(partial, nil)

		_, err := svc.CompleteReturn(ctx, staff, 42)
		assert.ErrorIs(t, err, domain.ErrChecklistIncomplete)
	})
}
