package jobs

import (
	"context"
	"time"

	"campervan-backend/internal/domain"
	"campervan-backend/internal/logger"
)

const dateLayout = "2006-01-02"

// MarkOverdueReservations flips ON_RENT reservations past their end date
// to OVERDUE. The vehicle stays RENTED until the return is actually
// processed.
func (jr *JobRunner) MarkOverdueReservations() {
	jr.runWithRecovery("MarkOverdueReservations", func() {
		ctx := context.Background()

		today := time.Now().UTC().Format(dateLayout)
		ids, err := jr.store.MarkOverdue(ctx, today)
		if err != nil {
			logger.Error("Failed to mark overdue reservations", "error", err)
			return
		}

		logger.Info("Marked reservations as overdue", "count", len(ids))
		for _, id := range ids {
			logger.Debug("Marked reservation as overdue", "reservation_id", id)
		}
	})
}

// ExpireStaleReservations cancels PENDING reservations that have sat
// unconfirmed past the configured expiry window, releasing their
// reserved equipment stock.
func (jr *JobRunner) ExpireStaleReservations() {
	jr.runWithRecovery("ExpireStaleReservations", func() {
		ctx := context.Background()

		days := jr.config.Booking.PendingExpiryDays
		cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(dateLayout)

		stale, err := jr.store.ListStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale pending reservations", "error", err)
			return
		}

		expired := 0
		for i := range stale {
			res := &stale[i]
			res.Status = domain.ReservationStatusCancelled
			if err := jr.store.ReservationRepository.Update(ctx, res); err != nil {
				logger.Error("Failed to expire reservation", "reservation_id", res.ID, "error", err)
				continue
			}
			for _, line := range res.EquipmentLines {
				if line.Quantity == 0 {
					continue
				}
				if err := jr.store.AdjustAvailableStock(ctx, line.EquipmentID, line.Quantity); err != nil {
					logger.Error("Failed to restock equipment for expired reservation",
						"reservation_id", res.ID, "equipment_id", line.EquipmentID, "error", err)
				}
			}
			expired++
		}

		logger.Info("Expired stale pending reservations", "count", expired, "cutoff", cutoff)
	})
}

// SendReturnReminders emails customers whose rental ends tomorrow.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()

		tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(dateLayout)
		ending, err := jr.store.ListEndingOn(ctx, tomorrow, []domain.ReservationStatus{
			domain.ReservationStatusOnRent,
			domain.ReservationStatusOverdue,
		})
		if err != nil {
			logger.Error("Failed to list reservations ending tomorrow", "error", err)
			return
		}

		sent := 0
		for i := range ending {
			res := &ending[i]
			customer, err := jr.store.UserRepository.GetByID(ctx, res.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for reminder", "reservation_id", res.ID, "error", err)
				continue
			}
			if err := jr.services.Email.SendReturnReminder(ctx, customer.Email, customer.Name, res); err != nil {
				logger.Error("Failed to send return reminder", "reservation_id", res.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent return reminders", "count", sent, "end_date", tomorrow)
	})
}
