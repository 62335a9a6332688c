package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"campervan-backend/internal/domain"
	"campervan-backend/internal/repository"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, number, customer_id, vehicle_id, start_date, end_date, days, equipment_lines, activity_lines, subtotal_cents, tax_cents, total_cents, status, notes, created_on, updated_on`

// Line snapshots are stored as typed JSON arrays, one column per line
// kind, so the schema stays queryable per field on the Go side.
func marshalLines(r *domain.Reservation) ([]byte, []byte, error) {
	equipment, err := json.Marshal(r.EquipmentLines)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal equipment lines: %w", err)
	}
	activities, err := json.Marshal(r.ActivityLines)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal activity lines: %w", err)
	}
	return equipment, activities, nil
}

func scanReservation(scan func(dest ...interface{}) error) (*domain.Reservation, error) {
	r := &domain.Reservation{}
	var equipment, activities []byte
	err := scan(&r.ID, &r.Number, &r.CustomerID, &r.VehicleID, &r.StartDate, &r.EndDate, &r.Days, &equipment, &activities, &r.SubtotalCents, &r.TaxCents, &r.TotalCents, &r.Status, &r.Notes, &r.CreatedOn, &r.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if len(equipment) > 0 {
		if err := json.Unmarshal(equipment, &r.EquipmentLines); err != nil {
			return nil, fmt.Errorf("unmarshal equipment lines: %w", err)
		}
	}
	if len(activities) > 0 {
		if err := json.Unmarshal(activities, &r.ActivityLines); err != nil {
			return nil, fmt.Errorf("unmarshal activity lines: %w", err)
		}
	}
	return r, nil
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	equipment, activities, err := marshalLines(res)
	if err != nil {
		return err
	}
	query := `INSERT INTO reservations (number, customer_id, vehicle_id, start_date, end_date, days, equipment_lines, activity_lines, subtotal_cents, tax_cents, total_cents, status, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		res.Number, res.CustomerID, res.VehicleID, res.StartDate, res.EndDate, res.Days,
		equipment, activities, res.SubtotalCents, res.TaxCents, res.TotalCents,
		res.Status, res.Notes, time.Now(), time.Now(),
	).Scan(&res.ID)
}

func (r *reservationRepository) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	res, err := scanReservation(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReservationNotFound
	}
	return res, err
}

func (r *reservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	equipment, activities, err := marshalLines(res)
	if err != nil {
		return err
	}
	query := `UPDATE reservations SET equipment_lines=$1, activity_lines=$2, subtotal_cents=$3, tax_cents=$4, total_cents=$5, status=$6, notes=$7, updated_on=$8 WHERE id=$9`
	_, err = r.db.ExecContext(ctx, query, equipment, activities, res.SubtotalCents, res.TaxCents, res.TotalCents, res.Status, res.Notes, time.Now(), res.ID)
	return err
}

func (r *reservationRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	return r.list(ctx, "", 0, status, page, pageSize)
}

func (r *reservationRepository) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	return r.list(ctx, "customer_id", customerID, status, page, pageSize)
}

func (r *reservationRepository) list(ctx context.Context, filterCol string, filterVal int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + reservationColumns + ` FROM reservations`

	var where []string
	var args []interface{}
	if filterCol != "" {
		args = append(args, filterVal)
		where = append(where, fmt.Sprintf("%s = $%d", filterCol, len(args)))
	}
	if status != "" {
		args = append(args, status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	for i, w := range where {
		if i == 0 {
			query += " WHERE " + w
		} else {
			query += " AND " + w
		}
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, count, rows.Err()
}

func (r *reservationRepository) ListEndingOn(ctx context.Context, endDate string, statuses []domain.ReservationStatus) ([]domain.Reservation, error) {
	strs := make([]string, 0, len(statuses))
	for _, s := range statuses {
		strs = append(strs, string(s))
	}
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE end_date = $1 AND status = ANY($2)`
	rows, err := r.db.QueryContext(ctx, query, endDate, pq.Array(strs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

func (r *reservationRepository) MarkOverdue(ctx context.Context, cutoff string) ([]int32, error) {
	query := `UPDATE reservations SET status = $1, updated_on = $2 WHERE status = $3 AND end_date < $4 RETURNING id`
	rows, err := r.db.QueryContext(ctx, query, domain.ReservationStatusOverdue, time.Now(), domain.ReservationStatusOnRent, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *reservationRepository) ListStalePending(ctx context.Context, cutoff string) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE status = $1 AND created_on < $2`
	rows, err := r.db.QueryContext(ctx, query, domain.ReservationStatusPending, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}
