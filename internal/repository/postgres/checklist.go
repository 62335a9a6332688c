package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campervan-backend/internal/domain"
	"campervan-backend/internal/repository"
)

type checklistRepository struct {
	db *sql.DB
}

func NewChecklistRepository(db *sql.DB) repository.ChecklistRepository {
	return &checklistRepository{db: db}
}

const checklistColumns = `id, reservation_id, type, items, notes, mileage, completed_by, completed_at, version, created_on, updated_on`

func scanChecklist(scan func(dest ...interface{}) error) (*domain.Checklist, error) {
	c := &domain.Checklist{}
	var items []byte
	err := scan(&c.ID, &c.ReservationID, &c.Type, &items, &c.Notes, &c.Mileage, &c.CompletedBy, &c.CompletedAt, &c.Version, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &c.Items); err != nil {
			return nil, fmt.Errorf("unmarshal checklist items: %w", err)
		}
	}
	return c, nil
}

func (r *checklistRepository) GetByReservation(ctx context.Context, reservationID int32) ([]domain.Checklist, error) {
	query := `SELECT ` + checklistColumns + ` FROM rental_checklists WHERE reservation_id = $1 ORDER BY type`
	rows, err := r.db.QueryContext(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checklists []domain.Checklist
	for rows.Next() {
		c, err := scanChecklist(rows.Scan)
		if err != nil {
			return nil, err
		}
		checklists = append(checklists, *c)
	}
	return checklists, rows.Err()
}

func (r *checklistRepository) Get(ctx context.Context, reservationID int32, typ domain.ChecklistType) (*domain.Checklist, error) {
	query := `SELECT ` + checklistColumns + ` FROM rental_checklists WHERE reservation_id = $1 AND type = $2`
	row := r.db.QueryRowContext(ctx, query, reservationID, typ)
	c, err := scanChecklist(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrChecklistNotFound
	}
	return c, err
}

// Upsert relies on the unique (reservation_id, type) index. New rows
// start at version 1; updates only apply when the stored version matches
// the caller's expected version, so concurrent saves surface as
// ErrVersionConflict instead of silently clobbering each other.
func (r *checklistRepository) Upsert(ctx context.Context, c *domain.Checklist) error {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("marshal checklist items: %w", err)
	}

	query := `INSERT INTO rental_checklists (reservation_id, type, items, notes, mileage, completed_by, completed_at, version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, 1, $8, $8)
	          ON CONFLICT (reservation_id, type) DO UPDATE
	          SET items = EXCLUDED.items,
	              notes = EXCLUDED.notes,
	              mileage = EXCLUDED.mileage,
	              completed_by = EXCLUDED.completed_by,
	              completed_at = EXCLUDED.completed_at,
	              version = rental_checklists.version + 1,
	              updated_on = EXCLUDED.updated_on
	          WHERE rental_checklists.version = $9
	          RETURNING id, version`

	err = r.db.QueryRowContext(ctx, query,
		c.ReservationID, c.Type, items, c.Notes, c.Mileage, c.CompletedBy, c.CompletedAt,
		time.Now(), c.Version,
	).Scan(&c.ID, &c.Version)
	if errors.Is(err, sql.ErrNoRows) {
		// The conflict branch matched a row but the version guard did not.
		return domain.ErrVersionConflict
	}
	return err
}
