package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campervan-backend/internal/domain"
	"campervan-backend/internal/repository"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	query := `INSERT INTO equipment (name, unit_price_cents, pricing_type, stock, available_stock, description, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, e.Name, e.UnitPriceCents, e.PricingType, e.Stock, e.AvailableStock, e.Description, time.Now(), time.Now()).Scan(&e.ID)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	e := &domain.Equipment{}
	query := `SELECT id, name, unit_price_cents, pricing_type, stock, available_stock, description, created_on, updated_on FROM equipment WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &e.UnitPriceCents, &e.PricingType, &e.Stock, &e.AvailableStock, &e.Description, &e.CreatedOn, &e.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEquipmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *equipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	query := `UPDATE equipment SET name=$1, unit_price_cents=$2, pricing_type=$3, stock=$4, available_stock=$5, description=$6, updated_on=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query, e.Name, e.UnitPriceCents, e.PricingType, e.Stock, e.AvailableStock, e.Description, time.Now(), e.ID)
	return err
}

func (r *equipmentRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Equipment, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM equipment`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, unit_price_cents, pricing_type, stock, available_stock, description, created_on, updated_on
	          FROM equipment ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		var e domain.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.UnitPriceCents, &e.PricingType, &e.Stock, &e.AvailableStock, &e.Description, &e.CreatedOn, &e.UpdatedOn); err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, count, rows.Err()
}

// AdjustAvailableStock applies the delta atomically; the WHERE clause
// refuses updates that would drive available_stock negative.
func (r *equipmentRepository) AdjustAvailableStock(ctx context.Context, id int32, delta int32) error {
	query := `UPDATE equipment SET available_stock = available_stock + $1, updated_on = $2
	          WHERE id = $3 AND available_stock + $1 >= 0`
	res, err := r.db.ExecContext(ctx, query, delta, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrInsufficientStock
	}
	return nil
}
