package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campervan-backend/internal/domain"
	"campervan-backend/internal/repository"
)

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, a *domain.Activity) error {
	query := `INSERT INTO activities (name, unit_price_cents, min_participants, max_participants, active, description, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, a.Name, a.UnitPriceCents, a.MinParticipants, a.MaxParticipants, a.Active, a.Description, time.Now(), time.Now()).Scan(&a.ID)
}

func (r *activityRepository) GetByID(ctx context.Context, id int32) (*domain.Activity, error) {
	a := &domain.Activity{}
	query := `SELECT id, name, unit_price_cents, min_participants, max_participants, active, description, created_on, updated_on FROM activities WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.UnitPriceCents, &a.MinParticipants, &a.MaxParticipants, &a.Active, &a.Description, &a.CreatedOn, &a.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *activityRepository) Update(ctx context.Context, a *domain.Activity) error {
	query := `UPDATE activities SET name=$1, unit_price_cents=$2, min_participants=$3, max_participants=$4, active=$5, description=$6, updated_on=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query, a.Name, a.UnitPriceCents, a.MinParticipants, a.MaxParticipants, a.Active, a.Description, time.Now(), a.ID)
	return err
}

func (r *activityRepository) List(ctx context.Context, activeOnly bool, page, pageSize int32) ([]domain.Activity, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, name, unit_price_cents, min_participants, max_participants, active, description, created_on, updated_on FROM activities`
	if activeOnly {
		query += " WHERE active"
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY id LIMIT $1 OFFSET $2"
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Activity
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.Name, &a.UnitPriceCents, &a.MinParticipants, &a.MaxParticipants, &a.Active, &a.Description, &a.CreatedOn, &a.UpdatedOn); err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, count, rows.Err()
}
