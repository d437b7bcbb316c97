package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alpengrip/cruxsync/internal/models"
)

const upsertSpraywallQuery = `INSERT INTO spraywalls (id, gym_id, name, description, photo_url, public, created_by, created_at, last_updated)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO UPDATE SET
		gym_id = EXCLUDED.gym_id,
		name = EXCLUDED.name,
		description = EXCLUDED.description,
		photo_url = EXCLUDED.photo_url,
		public = EXCLUDED.public,
		created_by = EXCLUDED.created_by,
		created_at = EXCLUDED.created_at,
		last_updated = EXCLUDED.last_updated`

type PostgresSpraywallRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSpraywallRepository(pool *pgxpool.Pool) *PostgresSpraywallRepository {
	return &PostgresSpraywallRepository{pool: pool}
}

func (r *PostgresSpraywallRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Spraywall, error) {
	query := `SELECT id, gym_id, name, description, photo_url, public, created_by, created_at, last_updated
	          FROM spraywalls WHERE id = $1`

	var wall models.Spraywall
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&wall.ID,
		&wall.GymID,
		&wall.Name,
		&wall.Description,
		&wall.PhotoURL,
		&wall.Public,
		&wall.CreatedBy,
		&wall.CreatedAt,
		&wall.LastUpdated,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get spraywall: %w", err)
	}
	return &wall, nil
}

func (r *PostgresSpraywallRepository) ListByGym(ctx context.Context, gymID uuid.UUID) ([]*models.Spraywall, error) {
	query := `SELECT id, gym_id, name, description, photo_url, public, created_by, created_at, last_updated
	          FROM spraywalls WHERE gym_id = $1 ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, gymID)
	if err != nil {
		return nil, fmt.Errorf("failed to query spraywalls: %w", err)
	}
	defer rows.Close()

	var walls []*models.Spraywall
	for rows.Next() {
		var wall models.Spraywall
		err := rows.Scan(
			&wall.ID,
			&wall.GymID,
			&wall.Name,
			&wall.Description,
			&wall.PhotoURL,
			&wall.Public,
			&wall.CreatedBy,
			&wall.CreatedAt,
			&wall.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan spraywall: %w", err)
		}
		walls = append(walls, &wall)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating spraywalls: %w", err)
	}
	return walls, nil
}

func (r *PostgresSpraywallRepository) ApplyReconcile(ctx context.Context, gymID uuid.UUID, deleteIDs []uuid.UUID, upserts []models.Spraywall) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reconcile transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, id := range deleteIDs {
		if err := deleteSpraywallTx(ctx, tx, id); err != nil {
			return err
		}
	}

	if len(upserts) > 0 {
		batch := &pgx.Batch{}
		for _, wall := range upserts {
			batch.Queue(upsertSpraywallQuery,
				wall.ID,
				wall.GymID,
				wall.Name,
				wall.Description,
				wall.PhotoURL,
				wall.Public,
				wall.CreatedBy,
				wall.CreatedAt,
				wall.LastUpdated,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to bulk upsert spraywalls: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reconcile transaction: %w", err)
	}
	return nil
}
