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

const upsertBoulderQuery = `INSERT INTO boulders (id, spraywall_id, name, grade, setter_id, average_rating, rating_count, created_at, last_updated)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO UPDATE SET
		spraywall_id = EXCLUDED.spraywall_id,
		name = EXCLUDED.name,
		grade = EXCLUDED.grade,
		setter_id = EXCLUDED.setter_id,
		average_rating = EXCLUDED.average_rating,
		rating_count = EXCLUDED.rating_count,
		created_at = EXCLUDED.created_at,
		last_updated = EXCLUDED.last_updated`

const insertHoldQuery = `INSERT INTO holds (id, boulder_id, x, y, role, position)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)`

type PostgresBoulderRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBoulderRepository(pool *pgxpool.Pool) *PostgresBoulderRepository {
	return &PostgresBoulderRepository{pool: pool}
}

func (r *PostgresBoulderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Boulder, error) {
	query := `SELECT id, spraywall_id, name, grade, setter_id, average_rating, rating_count, created_at, last_updated
	          FROM boulders WHERE id = $1`

	var boulder models.Boulder
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&boulder.ID,
		&boulder.SpraywallID,
		&boulder.Name,
		&boulder.Grade,
		&boulder.SetterID,
		&boulder.AverageRating,
		&boulder.RatingCount,
		&boulder.CreatedAt,
		&boulder.LastUpdated,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get boulder: %w", err)
	}

	holds, err := r.holdsOf(ctx, boulder.ID)
	if err != nil {
		return nil, err
	}
	boulder.Holds = holds
	return &boulder, nil
}

func (r *PostgresBoulderRepository) ListBySpraywall(ctx context.Context, spraywallID uuid.UUID) ([]*models.Boulder, error) {
	query := `SELECT id, spraywall_id, name, grade, setter_id, average_rating, rating_count, created_at, last_updated
	          FROM boulders WHERE spraywall_id = $1 ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, spraywallID)
	if err != nil {
		return nil, fmt.Errorf("failed to query boulders: %w", err)
	}
	defer rows.Close()

	var boulders []*models.Boulder
	for rows.Next() {
		var boulder models.Boulder
		err := rows.Scan(
			&boulder.ID,
			&boulder.SpraywallID,
			&boulder.Name,
			&boulder.Grade,
			&boulder.SetterID,
			&boulder.AverageRating,
			&boulder.RatingCount,
			&boulder.CreatedAt,
			&boulder.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan boulder: %w", err)
		}
		boulders = append(boulders, &boulder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating boulders: %w", err)
	}

	for _, boulder := range boulders {
		holds, err := r.holdsOf(ctx, boulder.ID)
		if err != nil {
			return nil, err
		}
		boulder.Holds = holds
	}
	return boulders, nil
}

func (r *PostgresBoulderRepository) holdsOf(ctx context.Context, boulderID uuid.UUID) ([]models.Hold, error) {
	query := `SELECT id, boulder_id, x, y, role, position
	          FROM holds WHERE boulder_id = $1 ORDER BY position ASC`

	rows, err := r.pool.Query(ctx, query, boulderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holds: %w", err)
	}
	defer rows.Close()

	var holds []models.Hold
	for rows.Next() {
		var hold models.Hold
		if err := rows.Scan(&hold.ID, &hold.BoulderID, &hold.X, &hold.Y, &hold.Role, &hold.Position); err != nil {
			return nil, fmt.Errorf("failed to scan hold: %w", err)
		}
		holds = append(holds, hold)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holds: %w", err)
	}
	return holds, nil
}

func (r *PostgresBoulderRepository) ApplyReconcile(ctx context.Context, spraywallID uuid.UUID, deleteIDs []uuid.UUID, upserts []models.Boulder, holdsByBoulder map[uuid.UUID][]models.Hold) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin reconcile transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, id := range deleteIDs {
		if err := deleteBoulderTx(ctx, tx, id); err != nil {
			return 0, err
		}
	}

	if len(upserts) > 0 {
		batch := &pgx.Batch{}
		for _, boulder := range upserts {
			batch.Queue(upsertBoulderQuery,
				boulder.ID,
				boulder.SpraywallID,
				boulder.Name,
				boulder.Grade,
				boulder.SetterID,
				boulder.AverageRating,
				boulder.RatingCount,
				boulder.CreatedAt,
				boulder.LastUpdated,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return 0, fmt.Errorf("failed to bulk upsert boulders: %w", err)
		}
	}

	// Full hold replacement for every examined parent, whether or not the
	// parent row itself changed.
	childRows := 0
	for boulderID, holds := range holdsByBoulder {
		if err := deleteHoldsOfBoulderTx(ctx, tx, boulderID); err != nil {
			return 0, err
		}
		if len(holds) == 0 {
			continue
		}
		batch := &pgx.Batch{}
		for _, hold := range holds {
			batch.Queue(insertHoldQuery, boulderID, hold.X, hold.Y, hold.Role, hold.Position)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return 0, fmt.Errorf("failed to insert holds of boulder %s: %w", boulderID, err)
		}
		childRows += len(holds)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit reconcile transaction: %w", err)
	}
	return childRows, nil
}
