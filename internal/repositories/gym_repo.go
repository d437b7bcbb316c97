package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alpengrip/cruxsync/internal/models"
)

// reconcileUpsertGymQuery intentionally leaves pinned out of the conflict
// update so a bulk remote merge never flips a local pin.
const reconcileUpsertGymQuery = `INSERT INTO gyms (id, name, location, description, created_by, created_at, last_updated, last_accessed, pinned)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		location = EXCLUDED.location,
		description = EXCLUDED.description,
		created_by = EXCLUDED.created_by,
		created_at = EXCLUDED.created_at,
		last_updated = EXCLUDED.last_updated,
		last_accessed = EXCLUDED.last_accessed`

// upsertGymQuery writes pinned as given; single-record saves carry the
// already-merged pin state.
const upsertGymQuery = `INSERT INTO gyms (id, name, location, description, created_by, created_at, last_updated, last_accessed, pinned)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		location = EXCLUDED.location,
		description = EXCLUDED.description,
		created_by = EXCLUDED.created_by,
		created_at = EXCLUDED.created_at,
		last_updated = EXCLUDED.last_updated,
		last_accessed = EXCLUDED.last_accessed,
		pinned = EXCLUDED.pinned`

type PostgresGymRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresGymRepository(pool *pgxpool.Pool) *PostgresGymRepository {
	return &PostgresGymRepository{pool: pool}
}

func (r *PostgresGymRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Gym, error) {
	query := `SELECT id, name, location, description, created_by, created_at, last_updated, last_accessed, pinned
	          FROM gyms WHERE id = $1`

	var gym models.Gym
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&gym.ID,
		&gym.Name,
		&gym.Location,
		&gym.Description,
		&gym.CreatedBy,
		&gym.CreatedAt,
		&gym.LastUpdated,
		&gym.LastAccessed,
		&gym.Pinned,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gym: %w", err)
	}
	return &gym, nil
}

func (r *PostgresGymRepository) List(ctx context.Context) ([]*models.Gym, error) {
	query := `SELECT id, name, location, description, created_by, created_at, last_updated, last_accessed, pinned
	          FROM gyms ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query gyms: %w", err)
	}
	defer rows.Close()

	var gyms []*models.Gym
	for rows.Next() {
		var gym models.Gym
		err := rows.Scan(
			&gym.ID,
			&gym.Name,
			&gym.Location,
			&gym.Description,
			&gym.CreatedBy,
			&gym.CreatedAt,
			&gym.LastUpdated,
			&gym.LastAccessed,
			&gym.Pinned,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gym: %w", err)
		}
		gyms = append(gyms, &gym)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gyms: %w", err)
	}
	return gyms, nil
}

func (r *PostgresGymRepository) Upsert(ctx context.Context, gym *models.Gym) error {
	_, err := r.pool.Exec(ctx, upsertGymQuery,
		gym.ID,
		gym.Name,
		gym.Location,
		gym.Description,
		gym.CreatedBy,
		gym.CreatedAt,
		gym.LastUpdated,
		gym.LastAccessed,
		gym.Pinned,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert gym: %w", err)
	}
	return nil
}

func (r *PostgresGymRepository) ApplyReconcile(ctx context.Context, deleteIDs []uuid.UUID, upserts []models.Gym) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reconcile transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, id := range deleteIDs {
		if err := deleteGymTx(ctx, tx, id); err != nil {
			return err
		}
	}

	if len(upserts) > 0 {
		batch := &pgx.Batch{}
		for _, gym := range upserts {
			batch.Queue(reconcileUpsertGymQuery,
				gym.ID,
				gym.Name,
				gym.Location,
				gym.Description,
				gym.CreatedBy,
				gym.CreatedAt,
				gym.LastUpdated,
				gym.LastAccessed,
				gym.Pinned,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to bulk upsert gyms: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reconcile transaction: %w", err)
	}
	return nil
}

func (r *PostgresGymRepository) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error {
	result, err := r.pool.Exec(ctx, `UPDATE gyms SET pinned = $1 WHERE id = $2`, pinned, id)
	if err != nil {
		return fmt.Errorf("failed to set pinned: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresGymRepository) TouchLastAccessed(ctx context.Context, id uuid.UUID, at time.Time) error {
	result, err := r.pool.Exec(ctx, `UPDATE gyms SET last_accessed = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to touch last_accessed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresGymRepository) ListStaleIDs(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM gyms WHERE pinned = FALSE AND last_accessed < $1`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale gyms: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to collect stale gym ids: %w", err)
	}
	return ids, nil
}

func (r *PostgresGymRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := deleteGymTx(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}
	return nil
}
