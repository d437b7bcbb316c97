package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Foreign keys are declared without ON DELETE CASCADE: cascade deletion is
// orchestrated in the repository layer so every delete path uses the same
// mechanism and deletion counts stay accurate.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS gyms (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_by TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT 'epoch',
		last_updated TIMESTAMPTZ NOT NULL DEFAULT 'epoch',
		last_accessed TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		pinned BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS spraywalls (
		id UUID PRIMARY KEY,
		gym_id UUID NOT NULL REFERENCES gyms(id),
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		photo_url TEXT NOT NULL DEFAULT '',
		public BOOLEAN NOT NULL DEFAULT FALSE,
		created_by TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT 'epoch',
		last_updated TIMESTAMPTZ NOT NULL DEFAULT 'epoch'
	)`,
	`CREATE TABLE IF NOT EXISTS boulders (
		id UUID PRIMARY KEY,
		spraywall_id UUID NOT NULL REFERENCES spraywalls(id),
		name TEXT NOT NULL,
		grade TEXT NOT NULL DEFAULT '',
		setter_id TEXT,
		average_rating DOUBLE PRECISION,
		rating_count INTEGER,
		created_at TIMESTAMPTZ NOT NULL DEFAULT 'epoch',
		last_updated TIMESTAMPTZ NOT NULL DEFAULT 'epoch'
	)`,
	`CREATE TABLE IF NOT EXISTS holds (
		id UUID PRIMARY KEY,
		boulder_id UUID NOT NULL REFERENCES boulders(id),
		x DOUBLE PRECISION NOT NULL,
		y DOUBLE PRECISION NOT NULL,
		role TEXT NOT NULL,
		position INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_spraywalls_gym_id ON spraywalls(gym_id)`,
	`CREATE INDEX IF NOT EXISTS idx_boulders_spraywall_id ON boulders(spraywall_id)`,
	`CREATE INDEX IF NOT EXISTS idx_holds_boulder_id ON holds(boulder_id)`,
	`CREATE INDEX IF NOT EXISTS idx_gyms_stale ON gyms(last_accessed) WHERE pinned = FALSE`,
}

// InitSchema applies the schema idempotently at startup.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
