package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Cascade deletion is orchestrated here rather than with ON DELETE CASCADE
// in the schema, so every delete path uses the same mechanism. Children are
// removed first, one level at a time, inside the caller's transaction.

func deleteHoldsOfBoulderTx(ctx context.Context, tx pgx.Tx, boulderID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM holds WHERE boulder_id = $1`, boulderID); err != nil {
		return fmt.Errorf("failed to delete holds of boulder %s: %w", boulderID, err)
	}
	return nil
}

func deleteBoulderTx(ctx context.Context, tx pgx.Tx, boulderID uuid.UUID) error {
	if err := deleteHoldsOfBoulderTx(ctx, tx, boulderID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM boulders WHERE id = $1`, boulderID); err != nil {
		return fmt.Errorf("failed to delete boulder %s: %w", boulderID, err)
	}
	return nil
}

func deleteSpraywallTx(ctx context.Context, tx pgx.Tx, spraywallID uuid.UUID) error {
	rows, err := tx.Query(ctx, `SELECT id FROM boulders WHERE spraywall_id = $1`, spraywallID)
	if err != nil {
		return fmt.Errorf("failed to list boulders of spraywall %s: %w", spraywallID, err)
	}
	boulderIDs, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return fmt.Errorf("failed to collect boulder ids: %w", err)
	}
	for _, id := range boulderIDs {
		if err := deleteBoulderTx(ctx, tx, id); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM spraywalls WHERE id = $1`, spraywallID); err != nil {
		return fmt.Errorf("failed to delete spraywall %s: %w", spraywallID, err)
	}
	return nil
}

func deleteGymTx(ctx context.Context, tx pgx.Tx, gymID uuid.UUID) error {
	rows, err := tx.Query(ctx, `SELECT id FROM spraywalls WHERE gym_id = $1`, gymID)
	if err != nil {
		return fmt.Errorf("failed to list spraywalls of gym %s: %w", gymID, err)
	}
	wallIDs, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return fmt.Errorf("failed to collect spraywall ids: %w", err)
	}
	for _, id := range wallIDs {
		if err := deleteSpraywallTx(ctx, tx, id); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM gyms WHERE id = $1`, gymID); err != nil {
		return fmt.Errorf("failed to delete gym %s: %w", gymID, err)
	}
	return nil
}
