package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PurgeOwner hard-deletes every row belonging to one owner across all
// tables, in a single transaction: either all deletions happen or none.
// There is no soft delete and no way back.
func PurgeOwner(ctx context.Context, pool *pgxpool.Pool, ownerID int64) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, stmt := range []string{
		`DELETE FROM transactions WHERE owner_id=$1`,
		`DELETE FROM debts WHERE owner_id=$1`,
		`DELETE FROM user_settings WHERE owner_id=$1`,
	} {
		if _, err := tx.Exec(ctx, stmt, ownerID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
