package postgresql

import (
	"context"

	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/database"
)

// GetQuerier returns the transaction carried by ctx, or the pool.
// Repositories call it so the same method works inside and outside
// WithinTransaction.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}
