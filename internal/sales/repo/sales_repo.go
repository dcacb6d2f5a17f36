package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/saborvila/poscore/internal/sales/entity"
	"github.com/saborvila/poscore/pkg/database"
)

// Repo is a read-only view over the externally-owned sales table. The core
// does not create, migrate or write this table; a missing table surfaces as
// a StorageError like any other read failure.
type Repo struct {
	db *sqlx.DB
}

func NewRepo(db *sqlx.DB) *Repo { return &Repo{db: db} }

// RecentSales returns recorded sales, newest first.
func (r *Repo) RecentSales(ctx context.Context) ([]entity.Sale, error) {
	sales := []entity.Sale{}
	const q = `SELECT id, product, itemsSold, total, createdAt FROM sales ORDER BY createdAt DESC`
	if err := r.db.SelectContext(ctx, &sales, q); err != nil {
		return nil, database.WrapRead("recent sales", err)
	}
	return sales, nil
}
