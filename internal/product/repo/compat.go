package repo

import (
	"context"

	"github.com/saborvila/poscore/internal/product/entity"
	"github.com/saborvila/poscore/pkg/database"
)

// LegacyProduct is the shape older callers still send: a quantity field
// instead of stock, and no price. The adapter keeps that translation at the
// boundary so the repository contract stays in terms of stock and price.
type LegacyProduct struct {
	Name        string
	Quantity    int
	MinQuantity int
}

// InsertLegacy maps quantity to stock with a zero price.
func (r *Repo) InsertLegacy(ctx context.Context, p LegacyProduct) (int64, error) {
	return r.Insert(ctx, &entity.Product{
		Name:        p.Name,
		Stock:       p.Quantity,
		Price:       0,
		MinQuantity: p.MinQuantity,
	})
}

// UpdateLegacy maps quantity to stock, leaving the stored price untouched.
func (r *Repo) UpdateLegacy(ctx context.Context, id int64, p LegacyProduct) error {
	const q = `UPDATE products SET name = ?, stock = ?, minQuantity = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, p.Name, p.Quantity, p.MinQuantity, id)
	return database.WrapWrite("update product (legacy)", err)
}
