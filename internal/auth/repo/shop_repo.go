package repo

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/saborvila/poscore/internal/auth/entity"
	"github.com/saborvila/poscore/pkg/database"
)

// ShopRepo provides data access for the shops table.
type ShopRepo struct {
	db *sqlx.DB
}

func NewShopRepo(db *sqlx.DB) *ShopRepo { return &ShopRepo{db: db} }

// EnsureTable creates the shops table and its owner index if absent.
// The foreign key requires the users table; run UserRepo.EnsureTable first.
func (r *ShopRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS shops (
  id TEXT PRIMARY KEY,
  ownerId TEXT NOT NULL,
  nomeDaLoja TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT (datetime('now')),
  updatedAt TEXT NOT NULL DEFAULT (datetime('now')),
  FOREIGN KEY (ownerId) REFERENCES users (id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_shops_owner ON shops(ownerId);
`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return &database.SchemaError{Table: "shops", Err: err}
	}
	return nil
}

// Create inserts a shop. An ownerId that references no user surfaces as
// ConstraintViolation.
func (r *ShopRepo) Create(ctx context.Context, s *entity.Shop) error {
	const q = `INSERT INTO shops (id, ownerId, nomeDaLoja) VALUES (:id, :ownerId, :nomeDaLoja)`
	_, err := r.db.NamedExecContext(ctx, q, s)
	return database.WrapWrite("create shop", err)
}

const shopColumns = `id, ownerId, nomeDaLoja, createdAt, updatedAt`

// FindByID returns the shop or database.ErrNotFound.
func (r *ShopRepo) FindByID(ctx context.Context, id string) (*entity.Shop, error) {
	var s entity.Shop
	const q = `SELECT ` + shopColumns + ` FROM shops WHERE id = ?`
	if err := r.db.GetContext(ctx, &s, q, id); err != nil {
		return nil, database.WrapRead("find shop by id", err)
	}
	return &s, nil
}

// FindByOwnerID returns all shops for an owner, oldest first. An owner with
// no shops yields an empty slice, not an error.
func (r *ShopRepo) FindByOwnerID(ctx context.Context, ownerID string) ([]entity.Shop, error) {
	shops := []entity.Shop{}
	const q = `SELECT ` + shopColumns + ` FROM shops WHERE ownerId = ? ORDER BY createdAt ASC`
	if err := r.db.SelectContext(ctx, &shops, q, ownerID); err != nil {
		return nil, database.WrapRead("find shops by owner", err)
	}
	return shops, nil
}

// CountByOwnerID returns how many shops an owner has; 0 for an unknown
// owner, never an error for that case.
func (r *ShopRepo) CountByOwnerID(ctx context.Context, ownerID string) (int, error) {
	var count int
	const q = `SELECT COUNT(*) FROM shops WHERE ownerId = ?`
	if err := r.db.GetContext(ctx, &count, q, ownerID); err != nil {
		return 0, database.WrapRead("count shops by owner", err)
	}
	return count, nil
}

// Update rewrites only the supplied fields and refreshes updatedAt.
func (r *ShopRepo) Update(ctx context.Context, id string, p entity.ShopPatch) error {
	set := []string{}
	args := []any{}
	if p.NomeDaLoja != nil {
		set = append(set, "nomeDaLoja = ?")
		args = append(args, *p.NomeDaLoja)
	}
	set = append(set, "updatedAt = datetime('now')")
	args = append(args, id)
	q := `UPDATE shops SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, args...)
	return database.WrapWrite("update shop", err)
}

// Delete removes a shop. Deleting an absent id is a no-op.
func (r *ShopRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM shops WHERE id = ?`, id)
	return database.WrapWrite("delete shop", err)
}
