package repo

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/saborvila/poscore/internal/product/entity"
	"github.com/saborvila/poscore/pkg/database"
)

func newTestRepo(t *testing.T) (*sqlx.DB, *Repo) {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, NewRepo(db)
}

func TestEnsureTableSeedsFreshStore(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	// a store with no products table is created fresh, not "rebuilt":
	// nothing existed, so nothing was discarded
	rebuilt, err := repo.EnsureTable(ctx)
	require.NoError(t, err)
	require.False(t, rebuilt)

	products, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, len(seedCatalog))
}

func TestSeedIfEmpty(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.EnsureTable(ctx)
	require.NoError(t, err)

	// table already holds the starter catalog
	seeded, err := repo.SeedIfEmpty(ctx)
	require.NoError(t, err)
	require.False(t, seeded)

	// a current-shape table that was emptied gets reseeded
	products, err := repo.GetAll(ctx)
	require.NoError(t, err)
	for _, p := range products {
		require.NoError(t, repo.Delete(ctx, p.ID))
	}
	seeded, err = repo.SeedIfEmpty(ctx)
	require.NoError(t, err)
	require.True(t, seeded)

	products, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, len(seedCatalog))
}

func TestEnsureTableIdempotentOnCurrentShape(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.EnsureTable(ctx)
	require.NoError(t, err)

	id, err := repo.Insert(ctx, &entity.Product{Name: "Café Torrado", Stock: 12, Price: 18.90, MinQuantity: 3})
	require.NoError(t, err)

	// second cold start: no structural change, no data loss
	rebuilt, err := repo.EnsureTable(ctx)
	require.NoError(t, err)
	require.False(t, rebuilt)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Café Torrado", got.Name)
}

func TestEnsureTableRebuildsStaleSchema(t *testing.T) {
	db, repo := newTestRepo(t)
	ctx := context.Background()

	// legacy shape: no stock, no price
	_, err := db.ExecContext(ctx, `CREATE TABLE products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		quantity INTEGER DEFAULT 0,
		minQuantity INTEGER DEFAULT 5
	)`)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = db.ExecContext(ctx, `INSERT INTO products (name, quantity) VALUES ('legado', 1)`)
		require.NoError(t, err)
	}

	rebuilt, err := repo.EnsureTable(ctx)
	require.NoError(t, err)
	require.True(t, rebuilt)

	// legacy rows are gone, only the starter catalog remains
	products, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, len(seedCatalog))
	for _, p := range products {
		require.NotEqual(t, "legado", p.Name)
	}
}

func TestGetAllOrdersByDescendingID(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()
	_, err := repo.EnsureTable(ctx)
	require.NoError(t, err)

	first, err := repo.Insert(ctx, &entity.Product{Name: "Primeiro", Stock: 1, Price: 1})
	require.NoError(t, err)
	second, err := repo.Insert(ctx, &entity.Product{Name: "Segundo", Stock: 1, Price: 1})
	require.NoError(t, err)

	products, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(products), 2)
	require.Equal(t, second, products[0].ID)
	require.Equal(t, first, products[1].ID)
	for i := 1; i < len(products); i++ {
		require.Greater(t, products[i-1].ID, products[i].ID)
	}
}

func TestProductUpdateAndDelete(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()
	_, err := repo.EnsureTable(ctx)
	require.NoError(t, err)

	id, err := repo.Insert(ctx, &entity.Product{Name: "Suco de Laranja", Stock: 10, Price: 6.50, MinQuantity: 2})
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, id, &entity.Product{Name: "Suco de Laranja 1L", Stock: 8, Price: 7.00, MinQuantity: 2}))
	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Suco de Laranja 1L", got.Name)
	require.Equal(t, 8, got.Stock)
	require.InDelta(t, 7.00, got.Price, 1e-9)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.FindByID(ctx, id)
	require.ErrorIs(t, err, database.ErrNotFound)
}

func TestLegacyShimMapsQuantityToStock(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()
	_, err := repo.EnsureTable(ctx)
	require.NoError(t, err)

	id, err := repo.InsertLegacy(ctx, LegacyProduct{Name: "Farinha", Quantity: 40, MinQuantity: 10})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 40, got.Stock)
	require.Zero(t, got.Price)

	// the legacy update leaves the stored price untouched
	require.NoError(t, repo.Update(ctx, id, &entity.Product{Name: "Farinha", Stock: 40, Price: 5.20, MinQuantity: 10}))
	require.NoError(t, repo.UpdateLegacy(ctx, id, LegacyProduct{Name: "Farinha de Trigo", Quantity: 35, MinQuantity: 10}))

	got, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Farinha de Trigo", got.Name)
	require.Equal(t, 35, got.Stock)
	require.InDelta(t, 5.20, got.Price, 1e-9)
}
