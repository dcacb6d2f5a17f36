package repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/saborvila/poscore/internal/product/entity"
	"github.com/saborvila/poscore/pkg/database"
)

// Repo provides data access for the products table.
type Repo struct {
	db *sqlx.DB
}

func NewRepo(db *sqlx.DB) *Repo { return &Repo{db: db} }

// seedCatalog is inserted once into a freshly rebuilt, empty table.
var seedCatalog = []entity.Product{
	{Name: "Pão de Açúcar", Stock: 50, Price: 0.50, MinQuantity: 10},
	{Name: "Refrigerante 2L", Stock: 30, Price: 4.50, MinQuantity: 5},
	{Name: "Água Mineral", Stock: 100, Price: 1.50, MinQuantity: 20},
	{Name: "Biscoito Recheado", Stock: 25, Price: 2.80, MinQuantity: 5},
}

// EnsureTable brings the products table to the current shape. If the stored
// table predates the stock or price columns it is dropped and recreated —
// rows under the stale schema are lost; that is the migration contract, and
// the returned rebuilt flag lets the caller surface it. A store with no
// products table at all is created fresh and reports rebuilt=false: nothing
// was discarded. The drop, create and seed run in one transaction so a crash
// cannot leave a half-migrated table.
func (r *Repo) EnsureTable(ctx context.Context) (rebuilt bool, err error) {
	exists, hasStock, hasPrice, err := r.inspectColumns(ctx)
	if err != nil {
		return false, &database.SchemaError{Table: "products", Err: err}
	}
	if exists && hasStock && hasPrice {
		return false, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, &database.SchemaError{Table: "products", Err: err}
	}
	defer tx.Rollback()

	stmts := []string{
		`DROP TABLE IF EXISTS products`,
		`CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  stock INTEGER DEFAULT 0,
  price REAL DEFAULT 0.0,
  minQuantity INTEGER DEFAULT 5
)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return false, &database.SchemaError{Table: "products", Err: err}
		}
	}

	if _, err := seedIfEmpty(ctx, tx); err != nil {
		return false, &database.SchemaError{Table: "products", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return false, &database.SchemaError{Table: "products", Err: err}
	}
	return exists, nil
}

// SeedIfEmpty inserts the starter catalog when the current-shape table holds
// no rows, and reports whether it did. EnsureTable covers the rebuild path;
// this covers a table that is already current-shape but empty.
func (r *Repo) SeedIfEmpty(ctx context.Context) (bool, error) {
	seeded, err := seedIfEmpty(ctx, r.db)
	if err != nil {
		return false, database.WrapWrite("seed products", err)
	}
	return seeded, nil
}

func seedIfEmpty(ctx context.Context, db sqlx.ExtContext) (bool, error) {
	var count int
	if err := sqlx.GetContext(ctx, db, &count, `SELECT COUNT(*) FROM products`); err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	for _, p := range seedCatalog {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO products (name, stock, price, minQuantity) VALUES (?, ?, ?, ?)`,
			p.Name, p.Stock, p.Price, p.MinQuantity); err != nil {
			return false, err
		}
	}
	return true, nil
}

// inspectColumns reports whether a stored products table exists and whether
// it carries the stock and price columns. PRAGMA table_info yields no rows
// for a missing table.
func (r *Repo) inspectColumns(ctx context.Context) (exists, hasStock, hasPrice bool, err error) {
	rows, err := r.db.QueryContext(ctx, `PRAGMA table_info(products)`)
	if err != nil {
		return false, false, false, fmt.Errorf("inspect products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		exists = true
		var (
			cid, notNull, pk int
			name, colType    string
			dflt             any
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return false, false, false, fmt.Errorf("inspect products: %w", err)
		}
		switch name {
		case "stock":
			hasStock = true
		case "price":
			hasPrice = true
		}
	}
	return exists, hasStock, hasPrice, rows.Err()
}

// GetAll returns products ordered by descending id, most recently created
// first. Report generation depends on this ordering.
func (r *Repo) GetAll(ctx context.Context) ([]entity.Product, error) {
	products := []entity.Product{}
	const q = `SELECT id, name, stock, price, minQuantity FROM products ORDER BY id DESC`
	if err := r.db.SelectContext(ctx, &products, q); err != nil {
		return nil, database.WrapRead("get all products", err)
	}
	return products, nil
}

// FindByID returns the product or database.ErrNotFound.
func (r *Repo) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	const q = `SELECT id, name, stock, price, minQuantity FROM products WHERE id = ?`
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		return nil, database.WrapRead("find product by id", err)
	}
	return &p, nil
}

// Insert creates a product and returns its assigned id.
func (r *Repo) Insert(ctx context.Context, p *entity.Product) (int64, error) {
	const q = `INSERT INTO products (name, stock, price, minQuantity) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.Stock, p.Price, p.MinQuantity)
	if err != nil {
		return 0, database.WrapWrite("insert product", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, database.WrapWrite("insert product", err)
	}
	p.ID = id
	return id, nil
}

// Update rewrites a product row in place.
func (r *Repo) Update(ctx context.Context, id int64, p *entity.Product) error {
	const q = `UPDATE products SET name = ?, stock = ?, price = ?, minQuantity = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, p.Name, p.Stock, p.Price, p.MinQuantity, id)
	return database.WrapWrite("update product", err)
}

// Delete removes a product.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	return database.WrapWrite("delete product", err)
}
