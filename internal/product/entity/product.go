package entity

// Product is a catalog row. MinQuantity is the per-product reorder
// threshold; note that inventory reports flag low stock at a fixed
// constant instead (see report.LowStockThreshold).
type Product struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Stock       int     `db:"stock"`
	Price       float64 `db:"price"`
	MinQuantity int     `db:"minQuantity"`
}
