package entity

// Sale is an immutable, append-only fact recorded by the selling flow.
// The core reads these rows for reporting and never writes them.
type Sale struct {
	ID        int64   `db:"id"`
	Product   string  `db:"product"`
	ItemsSold int     `db:"itemsSold"`
	Total     float64 `db:"total"`
	CreatedAt string  `db:"createdAt"`
}
