package report

import (
	"sort"

	productentity "github.com/saborvila/poscore/internal/product/entity"
	salesentity "github.com/saborvila/poscore/internal/sales/entity"
)

// LowStockThreshold is the fixed stock level at or below which a product is
// flagged in inventory reports. Deliberately not the per-product
// MinQuantity: the two thresholds coexist in the source data model and
// reports have always used the constant.
const LowStockThreshold = 5

// SalesReport summarizes a list of sale facts.
type SalesReport struct {
	Sales            []salesentity.Sale
	TotalSales       float64
	TotalItems       int
	TransactionCount int
}

// SummarizeSales computes grand totals over sales. Zero sales yields
// ErrEmptyDataset; a sale with zero items sold yields InvalidInputError,
// since its unit price is undefined.
func SummarizeSales(sales []salesentity.Sale) (*SalesReport, error) {
	if len(sales) == 0 {
		return nil, ErrEmptyDataset
	}
	rep := &SalesReport{Sales: sales, TransactionCount: len(sales)}
	for _, s := range sales {
		if s.ItemsSold == 0 {
			return nil, &InvalidInputError{Product: s.Product, Reason: "zero items sold"}
		}
		rep.TotalSales += s.Total
		rep.TotalItems += s.ItemsSold
	}
	return rep, nil
}

// InventoryLine is one product with its derived stock value.
type InventoryLine struct {
	Product  productentity.Product
	Value    float64
	LowStock bool
}

// InventoryReport summarizes the product catalog.
type InventoryReport struct {
	Lines        []InventoryLine
	TotalValue   float64
	TotalItems   int
	ProductCount int
}

// SummarizeInventory computes per-product stock values and grand totals.
// Zero products yields ErrEmptyDataset.
func SummarizeInventory(products []productentity.Product) (*InventoryReport, error) {
	if len(products) == 0 {
		return nil, ErrEmptyDataset
	}
	rep := &InventoryReport{ProductCount: len(products)}
	for _, p := range products {
		value := float64(p.Stock) * p.Price
		rep.Lines = append(rep.Lines, InventoryLine{
			Product:  p,
			Value:    value,
			LowStock: p.Stock <= LowStockThreshold,
		})
		rep.TotalValue += value
		rep.TotalItems += p.Stock
	}
	return rep, nil
}

// ProductGroup accumulates all sales of one product name.
type ProductGroup struct {
	ProductName   string
	TotalQuantity int
	TotalSales    float64
	AveragePrice  float64
	// Share is this group's percentage of the grand total.
	Share float64
}

// RankingReport orders product groups by revenue.
type RankingReport struct {
	Groups        []ProductGroup
	TotalSales    float64
	TotalQuantity int
}

// RankProducts groups sales by exact product name, sorts descending by
// group revenue (ties keep first-seen order) and derives each group's
// average price and percentage share of the grand total.
func RankProducts(sales []salesentity.Sale) (*RankingReport, error) {
	if len(sales) == 0 {
		return nil, ErrEmptyDataset
	}

	index := map[string]int{}
	groups := []ProductGroup{}
	for _, s := range sales {
		if s.ItemsSold == 0 {
			return nil, &InvalidInputError{Product: s.Product, Reason: "zero items sold"}
		}
		i, ok := index[s.Product]
		if !ok {
			i = len(groups)
			index[s.Product] = i
			groups = append(groups, ProductGroup{ProductName: s.Product})
		}
		groups[i].TotalQuantity += s.ItemsSold
		groups[i].TotalSales += s.Total
	}

	rep := &RankingReport{}
	for i := range groups {
		groups[i].AveragePrice = groups[i].TotalSales / float64(groups[i].TotalQuantity)
		rep.TotalSales += groups[i].TotalSales
		rep.TotalQuantity += groups[i].TotalQuantity
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].TotalSales > groups[b].TotalSales
	})

	for i := range groups {
		groups[i].Share = groups[i].TotalSales / rep.TotalSales * 100
	}
	rep.Groups = groups
	return rep, nil
}
