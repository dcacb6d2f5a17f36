package report

import (
	"fmt"
	"strconv"
)

// RowSet is the canonical renderer-agnostic record set handed to document
// and delimited-text renderers: a stable column order, one formatted row per
// line item, and an explicit totals row whose numeric fields equal the
// aggregator's grand totals.
type RowSet struct {
	Title   string
	Columns []string
	Rows    [][]string
	Totals  []string
}

// SalesRowSet flattens a sales summary into rows of date, product, quantity,
// derived unit price and total. SummarizeSales has already rejected
// zero-quantity rows, so the unit price division is safe here.
func SalesRowSet(rep *SalesReport) RowSet {
	rs := RowSet{
		Title:   "Relatório de Vendas",
		Columns: []string{"Data", "Produto", "Quantidade", "Preço Unit.", "Total"},
	}
	for _, s := range rep.Sales {
		rs.Rows = append(rs.Rows, []string{
			FormatDate(s.CreatedAt),
			s.Product,
			strconv.Itoa(s.ItemsSold),
			FormatCurrency(s.Total / float64(s.ItemsSold)),
			FormatCurrency(s.Total),
		})
	}
	rs.Totals = []string{
		"TOTAL GERAL",
		"",
		strconv.Itoa(rep.TotalItems),
		"",
		FormatCurrency(rep.TotalSales),
	}
	return rs
}

// InventoryRowSet flattens an inventory summary into rows of product,
// stock, unit price, stock value and low-stock status.
func InventoryRowSet(rep *InventoryReport) RowSet {
	rs := RowSet{
		Title:   "Relatório de Estoque",
		Columns: []string{"Produto", "Estoque", "Preço Unit.", "Valor Total", "Status"},
	}
	for _, line := range rep.Lines {
		status := "OK"
		if line.LowStock {
			status = "Estoque Baixo"
		}
		rs.Rows = append(rs.Rows, []string{
			line.Product.Name,
			strconv.Itoa(line.Product.Stock),
			FormatCurrency(line.Product.Price),
			FormatCurrency(line.Value),
			status,
		})
	}
	rs.Totals = []string{
		"TOTAL GERAL",
		strconv.Itoa(rep.TotalItems),
		"-",
		FormatCurrency(rep.TotalValue),
		"-",
	}
	return rs
}

// RankingRowSet flattens a product ranking into rows of rank position,
// product, quantity, average price, revenue and percentage share (one
// decimal place).
func RankingRowSet(rep *RankingReport) RowSet {
	rs := RowSet{
		Title:   "Relatório de Vendas por Produto",
		Columns: []string{"Ranking", "Produto", "Quantidade Vendida", "Preço Médio", "Total Vendas", "% do Total"},
	}
	for i, g := range rep.Groups {
		rs.Rows = append(rs.Rows, []string{
			fmt.Sprintf("%dº", i+1),
			g.ProductName,
			strconv.Itoa(g.TotalQuantity),
			FormatCurrency(g.AveragePrice),
			FormatCurrency(g.TotalSales),
			fmt.Sprintf("%.1f%%", g.Share),
		})
	}
	rs.Totals = []string{
		"-",
		"TOTAL GERAL",
		strconv.Itoa(rep.TotalQuantity),
		"-",
		FormatCurrency(rep.TotalSales),
		"100%",
	}
	return rs
}
