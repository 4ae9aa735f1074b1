package market

import "sort"

const (
	topListSize       = 5
	lowStockThreshold = 10
)

// ProductSales is one row of the top-products ranking.
type ProductSales struct {
	ProductID int     `json:"produto_id"`
	Name      string  `json:"nome"`
	Quantity  float64 `json:"quantidade"`
	Revenue   float64 `json:"receita"`
}

// Summary holds the derived dashboard and report figures.
type Summary struct {
	TotalProducts    int            `json:"total_products"`
	ActiveProducts   int            `json:"active_products"`
	TotalStock       float64        `json:"total_stock"`
	TotalSales       int            `json:"total_sales"`
	TotalRevenue     float64        `json:"total_revenue"`
	TopProducts      []ProductSales `json:"top_products"`
	LowStockProducts []Product      `json:"low_stock_products"`
}

// ComputeSummary folds the product and sale collections into a Summary.
// Every numeric path goes through Amount or Sale.Total, so all figures are
// finite regardless of how malformed the input records are.
func ComputeSummary(products []Product, sales []Sale) Summary {
	s := Summary{
		TotalProducts: len(products),
		TotalSales:    len(sales),
	}

	byID := make(map[int]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
		// Stock counts inactive products too; this matches the live
		// dashboard's behavior, ambiguous as it is.
		s.TotalStock += p.Quantity.Float
		if p.IsActive() {
			s.ActiveProducts++
		}
	}

	grouped := make(map[int]*ProductSales)
	var order []int
	for _, sale := range sales {
		s.TotalRevenue += sale.Total()

		// Sales against unknown products still count toward revenue
		// but cannot be named in the ranking.
		product, ok := byID[sale.ProductID]
		if !ok {
			continue
		}
		row, ok := grouped[sale.ProductID]
		if !ok {
			row = &ProductSales{ProductID: sale.ProductID, Name: product.Name}
			grouped[sale.ProductID] = row
			order = append(order, sale.ProductID)
		}
		row.Quantity += sale.Quantity.Float
		row.Revenue += sale.Total()
	}

	top := make([]ProductSales, 0, len(order))
	for _, id := range order {
		top = append(top, *grouped[id])
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Revenue > top[j].Revenue
	})
	s.TopProducts = truncate(top, topListSize)

	var low []Product
	for _, p := range products {
		if p.IsActive() && p.Quantity.Float < lowStockThreshold {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Quantity.Float < low[j].Quantity.Float
	})
	s.LowStockProducts = truncate(low, topListSize)

	return s
}

// Recent returns the first n sales, matching the order the backend lists
// them in.
func Recent(sales []Sale, n int) []Sale {
	return truncate(sales, n)
}

func truncate[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
