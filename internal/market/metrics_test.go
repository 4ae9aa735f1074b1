package market

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSummary_Empty(t *testing.T) {
	s := ComputeSummary(nil, nil)

	assert.Zero(t, s.TotalProducts)
	assert.Zero(t, s.ActiveProducts)
	assert.Zero(t, s.TotalStock)
	assert.Zero(t, s.TotalSales)
	assert.Zero(t, s.TotalRevenue)
	assert.Empty(t, s.TopProducts)
	assert.Empty(t, s.LowStockProducts)
}

// Ten products (three inactive) and twenty sales, revenue checked against a
// manual sum.
func TestComputeSummary_FullDashboard(t *testing.T) {
	products := make([]Product, 0, 10)
	for i := 1; i <= 10; i++ {
		status := StatusActive
		if i <= 3 {
			status = StatusInactive
		}
		products = append(products, Product{
			ID:       i,
			Name:     fmt.Sprintf("Produto %d", i),
			Price:    Num(float64(i)),
			Quantity: Num(20),
			Status:   status,
		})
	}

	var sales []Sale
	var wantRevenue float64
	for i := 0; i < 20; i++ {
		productID := i%10 + 1
		sale := Sale{
			ID:         i + 1,
			ProductID:  productID,
			Quantity:   Num(2),
			TotalValue: Num(float64(productID) * 2),
		}
		sales = append(sales, sale)
		wantRevenue += sale.Total()
	}

	s := ComputeSummary(products, sales)

	assert.Equal(t, 10, s.TotalProducts)
	assert.Equal(t, 7, s.ActiveProducts)
	assert.Equal(t, float64(200), s.TotalStock, "stock counts inactive products too")
	assert.Equal(t, 20, s.TotalSales)
	assert.Equal(t, wantRevenue, s.TotalRevenue)
}

func TestComputeSummary_TopProducts(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "Arroz", Status: StatusActive, Quantity: Num(50)},
		{ID: 2, Name: "Feijão", Status: StatusActive, Quantity: Num(50)},
		{ID: 3, Name: "Café", Status: StatusActive, Quantity: Num(50)},
	}
	sales := []Sale{
		{ProductID: 2, Quantity: Num(1), TotalValue: Num(100)},
		{ProductID: 1, Quantity: Num(2), TotalValue: Num(30)},
		{ProductID: 2, Quantity: Num(1), TotalValue: Num(50)},
		{ProductID: 3, Quantity: Num(4), TotalValue: Num(40)},
		{ProductID: 99, Quantity: Num(1), TotalValue: Num(999)}, // unknown product
	}

	s := ComputeSummary(products, sales)

	require.Len(t, s.TopProducts, 3)
	assert.Equal(t, "Feijão", s.TopProducts[0].Name)
	assert.Equal(t, float64(150), s.TopProducts[0].Revenue)
	assert.Equal(t, float64(2), s.TopProducts[0].Quantity)
	assert.Equal(t, "Café", s.TopProducts[1].Name)
	assert.Equal(t, "Arroz", s.TopProducts[2].Name)

	// The orphaned sale still counts toward revenue.
	assert.Equal(t, float64(1219), s.TotalRevenue)

	for i := 1; i < len(s.TopProducts); i++ {
		assert.GreaterOrEqual(t, s.TopProducts[i-1].Revenue, s.TopProducts[i].Revenue)
	}
}

func TestComputeSummary_TopProductsCappedAtFive(t *testing.T) {
	var products []Product
	var sales []Sale
	for i := 1; i <= 8; i++ {
		products = append(products, Product{ID: i, Name: fmt.Sprintf("P%d", i), Status: StatusActive, Quantity: Num(100)})
		sales = append(sales, Sale{ProductID: i, Quantity: Num(1), TotalValue: Num(float64(i * 10))})
	}

	s := ComputeSummary(products, sales)

	require.Len(t, s.TopProducts, 5)
	assert.Equal(t, "P8", s.TopProducts[0].Name)
	assert.Equal(t, "P4", s.TopProducts[4].Name)
}

func TestComputeSummary_LowStock(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "A", Status: StatusActive, Quantity: Num(3)},
		{ID: 2, Name: "B", Status: StatusActive, Quantity: Num(12)},
		{ID: 3, Name: "C", Status: StatusInactive, Quantity: Num(1)},
		{ID: 4, Name: "D", Status: StatusActive, Quantity: Num(9)},
		{ID: 5, Name: "E", Status: StatusActive, Quantity: Num(0)},
		{ID: 6, Name: "F", Status: StatusActive, Quantity: Num(7)},
		{ID: 7, Name: "G", Status: StatusActive, Quantity: Num(5)},
		{ID: 8, Name: "H", Status: StatusActive, Quantity: Num(2)},
	}

	s := ComputeSummary(products, nil)

	require.Len(t, s.LowStockProducts, 5)
	var prev float64 = -1
	for _, p := range s.LowStockProducts {
		assert.True(t, p.IsActive(), "inactive products must not appear")
		assert.Less(t, p.Quantity.Float, float64(10))
		assert.GreaterOrEqual(t, p.Quantity.Float, prev, "must be sorted ascending")
		prev = p.Quantity.Float
	}
	assert.Equal(t, "E", s.LowStockProducts[0].Name)
}

func TestComputeSummary_MalformedFieldsStayFinite(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "A", Status: StatusActive}, // quantity absent
	}
	sales := []Sale{
		{ProductID: 1},                               // nothing usable
		{ProductID: 1, Quantity: Num(2)},             // no price at all
		{ProductID: 1, Quantity: Num(2), SoldPrice: Num(3)},
	}

	s := ComputeSummary(products, sales)

	for _, v := range []float64{s.TotalStock, s.TotalRevenue} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
	assert.Equal(t, float64(6), s.TotalRevenue)
	assert.Equal(t, 3, s.TotalSales)
}

func TestRecent(t *testing.T) {
	sales := []Sale{{ID: 1}, {ID: 2}, {ID: 3}}

	assert.Len(t, Recent(sales, 5), 3)
	assert.Len(t, Recent(sales, 2), 2)
	assert.Equal(t, 1, Recent(sales, 2)[0].ID)
}
