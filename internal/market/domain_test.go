package market

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleTotal_PrefersExplicitTotal(t *testing.T) {
	sale := Sale{
		TotalValue: Num(99.9),
		SoldPrice:  Num(10),
		Quantity:   Num(3),
	}
	assert.Equal(t, 99.9, sale.Total())
}

func TestSaleTotal_RebuildsFromSoldPrice(t *testing.T) {
	cases := []struct {
		name string
		sale Sale
		want float64
	}{
		{
			"null total",
			Sale{Quantity: Num(3), SoldPrice: Num(10)},
			30,
		},
		{
			"zero total falls through",
			Sale{TotalValue: Num(0), Quantity: Num(2), SoldPrice: Num(5.5)},
			11,
		},
		{
			"nothing usable",
			Sale{},
			0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.sale.Total())
		})
	}
}

// Wire-level version of the fallback: the shape older backend revisions send.
func TestSaleTotal_FromWirePayload(t *testing.T) {
	payload := `{"id": 1, "produto_id": 2, "quantidade": 3, "valor_total": null, "preco_vendido": 10}`

	var sale Sale
	require.NoError(t, json.Unmarshal([]byte(payload), &sale))

	assert.Equal(t, float64(30), sale.Total())
}

func TestProductIsActive(t *testing.T) {
	assert.True(t, Product{Status: "Ativo"}.IsActive())
	assert.True(t, Product{Status: "  ativo "}.IsActive())
	assert.True(t, Product{Status: "ATIVO"}.IsActive())
	assert.False(t, Product{Status: "Inativo"}.IsActive())
	assert.False(t, Product{Status: ""}.IsActive())
}
