package market

import (
	"strings"

	"github.com/VictorHenrique01/mini-mercado-hub/pkg/coerce"
)

// Status values as the backend spells them.
const (
	StatusActive   = "Ativo"
	StatusInactive = "Inativo"
)

// Seller is the authenticated store account.
type Seller struct {
	ID        int    `json:"id"`
	Name      string `json:"nome"`
	TaxID     string `json:"cnpj"`
	Email     string `json:"email"`
	Phone     string `json:"celular"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Product is a catalog item with price and stock quantity.
type Product struct {
	ID        int    `json:"id"`
	SellerID  int    `json:"seller_id"`
	Name      string `json:"nome"`
	Price     Amount `json:"preco"`
	Quantity  Amount `json:"quantidade"`
	Status    string `json:"status"`
	ImageURL  string `json:"imagem_url,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (p Product) IsActive() bool {
	return isActive(p.Status)
}

// Sale is a recorded transaction against a product's stock.
type Sale struct {
	ID         int      `json:"id"`
	SellerID   int      `json:"seller_id"`
	ProductID  int      `json:"produto_id"`
	Quantity   Amount   `json:"quantidade"`
	TotalValue Amount   `json:"valor_total"`
	SoldPrice  Amount   `json:"preco_vendido"`
	CreatedAt  string   `json:"created_at,omitempty"`
	Product    *Product `json:"produto,omitempty"`
}

// Total resolves the sale's monetary value. Backend revisions disagree on
// which field carries it: a positive valor_total wins, otherwise the total is
// rebuilt as preco_vendido times quantidade. A genuinely free sale is
// indistinguishable from a missing total under this chain and resolves to the
// rebuilt value.
func (s Sale) Total() float64 {
	if s.TotalValue.Valid && s.TotalValue.Float > 0 {
		return s.TotalValue.Float
	}
	return coerce.Float(s.SoldPrice.Float * s.Quantity.Float)
}

func isActive(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), StatusActive)
}
