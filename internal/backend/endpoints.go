package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/VictorHenrique01/mini-mercado-hub/internal/market"
)

// Endpoint paths as the current backend revision exposes them. These have
// drifted between revisions; they live here, not in callers.
const (
	registerPath = "/api/users/register"
	activatePath = "/api/users/activate"
	loginPath    = "/api/users/login"
	usersPath    = "/api/users"
	productsPath = "/api/products"
	salesPath    = "/api/sales"
	healthPath   = "/health"
)

type RegisterRequest struct {
	Name     string `json:"nome"`
	TaxID    string `json:"cnpj"`
	Email    string `json:"email"`
	Phone    string `json:"celular"`
	Password string `json:"senha"`
}

// ActivateRequest submits the one-time activation code. Keyed on email; one
// backend revision keyed on cnpj instead, which the current one no longer
// accepts.
type ActivateRequest struct {
	Email string `json:"email"`
	Code  string `json:"codigo"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	Seller      market.Seller `json:"seller"`
}

type ProductInput struct {
	Name     string  `json:"nome"`
	Price    float64 `json:"preco"`
	Quantity float64 `json:"quantidade"`
	Status   string  `json:"status,omitempty"`
	ImageURL string  `json:"imagem_url,omitempty"`
}

type SaleInput struct {
	ProductID int     `json:"produto_id"`
	Quantity  float64 `json:"quantidade"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.writeJSON(ctx, http.MethodPost, registerPath, req, nil)
}

func (c *Client) Activate(ctx context.Context, req ActivateRequest) error {
	return c.writeJSON(ctx, http.MethodPost, activatePath, req, nil)
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	var out AuthResponse
	err := c.writeJSON(ctx, http.MethodPost, loginPath, req, &out)
	return out, err
}

func (c *Client) GetSeller(ctx context.Context, id int) (market.Seller, error) {
	return getJSON[market.Seller](ctx, c, fmt.Sprintf("%s/%d", usersPath, id))
}

func (c *Client) UpdateSeller(ctx context.Context, id int, req RegisterRequest) (market.Seller, error) {
	var out market.Seller
	err := c.writeJSON(ctx, http.MethodPut, fmt.Sprintf("%s/%d", usersPath, id), req, &out)
	return out, err
}

func (c *Client) InactivateSeller(ctx context.Context, id int) error {
	return c.writeJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", usersPath, id), nil, nil)
}

func (c *Client) ListProducts(ctx context.Context) ([]market.Product, error) {
	return listFresh[market.Product](ctx, c, productsPath)
}

func (c *Client) GetProduct(ctx context.Context, id int) (market.Product, error) {
	return getJSON[market.Product](ctx, c, fmt.Sprintf("%s/%d", productsPath, id))
}

func (c *Client) CreateProduct(ctx context.Context, req ProductInput) (market.Product, error) {
	var out market.Product
	err := c.writeJSON(ctx, http.MethodPost, productsPath, req, &out, productsPath)
	return out, err
}

func (c *Client) UpdateProduct(ctx context.Context, id int, req ProductInput) (market.Product, error) {
	var out market.Product
	err := c.writeJSON(ctx, http.MethodPut, fmt.Sprintf("%s/%d", productsPath, id), req, &out, productsPath)
	return out, err
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.writeJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", productsPath, id), nil, nil, productsPath)
}

func (c *Client) InactivateProduct(ctx context.Context, id int) error {
	return c.writeJSON(ctx, http.MethodPatch, fmt.Sprintf("%s/%d/inactivate", productsPath, id), nil, nil, productsPath)
}

func (c *Client) ListSales(ctx context.Context) ([]market.Sale, error) {
	return listFresh[market.Sale](ctx, c, salesPath)
}

func (c *Client) GetSale(ctx context.Context, id int) (market.Sale, error) {
	return getJSON[market.Sale](ctx, c, fmt.Sprintf("%s/%d", salesPath, id))
}

// CreateSale records a sale. A successful write invalidates both the sale and
// product caches: the backend decrements stock, so both collections are stale
// afterwards.
func (c *Client) CreateSale(ctx context.Context, req SaleInput) (market.Sale, error) {
	var out market.Sale
	err := c.writeJSON(ctx, http.MethodPost, salesPath, req, &out, salesPath, productsPath)
	return out, err
}

func (c *Client) DeleteSale(ctx context.Context, id int) error {
	return c.writeJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", salesPath, id), nil, nil, salesPath, productsPath)
}

// Health probes the backend. Also what "wakes" a hibernating instance.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	return getJSON[map[string]any](ctx, c, healthPath)
}
