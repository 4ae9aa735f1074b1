// Package hub ties the request client and the metric aggregations together:
// it is what the HTTP surface calls to serve dashboards, reports and sale
// submissions.
package hub

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/VictorHenrique01/mini-mercado-hub/internal/backend"
	"github.com/VictorHenrique01/mini-mercado-hub/internal/market"
)

// ErrInvalidQuantity is returned when a sale submission asks for a
// non-positive quantity.
var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

const recentSalesCount = 5

// Backend is the slice of the request client the hub consumes.
type Backend interface {
	ListProducts(ctx context.Context) ([]market.Product, error)
	ListSales(ctx context.Context) ([]market.Sale, error)
	CreateSale(ctx context.Context, req backend.SaleInput) (market.Sale, error)
}

// Overview is the dashboard payload: derived figures plus the latest sales.
type Overview struct {
	market.Summary
	RecentSales []market.Sale `json:"recent_sales"`
}

type Service struct {
	api    Backend
	logger *zap.Logger
}

func NewService(api Backend, logger *zap.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Overview fetches products and sales concurrently, joins them, and folds
// them into the dashboard figures. A failure of either fetch fails the whole
// overview; callers surface the error instead of rendering half a dashboard.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	products, sales, err := s.fetchBoth(ctx)
	if err != nil {
		return Overview{}, err
	}

	summary := market.ComputeSummary(products, sales)
	s.logger.Info("overview computed",
		zap.Int("products", summary.TotalProducts),
		zap.Int("sales", summary.TotalSales),
		zap.Float64("revenue", summary.TotalRevenue))

	return Overview{
		Summary:     summary,
		RecentSales: market.Recent(sales, recentSalesCount),
	}, nil
}

// Report returns the derived figures without the recent-sales tail.
func (s *Service) Report(ctx context.Context) (market.Summary, error) {
	products, sales, err := s.fetchBoth(ctx)
	if err != nil {
		return market.Summary{}, err
	}
	return market.ComputeSummary(products, sales), nil
}

// SubmitSale records a sale. The write invalidates the cached product and
// sale lists inside the client, so reads issued after a successful submission
// observe the decremented stock.
func (s *Service) SubmitSale(ctx context.Context, productID int, quantity float64) (market.Sale, error) {
	if quantity <= 0 {
		return market.Sale{}, ErrInvalidQuantity
	}

	sale, err := s.api.CreateSale(ctx, backend.SaleInput{ProductID: productID, Quantity: quantity})
	if err != nil {
		s.logger.Error("sale submission failed",
			zap.Int("product_id", productID),
			zap.Float64("quantity", quantity),
			zap.Error(err))
		return market.Sale{}, err
	}

	s.logger.Info("sale recorded",
		zap.Int("sale_id", sale.ID),
		zap.Int("product_id", sale.ProductID),
		zap.Float64("total", sale.Total()))
	return sale, nil
}

func (s *Service) fetchBoth(ctx context.Context) ([]market.Product, []market.Sale, error) {
	var (
		products []market.Product
		sales    []market.Sale
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.api.ListProducts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = s.api.ListSales(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return products, sales, nil
}
