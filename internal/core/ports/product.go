package ports

import (
	"context"

	"github.com/gestioplus/gestio-api/internal/core/domain"
)

// CreateProductInput carries the fields accepted when creating a product.
// AlertThreshold of nil means "use the default".
type CreateProductInput struct {
	Name           string
	Description    string
	Quantity       int
	Price          float64
	AlertThreshold *int
	Category       string
}

// UpdateProductInput is the allow-list of mutable product fields.
type UpdateProductInput struct {
	Name           *string
	Description    *string
	Quantity       *int
	Price          *float64
	AlertThreshold *int
	Category       *string
}

type ProductService interface {
	List(ctx context.Context, tenant string) ([]domain.Product, error)
	// ListLowStock returns products at or below their own alert threshold.
	// When threshold is non-nil the per-product threshold is ignored and the
	// flat cutoff is used instead.
	ListLowStock(ctx context.Context, tenant string, threshold *int) ([]domain.Product, error)
	Create(ctx context.Context, tenant string, in CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id, tenant string, in UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id, tenant string) error
}

type ProductRepository interface {
	ListByTenant(ctx context.Context, tenant string) ([]domain.Product, error)
	ListLowStock(ctx context.Context, tenant string, threshold *int) ([]domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id, tenant string, in UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id, tenant string) error
	CountLowStock(ctx context.Context, tenant string) (int64, error)
}
