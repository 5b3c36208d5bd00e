package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestioplus/gestio-api/internal/core/domain"
	"github.com/gestioplus/gestio-api/internal/core/ports"
)

// ProductService implements tenant-scoped CRUD over stock items.
type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) List(ctx context.Context, tenant string) ([]domain.Product, error) {
	return s.repo.ListByTenant(ctx, tenant)
}

func (s *ProductService) ListLowStock(ctx context.Context, tenant string, threshold *int) ([]domain.Product, error) {
	if threshold != nil && *threshold < 0 {
		return nil, fmt.Errorf("%w: threshold must not be negative", domain.ErrValidation)
	}
	return s.repo.ListLowStock(ctx, tenant, threshold)
}

func (s *ProductService) Create(ctx context.Context, tenant string, in ports.CreateProductInput) (*domain.Product, error) {
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", domain.ErrValidation)
	}

	threshold := domain.DefaultAlertThreshold
	if in.AlertThreshold != nil {
		if *in.AlertThreshold < 0 {
			return nil, fmt.Errorf("%w: alert_threshold must not be negative", domain.ErrValidation)
		}
		threshold = *in.AlertThreshold
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:           in.Name,
		Description:    in.Description,
		Quantity:       in.Quantity,
		Price:          in.Price,
		AlertThreshold: threshold,
		Category:       in.Category,
		TenantSession:  tenant,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Insert(ctx, product)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("tenant", tenant).Msg("product created")
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, id, tenant string, in ports.UpdateProductInput) (*domain.Product, error) {
	if in.Price != nil && *in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", domain.ErrValidation)
	}
	if in.AlertThreshold != nil && *in.AlertThreshold < 0 {
		return nil, fmt.Errorf("%w: alert_threshold must not be negative", domain.ErrValidation)
	}
	return s.repo.Update(ctx, id, tenant, in)
}

func (s *ProductService) Delete(ctx context.Context, id, tenant string) error {
	if err := s.repo.Delete(ctx, id, tenant); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id).Str("tenant", tenant).Msg("product deleted")
	return nil
}
