package repositories

import (
	"context"

	"sporton/internal/gateway"
	"sporton/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) (*models.Product, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
}

// GatewayProductRepository stores products in the products collection.
type GatewayProductRepository struct {
	*entities[models.Product]
}

// NewGatewayProductRepository creates a new GatewayProductRepository.
func NewGatewayProductRepository(gw gateway.Gateway) *GatewayProductRepository {
	return &GatewayProductRepository{
		entities: newEntities(gw, gateway.CollectionProducts, "product",
			func(p *models.Product) *string { return &p.ID }),
	}
}

var _ ProductRepository = (*GatewayProductRepository)(nil)

func (r *GatewayProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.all(ctx)
}

func (r *GatewayProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return r.getByID(ctx, id)
}

func (r *GatewayProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.create(ctx, product)
}

func (r *GatewayProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.update(ctx, product)
}

func (r *GatewayProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	return r.delete(ctx, id)
}

// CountByCategory returns how many products reference categoryID.
func (r *GatewayProductRepository) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	products, err := r.all(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}
