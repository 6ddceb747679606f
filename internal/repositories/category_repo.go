package repositories

import (
	"context"

	"sporton/internal/gateway"
	"sporton/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) (*models.Category, error)
}

// GatewayCategoryRepository stores categories in the categories collection.
type GatewayCategoryRepository struct {
	*entities[models.Category]
}

func NewGatewayCategoryRepository(gw gateway.Gateway) *GatewayCategoryRepository {
	return &GatewayCategoryRepository{
		entities: newEntities(gw, gateway.CollectionCategories, "category",
			func(c *models.Category) *string { return &c.ID }),
	}
}

var _ CategoryRepository = (*GatewayCategoryRepository)(nil)

func (r *GatewayCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	return r.all(ctx)
}

func (r *GatewayCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return r.getByID(ctx, id)
}

func (r *GatewayCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.create(ctx, category)
}

func (r *GatewayCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.update(ctx, category)
}

func (r *GatewayCategoryRepository) Delete(ctx context.Context, id string) (*models.Category, error) {
	return r.delete(ctx, id)
}
