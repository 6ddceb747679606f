package repositories

import (
	"context"

	"sporton/internal/gateway"
	"sporton/internal/models"
)

// CartRepository defines the interface for the shopper's cart lines.
type CartRepository interface {
	GetAll(ctx context.Context) ([]models.CartLine, error)
	// Update reads the lines, applies fn and writes the result back as one unit.
	Update(ctx context.Context, fn func([]models.CartLine) ([]models.CartLine, error)) error
	Clear(ctx context.Context) error
}

// GatewayCartRepository stores cart lines in the cart collection.
type GatewayCartRepository struct {
	lines collection[models.CartLine]
}

func NewGatewayCartRepository(gw gateway.Gateway) *GatewayCartRepository {
	return &GatewayCartRepository{
		lines: collection[models.CartLine]{gw: gw, name: gateway.CollectionCart},
	}
}

var _ CartRepository = (*GatewayCartRepository)(nil)

func (r *GatewayCartRepository) GetAll(ctx context.Context) ([]models.CartLine, error) {
	return r.lines.all(ctx)
}

func (r *GatewayCartRepository) Update(ctx context.Context, fn func([]models.CartLine) ([]models.CartLine, error)) error {
	return r.lines.mutate(ctx, fn)
}

func (r *GatewayCartRepository) Clear(ctx context.Context) error {
	return r.lines.mutate(ctx, func([]models.CartLine) ([]models.CartLine, error) {
		return []models.CartLine{}, nil
	})
}
