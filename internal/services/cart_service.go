package services

import (
	"context"
	"fmt"
	"time"

	"sporton/internal/apperrors"
	"sporton/internal/models"
	"sporton/internal/repositories"
)

// UnknownProductName is shown for cart lines whose product no longer exists.
const UnknownProductName = "Unknown Product"

// CartService owns the shopper's cart: one line per product, quantity always >= 1.
type CartService struct {
	cart     repositories.CartRepository
	products repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cart repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{
		cart:     cart,
		products: products,
	}
}

// GetCart returns the cart lines joined with their products, in insertion order.
// A line whose product cannot be found gets a zero-priced placeholder and is marked Unresolved.
func (s *CartService) GetCart(ctx context.Context) ([]models.CartItem, error) {
	lines, err := s.cart.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]models.CartItem, 0, len(lines))
	for _, line := range lines {
		item := models.CartItem{CartLine: line}
		if p, ok := byID[line.ProductID]; ok {
			item.Product = p
		} else {
			item.Product = models.Product{ID: line.ProductID, Name: UnknownProductName}
			item.Unresolved = true
		}
		items = append(items, item)
	}
	return items, nil
}

// AddItem adds quantity of a product, summing into the existing line if there is one.
// The summed quantity may not exceed models.MaxLineQuantity.
func (s *CartService) AddItem(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return apperrors.NewValidationError("quantity", "min")
	}
	if quantity > models.MaxLineQuantity {
		return apperrors.NewValidationError("quantity", "max")
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.cart.Update(ctx, func(lines []models.CartLine) ([]models.CartLine, error) {
		for i := range lines {
			if lines[i].ProductID == productID {
				if lines[i].Quantity > models.MaxLineQuantity-quantity {
					return nil, apperrors.NewValidationError("quantity", "max")
				}
				lines[i].Quantity += quantity
				return lines, nil
			}
		}
		return append(lines, models.CartLine{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now().UTC(),
		}), nil
	})
}

// SetQuantity overwrites the quantity of an existing line. A quantity below 1 removes the line.
func (s *CartService) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return s.RemoveItem(ctx, productID)
	}
	if quantity > models.MaxLineQuantity {
		return apperrors.NewValidationError("quantity", "max")
	}
	return s.cart.Update(ctx, func(lines []models.CartLine) ([]models.CartLine, error) {
		for i := range lines {
			if lines[i].ProductID == productID {
				lines[i].Quantity = quantity
				return lines, nil
			}
		}
		return nil, apperrors.NewNotFound("cart item", productID)
	})
}

// RemoveItem drops the line for productID. Removing an absent line is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, productID string) error {
	return s.cart.Update(ctx, func(lines []models.CartLine) ([]models.CartLine, error) {
		kept := lines[:0]
		for _, line := range lines {
			if line.ProductID != productID {
				kept = append(kept, line)
			}
		}
		return kept, nil
	})
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) error {
	return s.cart.Clear(ctx)
}

// Snapshot captures the cart as order lines priced at the current catalog price.
// It fails if a line's product no longer exists.
func (s *CartService) Snapshot(ctx context.Context) ([]models.OrderLine, error) {
	items, err := s.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	lines := make([]models.OrderLine, 0, len(items))
	for _, item := range items {
		if item.Unresolved {
			return nil, fmt.Errorf("cart line cannot be ordered: %w", apperrors.NewNotFound("product", item.ProductID))
		}
		lines = append(lines, models.OrderLine{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Product.Price,
		})
	}
	return lines, nil
}

// ComputeTotal sums price * quantity over the resolvable items.
// Unresolved items add nothing and are reported so the caller can warn about them.
func ComputeTotal(items []models.CartItem) models.CartTotal {
	var total models.CartTotal
	for _, item := range items {
		if item.Unresolved {
			total.UnresolvedProductIDs = append(total.UnresolvedProductIDs, item.ProductID)
			continue
		}
		total.Amount += item.Amount()
	}
	return total
}
