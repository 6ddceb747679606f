package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sporton/internal/apperrors"
	"sporton/internal/models"
	"sporton/internal/repositories"
)

// CatalogService handles business logic related to products and categories.
// Every read goes to the repositories; nothing is cached here.
type CatalogService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(products repositories.ProductRepository, categories repositories.CategoryRepository) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
	}
}

// ListProducts retrieves all products.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.GetAll(ctx)
}

// GetProduct retrieves a single product by its ID.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// ListCategories retrieves all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.GetAll(ctx)
}

// GetCategory retrieves a single category by its ID.
func (s *CatalogService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// CreateProduct validates and stores a new product.
func (s *CatalogService) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	normalizeProduct(&product)
	if err := s.validateProduct(ctx, product); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, &product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// UpdateProduct applies patch to the product and stores it if the result is valid.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	current, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := patch.Apply(*current)
	updated.ID = current.ID
	normalizeProduct(&updated)
	if err := s.validateProduct(ctx, updated); err != nil {
		return nil, err
	}
	if err := s.products.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return &updated, nil
}

// DeleteProduct deletes a product by its ID and returns it.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.products.Delete(ctx, id)
}

// CreateCategory validates and stores a new category.
func (s *CatalogService) CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	normalizeCategory(&category)
	if err := checkStruct(category); err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, &category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// UpdateCategory applies patch to the category and stores it if the result is valid.
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error) {
	current, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := patch.Apply(*current)
	updated.ID = current.ID
	normalizeCategory(&updated)
	if err := checkStruct(updated); err != nil {
		return nil, err
	}
	if err := s.categories.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", id, err)
	}
	return &updated, nil
}

// DeleteCategory deletes a category unless a product still references it.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) (*models.Category, error) {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return nil, err
	}
	n, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, &apperrors.ReferentialIntegrityError{Entity: "category", ID: id, ReferencedBy: "products", Count: n}
	}
	return s.categories.Delete(ctx, id)
}

func (s *CatalogService) validateProduct(ctx context.Context, product models.Product) error {
	violations := &apperrors.ValidationError{}
	if err := validateStruct(product, "", violations); err != nil {
		return err
	}
	if product.CategoryID != "" {
		_, err := s.categories.GetByID(ctx, product.CategoryID)
		var nf *apperrors.NotFoundError
		switch {
		case errors.As(err, &nf):
			violations.Add("categoryId", "not_found")
		case err != nil:
			return err
		}
	}
	if violations.Empty() {
		return nil
	}
	return violations
}

func normalizeProduct(p *models.Product) {
	p.Name = strings.TrimSpace(p.Name)
	p.CategoryID = strings.TrimSpace(p.CategoryID)
	p.Image = strings.TrimSpace(p.Image)
	p.Description = strings.TrimSpace(p.Description)
}

func normalizeCategory(c *models.Category) {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
}
