package models

// Product represents a product in the store.
// Price is in the smallest currency unit (rupiah), at most one trillion.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required,max=100"`
	CategoryID  string `json:"categoryId" validate:"required"`
	Price       int64  `json:"price" validate:"gt=0,lte=1000000000000"`
	Image       string `json:"image" validate:"required"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// Category groups products. Products reference it by ID.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// ProductPatch carries the fields an admin update may change. Nil fields are left as they are.
type ProductPatch struct {
	Name        *string `json:"name"`
	CategoryID  *string `json:"categoryId"`
	Price       *int64  `json:"price"`
	Image       *string `json:"image"`
	Description *string `json:"description"`
}

// Apply returns a copy of p with the non-nil patch fields applied.
func (patch ProductPatch) Apply(p Product) Product {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	return p
}

// CategoryPatch carries the fields an admin update may change on a category.
type CategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (patch CategoryPatch) Apply(c Category) Category {
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	return c
}
