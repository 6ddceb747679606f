package models

import "time"

// MaxLineQuantity caps the quantity of a single cart or order line.
const MaxLineQuantity = 999

// CartLine is one product and its requested quantity in the shopper's cart.
// Quantity is always between 1 and MaxLineQuantity; a line that would drop to zero is removed instead.
type CartLine struct {
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// CartItem is a CartLine joined with its product for display.
// Unresolved is set when the product no longer exists; Product then holds a placeholder.
type CartItem struct {
	CartLine
	Product    Product `json:"product"`
	Unresolved bool    `json:"unresolved,omitempty"`
}

// Amount is the line value at the current catalog price.
func (i CartItem) Amount() int64 {
	if i.Unresolved {
		return 0
	}
	return i.Product.Price * int64(i.Quantity)
}

// CartTotal is the cart value plus the product IDs that could not be priced.
type CartTotal struct {
	Amount               int64    `json:"amount"`
	UnresolvedProductIDs []string `json:"unresolvedProductIds,omitempty"`
}

// HasUnresolved reports whether some lines were left out of Amount.
func (t CartTotal) HasUnresolved() bool {
	return len(t.UnresolvedProductIDs) > 0
}
