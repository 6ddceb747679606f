package handlers

import (
	"sporton/internal/models"
	"sporton/pkg/currency"
)

type productView struct {
	models.Product
	PriceDisplay string `json:"priceDisplay"`
}

func newProductView(p models.Product) productView {
	return productView{Product: p, PriceDisplay: currency.FormatRupiah(p.Price)}
}

func newProductViews(products []models.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return views
}

type cartItemView struct {
	models.CartItem
	AmountDisplay string `json:"amountDisplay"`
}

type cartView struct {
	Items                []cartItemView `json:"items"`
	Total                int64          `json:"total"`
	TotalDisplay         string         `json:"totalDisplay"`
	UnresolvedProductIDs []string       `json:"unresolvedProductIds,omitempty"`
}

func newCartView(items []models.CartItem, total models.CartTotal) cartView {
	view := cartView{
		Items:                make([]cartItemView, 0, len(items)),
		Total:                total.Amount,
		TotalDisplay:         currency.FormatRupiah(total.Amount),
		UnresolvedProductIDs: total.UnresolvedProductIDs,
	}
	for _, item := range items {
		view.Items = append(view.Items, cartItemView{CartItem: item, AmountDisplay: currency.FormatRupiah(item.Amount())})
	}
	return view
}

type transactionView struct {
	models.Transaction
	SubtotalDisplay     string `json:"subtotalDisplay"`
	ShippingCostDisplay string `json:"shippingCostDisplay"`
	TotalAmountDisplay  string `json:"totalAmountDisplay"`
}

func newTransactionView(tx models.Transaction) transactionView {
	return transactionView{
		Transaction:         tx,
		SubtotalDisplay:     currency.FormatRupiah(tx.Subtotal),
		ShippingCostDisplay: currency.FormatRupiah(tx.ShippingCost),
		TotalAmountDisplay:  currency.FormatRupiah(tx.TotalAmount),
	}
}

func newTransactionViews(txs []models.Transaction) []transactionView {
	views := make([]transactionView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, newTransactionView(tx))
	}
	return views
}
