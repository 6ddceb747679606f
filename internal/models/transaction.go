package models

import "time"

// TransactionStatus is the lifecycle state of an order.
type TransactionStatus string

const (
	StatusPending  TransactionStatus = "pending"
	StatusApproved TransactionStatus = "approved"
	StatusRejected TransactionStatus = "rejected"
)

// Statuses lists every status in display order.
var Statuses = []TransactionStatus{StatusPending, StatusApproved, StatusRejected}

// Valid reports whether s is one of the known statuses.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// OrderLine is a line snapshot taken when the order is created.
// UnitPrice is never re-read from the catalog afterwards.
type OrderLine struct {
	ProductID   string `json:"productId" validate:"required"`
	ProductName string `json:"productName,omitempty"`
	Quantity    int    `json:"quantity" validate:"gte=1,lte=999"`
	UnitPrice   int64  `json:"unitPriceAtOrderTime" validate:"gte=0"`
}

// Amount is UnitPrice * Quantity.
func (l OrderLine) Amount() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// ShippingInfo is the delivery address entered at checkout.
type ShippingInfo struct {
	FullName   string `json:"fullName" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,max=20"`
	Address    string `json:"address" validate:"required,max=255"`
	City       string `json:"city" validate:"required,max=100"`
	Province   string `json:"province" validate:"required,max=100"`
	PostalCode string `json:"postalCode" validate:"required,max=10"`
	Notes      string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// BankInfo is a copy of the bank account the customer paid to.
// It is kept as shown at payment time even if the account is edited later.
type BankInfo struct {
	BankID        string    `json:"bankId"`
	BankName      string    `json:"bankName"`
	AccountNumber string    `json:"accountNumber,omitempty"`
	AccountHolder string    `json:"accountHolder,omitempty"`
	UploadedAt    time.Time `json:"uploadedAt"`
}

// Transaction represents a customer order.
type Transaction struct {
	ID              string            `json:"id"`
	Items           []OrderLine       `json:"items"`
	ShippingInfo    ShippingInfo      `json:"shippingInfo"`
	Subtotal        int64             `json:"subtotal"`
	ShippingCost    int64             `json:"shippingCost"`
	TotalAmount     int64             `json:"totalAmount"`
	Status          TransactionStatus `json:"status"`
	PaymentProof    string            `json:"paymentProof,omitempty"`
	BankInfo        *BankInfo         `json:"bankInfo,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	ApprovedAt      *time.Time        `json:"approvedAt,omitempty"`
	RejectedAt      *time.Time        `json:"rejectedAt,omitempty"`
	RejectionReason string            `json:"rejectionReason,omitempty"`
}

// IsPending reports whether the transaction still awaits an admin decision.
func (t *Transaction) IsPending() bool {
	return t.Status == StatusPending
}

// HasPayment reports whether a payment proof has been attached.
func (t *Transaction) HasPayment() bool {
	return t.PaymentProof != ""
}
