package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"sporton/internal/apperrors"
	"sporton/internal/models"
	"sporton/internal/repositories"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultShippingCost is the flat shipping fee in rupiah.
	DefaultShippingCost int64 = 25000
	// DefaultMaxProofBytes caps payment proof uploads at 5MB.
	DefaultMaxProofBytes int64 = 5 * 1024 * 1024
)

// Routing keys for order lifecycle events.
const (
	EventOrderCreated    = "order.created"
	EventPaymentAttached = "order.payment_attached"
	EventOrderApproved   = "order.approved"
	EventOrderRejected   = "order.rejected"
)

// CartClearer empties the shopper's cart when an order is approved.
type CartClearer interface {
	Clear(ctx context.Context) error
}

// ProofStore keeps payment proof images and returns a reference to each.
type ProofStore interface {
	Save(ctx context.Context, ext string, data []byte) (string, error)
	Delete(ctx context.Context, ref string) error
}

// EventPublisher sends order lifecycle events to a broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderEvent is the message published for each lifecycle change.
type OrderEvent struct {
	TransactionID string                   `json:"transactionId"`
	Status        models.TransactionStatus `json:"status"`
	TotalAmount   int64                    `json:"totalAmount"`
	OccurredAt    time.Time                `json:"occurredAt"`
}

// PaymentProof is an uploaded transfer receipt.
type PaymentProof struct {
	Filename string
	Data     []byte
}

// OrderConfig holds the tunables of the order lifecycle.
type OrderConfig struct {
	ShippingCost  int64
	MaxProofBytes int64
	Now           func() time.Time
}

// OrderService runs the order lifecycle: pending -> approved or pending -> rejected.
// Approved and rejected are terminal.
type OrderService struct {
	txRepo    repositories.TransactionRepository
	bankRepo  repositories.BankRepository
	cart      CartClearer
	proofs    ProofStore
	publisher EventPublisher
	cfg       OrderConfig
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(
	txRepo repositories.TransactionRepository,
	bankRepo repositories.BankRepository,
	cart CartClearer,
	proofs ProofStore,
	publisher EventPublisher,
	cfg OrderConfig,
) *OrderService {
	if cfg.MaxProofBytes <= 0 {
		cfg.MaxProofBytes = DefaultMaxProofBytes
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &OrderService{
		txRepo:    txRepo,
		bankRepo:  bankRepo,
		cart:      cart,
		proofs:    proofs,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *OrderService) now() time.Time {
	return s.cfg.Now().UTC()
}

// ListAll retrieves all transactions.
func (s *OrderService) ListAll(ctx context.Context) ([]models.Transaction, error) {
	return s.txRepo.GetAll(ctx)
}

// GetByID retrieves a single transaction by its ID.
func (s *OrderService) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	return s.txRepo.GetByID(ctx, id)
}

// CreateOrder creates a pending transaction from a cart snapshot.
// Totals are computed from the snapshot prices only. The cart is left as it is;
// it is cleared when the order is approved.
func (s *OrderService) CreateOrder(ctx context.Context, lines []models.OrderLine, shipping models.ShippingInfo) (*models.Transaction, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("failed to create order: %w", apperrors.ErrEmptyCart)
	}

	normalizeShipping(&shipping)
	violations := &apperrors.ValidationError{}
	if err := validateStruct(shipping, "", violations); err != nil {
		return nil, err
	}
	for i, line := range lines {
		if err := validateStruct(line, fmt.Sprintf("items[%d].", i), violations); err != nil {
			return nil, err
		}
	}
	if !violations.Empty() {
		return nil, violations
	}

	items := make([]models.OrderLine, len(lines))
	copy(items, lines)
	subtotal, total, ok := s.orderTotals(items)
	if !ok {
		return nil, apperrors.NewValidationError("totalAmount", "overflow")
	}

	tx := &models.Transaction{
		ID:           "TRX-" + strings.ToUpper(uuid.New().String()),
		Items:        items,
		ShippingInfo: shipping,
		Subtotal:     subtotal,
		ShippingCost: s.cfg.ShippingCost,
		TotalAmount:  total,
		Status:       models.StatusPending,
		CreatedAt:    s.now(),
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	log.Info().Str("transaction_id", tx.ID).Int64("total_amount", tx.TotalAmount).Int("lines", len(items)).Msg("order created")
	s.publish(EventOrderCreated, tx)
	return tx, nil
}

// orderTotals sums the line amounts and adds shipping. It reports false if any
// step leaves the int64 range.
func (s *OrderService) orderTotals(items []models.OrderLine) (subtotal, total int64, ok bool) {
	for _, line := range items {
		var amount int64
		if amount, ok = lineAmount(line.UnitPrice, line.Quantity); !ok {
			return 0, 0, false
		}
		if subtotal, ok = addAmount(subtotal, amount); !ok {
			return 0, 0, false
		}
	}
	total, ok = addAmount(subtotal, s.cfg.ShippingCost)
	return subtotal, total, ok
}

// AttachPayment records the bank the customer paid to and the transfer proof.
// It may be repeated while the transaction is pending; the latest proof wins.
// The transaction stays pending until an admin approves or rejects it.
func (s *OrderService) AttachPayment(ctx context.Context, id, bankID string, proof PaymentProof) (*models.Transaction, error) {
	var previousRef, savedRef string
	tx, err := s.txRepo.Update(ctx, id, func(tx *models.Transaction) error {
		if !tx.IsPending() {
			return apperrors.NewInvalidState(tx.ID, string(tx.Status), "attach payment to")
		}

		bankID = strings.TrimSpace(bankID)
		violations := &apperrors.ValidationError{}
		if bankID == "" {
			violations.Add("bankId", "required")
		}
		ext := s.checkProof(proof, violations)
		if !violations.Empty() {
			return violations
		}

		bank, err := s.bankRepo.GetByID(ctx, bankID)
		if err != nil {
			return err
		}
		ref, err := s.proofs.Save(ctx, ext, proof.Data)
		if err != nil {
			return err
		}
		savedRef = ref
		previousRef = tx.PaymentProof

		tx.PaymentProof = ref
		tx.BankInfo = &models.BankInfo{
			BankID:        bank.ID,
			BankName:      bank.BankName,
			AccountNumber: bank.AccountNumber,
			AccountHolder: bank.AccountHolder,
			UploadedAt:    s.now(),
		}
		return nil
	})
	if err != nil {
		if savedRef != "" {
			s.deleteProof(ctx, savedRef)
		}
		return nil, err
	}
	if previousRef != "" && previousRef != tx.PaymentProof {
		s.deleteProof(ctx, previousRef)
	}

	log.Info().
		Str("transaction_id", tx.ID).
		Str("bank_id", tx.BankInfo.BankID).
		Str("proof", tx.PaymentProof).
		Str("filename", proof.Filename).
		Msg("payment proof attached")
	s.publish(EventPaymentAttached, tx)
	return tx, nil
}

// deleteProof removes a proof that is no longer referenced. Failures are logged only.
func (s *OrderService) deleteProof(ctx context.Context, ref string) {
	if err := s.proofs.Delete(ctx, ref); err != nil {
		log.Warn().Err(err).Str("proof", ref).Msg("failed to delete unreferenced payment proof")
	}
}

// checkProof validates the upload and returns the file extension to store it under.
func (s *OrderService) checkProof(proof PaymentProof, violations *apperrors.ValidationError) string {
	if len(proof.Data) == 0 {
		violations.Add("proof", "required")
		return ""
	}
	if int64(len(proof.Data)) > s.cfg.MaxProofBytes {
		violations.Add("proof", "too_large")
		return ""
	}
	mt := mimetype.Detect(proof.Data)
	if !strings.HasPrefix(mt.String(), "image/") {
		violations.Add("proof", "not_an_image")
		return ""
	}
	return mt.Extension()
}

// Approve moves a pending transaction to approved and clears the shopper's cart.
func (s *OrderService) Approve(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := s.txRepo.Update(ctx, id, func(tx *models.Transaction) error {
		if !tx.IsPending() {
			return apperrors.NewInvalidState(tx.ID, string(tx.Status), "approve")
		}
		approvedAt := s.now()
		tx.Status = models.StatusApproved
		tx.ApprovedAt = &approvedAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.cart.Clear(ctx); err != nil {
		return nil, fmt.Errorf("transaction %s approved but cart was not cleared: %w", tx.ID, err)
	}

	log.Info().Str("transaction_id", tx.ID).Msg("order approved")
	s.publish(EventOrderApproved, tx)
	return tx, nil
}

// Reject moves a pending transaction to rejected with a reason. The cart is not touched.
func (s *OrderService) Reject(ctx context.Context, id, reason string) (*models.Transaction, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("reason", "required")
	}

	tx, err := s.txRepo.Update(ctx, id, func(tx *models.Transaction) error {
		if !tx.IsPending() {
			return apperrors.NewInvalidState(tx.ID, string(tx.Status), "reject")
		}
		rejectedAt := s.now()
		tx.Status = models.StatusRejected
		tx.RejectedAt = &rejectedAt
		tx.RejectionReason = reason
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("transaction_id", tx.ID).Str("reason", reason).Msg("order rejected")
	s.publish(EventOrderRejected, tx)
	return tx, nil
}

// publish sends a lifecycle event. Failures are logged and never fail the operation.
func (s *OrderService) publish(routingKey string, tx *models.Transaction) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(OrderEvent{
		TransactionID: tx.ID,
		Status:        tx.Status,
		TotalAmount:   tx.TotalAmount,
		OccurredAt:    s.now(),
	})
	if err != nil {
		log.Error().Err(err).Str("transaction_id", tx.ID).Msg("failed to marshal order event")
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Warn().Err(err).Str("transaction_id", tx.ID).Str("event", routingKey).Msg("failed to publish order event")
	}
}

func normalizeShipping(s *models.ShippingInfo) {
	s.FullName = strings.TrimSpace(s.FullName)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Address = strings.TrimSpace(s.Address)
	s.City = strings.TrimSpace(s.City)
	s.Province = strings.TrimSpace(s.Province)
	s.PostalCode = strings.TrimSpace(s.PostalCode)
	s.Notes = strings.TrimSpace(s.Notes)
}
