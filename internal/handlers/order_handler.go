package handlers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"sporton/internal/apperrors"
	"sporton/internal/models"
	"sporton/internal/services"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ProofLoader reads back stored payment proofs.
type ProofLoader interface {
	Load(ctx context.Context, ref string) ([]byte, error)
}

// ResetFunc wipes the cart and transaction collections.
type ResetFunc func(ctx context.Context) error

// OrderHandler handles HTTP requests for checkout, payment and the admin review of transactions.
type OrderHandler struct {
	orders *services.OrderService
	cart   *services.CartService
	proofs ProofLoader
	reset  ResetFunc
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders *services.OrderService, cart *services.CartService, proofs ProofLoader, reset ResetFunc) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		cart:   cart,
		proofs: proofs,
		reset:  reset,
	}
}

type checkoutRequest struct {
	ShippingInfo models.ShippingInfo `json:"shippingInfo"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// RegisterRoutes registers the customer routes on router and the review routes on admin.
func (h *OrderHandler) RegisterRoutes(router, admin fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
	router.Get("/transactions/:id", h.HandleGetTransaction)
	router.Post("/transactions/:id/payment", h.HandleAttachPayment)
	router.Get("/proofs/:ref", h.HandleGetProof)

	adminTx := admin.Group("/transactions")
	adminTx.Get("/", h.HandleListTransactions)
	adminTx.Get("/summary", h.HandleSummary)
	adminTx.Get("/:id", h.HandleGetTransaction)
	adminTx.Post("/:id/approve", h.HandleApprove)
	adminTx.Post("/:id/reject", h.HandleReject)
	admin.Post("/reset", h.HandleReset)
}

// HandleCheckout snapshots the cart and creates a pending transaction from it.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	lines, err := h.cart.Snapshot(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	tx, err := h.orders.CreateOrder(c.UserContext(), lines, req.ShippingInfo)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newTransactionView(*tx))
}

func (h *OrderHandler) HandleGetTransaction(c *fiber.Ctx) error {
	tx, err := h.orders.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newTransactionView(*tx))
}

// HandleAttachPayment takes a multipart form with a bankId field and a proof file.
func (h *OrderHandler) HandleAttachPayment(c *fiber.Ctx) error {
	proof, err := readProof(c)
	if err != nil {
		return respondError(c, err)
	}
	tx, err := h.orders.AttachPayment(c.UserContext(), c.Params("id"), c.FormValue("bankId"), proof)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newTransactionView(*tx))
}

func readProof(c *fiber.Ctx) (services.PaymentProof, error) {
	header, err := c.FormFile("proof")
	if err != nil {
		// A missing file is reported by the service together with the other fields.
		return services.PaymentProof{}, nil
	}
	f, err := header.Open()
	if err != nil {
		return services.PaymentProof{}, fmt.Errorf("failed to open proof upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return services.PaymentProof{}, fmt.Errorf("failed to read proof upload: %w", err)
	}
	return services.PaymentProof{Filename: header.Filename, Data: data}, nil
}

// HandleGetProof serves a stored payment proof image.
func (h *OrderHandler) HandleGetProof(c *fiber.Ctx) error {
	data, err := h.proofs.Load(c.UserContext(), c.Params("ref"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, mimetype.Detect(data).String())
	return c.Send(data)
}

// HandleListTransactions lists transactions filtered by ?status= and ?q=.
func (h *OrderHandler) HandleListTransactions(c *fiber.Ctx) error {
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))
	if status != "" && status != services.StatusAll && !models.TransactionStatus(status).Valid() {
		return respondError(c, apperrors.NewValidationError("status", "oneof"))
	}

	txs, err := h.orders.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	filtered := services.FilterTransactions(txs, services.TransactionFilter{
		Status:     status,
		SearchText: c.Query("q"),
	})
	return c.JSON(fiber.Map{
		"transactions": newTransactionViews(filtered),
		"counts":       services.CountByStatus(txs),
	})
}

func (h *OrderHandler) HandleSummary(c *fiber.Ctx) error {
	txs, err := h.orders.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(services.Summarize(txs))
}

func (h *OrderHandler) HandleApprove(c *fiber.Ctx) error {
	tx, err := h.orders.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newTransactionView(*tx))
}

func (h *OrderHandler) HandleReject(c *fiber.Ctx) error {
	var req rejectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	tx, err := h.orders.Reject(c.UserContext(), c.Params("id"), req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newTransactionView(*tx))
}

// HandleReset clears the cart and every transaction. The catalog and banks are kept.
func (h *OrderHandler) HandleReset(c *fiber.Ctx) error {
	if err := h.reset(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	log.Warn().Interface("admin", c.Locals("admin_email")).Msg("orders and cart reset")
	return c.SendStatus(fiber.StatusNoContent)
}
