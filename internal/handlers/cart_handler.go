package handlers

import (
	"context"

	"sporton/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopper's cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// RegisterRoutes registers the cart routes with the Fiber router.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Put("/items/:productId", h.HandleSetQuantity)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
}

func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return h.respondCart(c, fiber.StatusOK)
}

// HandleAddItem adds a product; quantity defaults to 1 when omitted.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	req := addItemRequest{Quantity: 1}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.service.AddItem(c.UserContext(), req.ProductID, req.Quantity); err != nil {
		return respondError(c, err)
	}
	return h.respondCart(c, fiber.StatusCreated)
}

func (h *CartHandler) HandleSetQuantity(c *fiber.Ctx) error {
	var req setQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.service.SetQuantity(c.UserContext(), c.Params("productId"), req.Quantity); err != nil {
		return respondError(c, err)
	}
	return h.respondCart(c, fiber.StatusOK)
}

func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	if err := h.service.RemoveItem(c.UserContext(), c.Params("productId")); err != nil {
		return respondError(c, err)
	}
	return h.respondCart(c, fiber.StatusOK)
}

func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.service.Clear(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return h.respondCart(c, fiber.StatusOK)
}

func (h *CartHandler) respondCart(c *fiber.Ctx, status int) error {
	view, err := h.cartView(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(status).JSON(view)
}

func (h *CartHandler) cartView(ctx context.Context) (cartView, error) {
	items, err := h.service.GetCart(ctx)
	if err != nil {
		return cartView{}, err
	}
	return newCartView(items, services.ComputeTotal(items)), nil
}
