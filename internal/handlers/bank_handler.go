package handlers

import (
	"sporton/internal/models"
	"sporton/internal/services"

	"github.com/gofiber/fiber/v2"
)

// BankHandler handles HTTP requests for the payee bank accounts.
type BankHandler struct {
	service *services.BankService
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(service *services.BankService) *BankHandler {
	return &BankHandler{service: service}
}

// RegisterRoutes registers the bank list on router and its management on admin.
func (h *BankHandler) RegisterRoutes(router, admin fiber.Router) {
	router.Get("/banks", h.HandleListBanks)
	router.Get("/banks/:id", h.HandleGetBank)

	admin.Post("/banks", h.HandleCreateBank)
	admin.Put("/banks/:id", h.HandleUpdateBank)
	admin.Delete("/banks/:id", h.HandleDeleteBank)
}

func (h *BankHandler) HandleListBanks(c *fiber.Ctx) error {
	banks, err := h.service.ListBanks(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(banks)
}

func (h *BankHandler) HandleGetBank(c *fiber.Ctx) error {
	bank, err := h.service.GetBank(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bank)
}

func (h *BankHandler) HandleCreateBank(c *fiber.Ctx) error {
	var bank models.BankAccount
	if err := c.BodyParser(&bank); err != nil {
		return badRequest(c, err)
	}
	created, err := h.service.CreateBank(c.UserContext(), bank)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *BankHandler) HandleUpdateBank(c *fiber.Ctx) error {
	var patch models.BankAccountPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, err)
	}
	updated, err := h.service.UpdateBank(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

func (h *BankHandler) HandleDeleteBank(c *fiber.Ctx) error {
	if _, err := h.service.DeleteBank(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
