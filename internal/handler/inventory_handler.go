package handler

import (
	"context"

	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	service service.InventoryService
	ledger  service.LedgerService
}

func NewInventoryHandler(s service.InventoryService, ledger service.LedgerService) *InventoryHandler {
	return &InventoryHandler{service: s, ledger: ledger}
}

// StockMovementRequest is the body of check-in and check-out.
type StockMovementRequest struct {
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

func (h *InventoryHandler) CreateComponent(c *fiber.Ctx) error {
	var req service.ComponentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	component, err := h.service.CreateComponent(c.UserContext(), &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Component created", "data": component})
}

func (h *InventoryHandler) UpdateComponent(c *fiber.Ctx) error {
	componentID, err := parseUUID(c.Params("id"))
	if err != nil {
		return invalidID(c, "component_id")
	}

	var req service.ComponentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	updated, err := h.service.UpdateComponent(c.UserContext(), componentID, &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Component updated", "data": updated})
}

func (h *InventoryHandler) GetComponents(c *fiber.Ctx) error {
	components, err := h.service.GetAllComponents(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(components)
}

func (h *InventoryHandler) GetComponent(c *fiber.Ctx) error {
	componentID, err := parseUUID(c.Params("id"))
	if err != nil {
		return invalidID(c, "component_id")
	}

	component, err := h.service.GetComponent(c.UserContext(), componentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(component)
}

func (h *InventoryHandler) GetQuantity(c *fiber.Ctx) error {
	componentID, err := parseUUID(c.Params("id"))
	if err != nil {
		return invalidID(c, "component_id")
	}

	qty, err := h.ledger.CurrentQuantity(c.UserContext(), componentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"component_id": componentID, "quantity": qty})
}

func (h *InventoryHandler) GetComponentTransactions(c *fiber.Ctx) error {
	componentID, err := parseUUID(c.Params("id"))
	if err != nil {
		return invalidID(c, "component_id")
	}

	history, err := h.ledger.History(c.UserContext(), componentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(history)
}

func (h *InventoryHandler) CheckIn(c *fiber.Ctx) error {
	return h.move(c, h.ledger.CheckIn, "Stock checked in")
}

func (h *InventoryHandler) CheckOut(c *fiber.Ctx) error {
	return h.move(c, h.ledger.CheckOut, "Stock checked out")
}

type ledgerOp func(ctx context.Context, componentID uuid.UUID, qty int, notes string, actor service.Actor) (*model.Transaction, error)

func (h *InventoryHandler) move(c *fiber.Ctx, op ledgerOp, message string) error {
	componentID, err := parseUUID(c.Params("id"))
	if err != nil {
		return invalidID(c, "component_id")
	}

	var req StockMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, bodyError(err, "quantity"))
	}

	entry, err := op(c.UserContext(), componentID, req.Quantity, req.Notes, getActor(c))
	if err != nil {
		return respondError(c, err)
	}

	qty, err := h.ledger.CurrentQuantity(c.UserContext(), componentID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": message, "data": entry, "quantity": qty})
}

func (h *InventoryHandler) CreateTransaction(c *fiber.Ctx) error {
	var req service.RecordTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, bodyError(err, "body"))
	}

	entry, err := h.ledger.Record(c.UserContext(), &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transaction recorded", "data": entry})
}

func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.ledger.ListTransactions(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transactions)
}

func (h *InventoryHandler) GetTransaction(c *fiber.Ctx) error {
	txID, err := parseUUID(c.Params("id"))
	if err != nil {
		return invalidID(c, "transaction_id")
	}

	transaction, err := h.ledger.GetTransaction(c.UserContext(), txID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transaction)
}
