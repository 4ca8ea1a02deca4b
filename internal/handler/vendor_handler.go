package handler

import (
	"go-parts-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type VendorHandler struct {
	service service.VendorService
	orders  service.PurchaseOrderService
}

func NewVendorHandler(s service.VendorService, orders service.PurchaseOrderService) *VendorHandler {
	return &VendorHandler{service: s, orders: orders}
}

func (h *VendorHandler) CreateVendor(c *fiber.Ctx) error {
	var req service.VendorRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	vendor, err := h.service.CreateVendor(c.UserContext(), &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Vendor created", "data": vendor})
}

func (h *VendorHandler) UpdateVendor(c *fiber.Ctx) error {
	vendorID, err := parseUUID(c.Params("id"))
	if err != nil {
		return invalidID(c, "vendor_id")
	}

	var req service.VendorRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	vendor, err := h.service.UpdateVendor(c.UserContext(), vendorID, &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Vendor updated", "data": vendor})
}

func (h *VendorHandler) GetVendors(c *fiber.Ctx) error {
	vendors, err := h.service.GetAllVendors(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(vendors)
}

// GetVendor includes the vendor's purchase orders
func (h *VendorHandler) GetVendor(c *fiber.Ctx) error {
	vendorID, err := parseUUID(c.Params("id"))
	if err != nil {
		return invalidID(c, "vendor_id")
	}

	vendor, err := h.service.GetVendor(c.UserContext(), vendorID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(vendor)
}

// CreatePurchaseOrder
// POST /api/v1/vendors/:id/purchase-orders
func (h *VendorHandler) CreatePurchaseOrder(c *fiber.Ctx) error {
	vendorID, err := parseUUID(c.Params("id"))
	if err != nil {
		return invalidID(c, "vendor_id")
	}

	var req service.PurchaseOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	order, err := h.orders.CreatePurchaseOrder(c.UserContext(), vendorID, &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Purchase order created", "data": order, "total": order.Total()})
}

func (h *VendorHandler) GetPurchaseOrders(c *fiber.Ctx) error {
	orders, err := h.orders.GetAllPurchaseOrders(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

func (h *VendorHandler) GetPurchaseOrder(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return invalidID(c, "purchase_order_id")
	}

	order, err := h.orders.GetPurchaseOrder(c.UserContext(), orderID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": order, "total": order.Total()})
}
