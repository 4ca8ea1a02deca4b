package handler

import (
	"time"

	"go-parts-inventory/internal/middleware"
	"go-parts-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Services bundles everything the API routes call into.
type Services struct {
	Auth          service.AuthService
	Users         service.UserService
	Inventory     service.InventoryService
	Ledger        service.LedgerService
	Tags          service.TagService
	Vendors       service.VendorService
	PurchaseOrder service.PurchaseOrderService
	Dashboard     service.DashboardService
}

// RegisterRoutes mounts the JSON API under /api/v1.
func RegisterRoutes(app fiber.Router, s Services) {
	invHandler := NewInventoryHandler(s.Inventory, s.Ledger)
	tagHandler := NewTagHandler(s.Tags)
	vendorHandler := NewVendorHandler(s.Vendors, s.PurchaseOrder)
	dashHandler := NewDashboardHandler(s.Dashboard)
	authHandler := NewAuthHandler(s.Auth, s.Users)
	userHandler := NewUserHandler(s.Users)

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth", limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(s.Auth))

	// Dashboard
	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", dashHandler.GetStockMovement)

	// Components and stock ledger
	protected.Get("/components", invHandler.GetComponents)
	protected.Post("/components", invHandler.CreateComponent)
	protected.Get("/components/:id", invHandler.GetComponent)
	protected.Put("/components/:id", invHandler.UpdateComponent)
	protected.Get("/components/:id/quantity", invHandler.GetQuantity)
	protected.Get("/components/:id/transactions", invHandler.GetComponentTransactions)
	protected.Post("/components/:id/checkin", invHandler.CheckIn)
	protected.Post("/components/:id/checkout", invHandler.CheckOut)

	protected.Get("/transactions", invHandler.GetTransactions)
	protected.Get("/transactions/:id", invHandler.GetTransaction)
	protected.Post("/transactions", invHandler.CreateTransaction)

	// Tags
	protected.Put("/components/:id/tags", tagHandler.ApplyTag)
	protected.Get("/components/:id/tags", tagHandler.GetComponentTags)
	protected.Delete("/components/:id/tags/:tagId", tagHandler.RemoveFromComponent)
	protected.Get("/tags", tagHandler.GetTags)
	protected.Post("/tags", tagHandler.CreateTag)
	protected.Get("/tags/uncategorized", tagHandler.GetUncategorized)
	protected.Delete("/tags/:id", tagHandler.DeleteTag)
	protected.Get("/categories", tagHandler.GetCategories)

	// Vendors and purchase orders
	protected.Get("/vendors", vendorHandler.GetVendors)
	protected.Post("/vendors", vendorHandler.CreateVendor)
	protected.Get("/vendors/:id", vendorHandler.GetVendor)
	protected.Put("/vendors/:id", vendorHandler.UpdateVendor)
	protected.Post("/vendors/:id/purchase-orders", vendorHandler.CreatePurchaseOrder)
	protected.Get("/purchase-orders", vendorHandler.GetPurchaseOrders)
	protected.Get("/purchase-orders/:id", vendorHandler.GetPurchaseOrder)

	// User management
	admin := protected.Group("/users", middleware.RequireAdmin())
	admin.Get("", userHandler.GetUsers)
	admin.Post("", userHandler.CreateUser)
	admin.Get("/:id", userHandler.GetUser)
}
