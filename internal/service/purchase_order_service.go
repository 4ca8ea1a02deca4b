package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const poCodeAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

type PurchaseOrderService interface {
	CreatePurchaseOrder(ctx context.Context, vendorID uuid.UUID, req *PurchaseOrderRequest, actor Actor) (*model.PurchaseOrder, error)
	GetPurchaseOrder(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	GetAllPurchaseOrders(ctx context.Context) ([]model.PurchaseOrder, error)
}

type PurchaseOrderRequest struct {
	LineItems []LineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

type LineItemRequest struct {
	ComponentID uuid.UUID `json:"component_id" validate:"uuid_required"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice   int64     `json:"unit_price" validate:"gte=0"` // minor units
}

type purchaseOrderService struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewPurchaseOrderService(db *gorm.DB, log *slog.Logger) PurchaseOrderService {
	if log == nil {
		log = slog.Default()
	}
	return &purchaseOrderService{db: db, log: log}
}

// newPOCode returns a short human-readable order number such as "PO-7K2M9Q4XBA".
func newPOCode() (string, error) {
	id, err := gonanoid.Generate(poCodeAlphabet, 10)
	if err != nil {
		return "", fmt.Errorf("generate purchase order code: %w", err)
	}
	return "PO-" + id, nil
}

func (s *purchaseOrderService) CreatePurchaseOrder(ctx context.Context, vendorID uuid.UUID, req *PurchaseOrderRequest, actor Actor) (*model.PurchaseOrder, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	code, err := newPOCode()
	if err != nil {
		return nil, err
	}

	order := &model.PurchaseOrder{
		Code:      code,
		VendorID:  vendorID,
		CreatedOn: time.Now(),
	}
	order.CreatedBy = actor.auditID()
	order.UpdatedBy = actor.auditID()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repository.NewVendorRepo(tx).FindByID(ctx, vendorID); err != nil {
			return lookupErr(err, "vendor")
		}

		components := repository.NewComponentRepo(tx)
		for _, li := range req.LineItems {
			if _, err := components.FindByID(ctx, li.ComponentID); err != nil {
				return lookupErr(err, "component")
			}
			item := model.LineItem{
				ComponentID: li.ComponentID,
				Quantity:    li.Quantity,
				UnitPrice:   li.UnitPrice,
			}
			item.CreatedBy = actor.auditID()
			order.LineItems = append(order.LineItems, item)
		}

		return repository.NewPurchaseOrderRepo(tx).Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("purchase order created", "code", order.Code, "vendor_id", vendorID, "lines", len(order.LineItems), "total", order.Total())
	return s.GetPurchaseOrder(ctx, order.ID)
}

func (s *purchaseOrderService) GetPurchaseOrder(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	order, err := repository.NewPurchaseOrderRepo(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "purchase order")
	}
	return order, nil
}

func (s *purchaseOrderService) GetAllPurchaseOrders(ctx context.Context) ([]model.PurchaseOrder, error) {
	return repository.NewPurchaseOrderRepo(s.db).FindAll(ctx)
}
