package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"
	"go-parts-inventory/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryService manages the component catalogue. Stock levels come from
// the ledger and are attached to every component it returns.
type InventoryService interface {
	CreateComponent(ctx context.Context, req *ComponentRequest, actor Actor) (*model.ComponentView, error)
	UpdateComponent(ctx context.Context, id uuid.UUID, req *ComponentRequest, actor Actor) (*model.ComponentView, error)
	GetComponent(ctx context.Context, id uuid.UUID) (*model.ComponentView, error)
	GetAllComponents(ctx context.Context) ([]model.ComponentView, error)
}

type ComponentRequest struct {
	SKU         string `json:"sku" validate:"required,max=50"`
	Description string `json:"description" validate:"required,max=255"`
}

type inventoryService struct {
	componentRepo   repository.ComponentRepository
	transactionRepo repository.TransactionRepository
	wsHub           *ws.Hub
	log             *slog.Logger
}

func NewInventoryService(cRepo repository.ComponentRepository, tRepo repository.TransactionRepository, hub *ws.Hub, log *slog.Logger) InventoryService {
	if log == nil {
		log = slog.Default()
	}
	return &inventoryService{
		componentRepo:   cRepo,
		transactionRepo: tRepo,
		wsHub:           hub,
		log:             log,
	}
}

func (r *ComponentRequest) normalize() {
	r.SKU = strings.TrimSpace(r.SKU)
	r.Description = strings.TrimSpace(r.Description)
}

func (s *inventoryService) CreateComponent(ctx context.Context, req *ComponentRequest, actor Actor) (*model.ComponentView, error) {
	req.normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	// SKU is the uniqueness key; an existing component is left untouched.
	if _, err := s.componentRepo.FindBySKU(ctx, req.SKU); err == nil {
		return nil, duplicate("component")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	component := &model.Component{SKU: req.SKU, Description: req.Description}
	component.CreatedBy = actor.auditID()
	component.UpdatedBy = actor.auditID()
	if err := s.componentRepo.Create(ctx, component); err != nil {
		return nil, writeErr(err, "component")
	}

	s.log.Info("component created", "sku", component.SKU, "user", actor.Email)
	s.wsHub.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "component_created",
		Data:    map[string]interface{}{"id": component.ID, "sku": component.SKU, "description": component.Description},
		User:    actor.summary(),
		Message: fmt.Sprintf("%s created component '%s'", actor.Email, component.SKU),
	})
	return &model.ComponentView{Component: *component}, nil
}

func (s *inventoryService) UpdateComponent(ctx context.Context, id uuid.UUID, req *ComponentRequest, actor Actor) (*model.ComponentView, error) {
	req.normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	existing, err := s.componentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "component")
	}

	if req.SKU != existing.SKU {
		clash, err := s.componentRepo.FindBySKU(ctx, req.SKU)
		if err == nil && clash.ID != existing.ID {
			return nil, duplicate("component")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	existing.SKU = req.SKU
	existing.Description = req.Description
	existing.UpdatedBy = actor.auditID()
	if err := s.componentRepo.Update(ctx, existing); err != nil {
		return nil, writeErr(err, "component")
	}

	return s.GetComponent(ctx, id)
}

func (s *inventoryService) GetComponent(ctx context.Context, id uuid.UUID) (*model.ComponentView, error) {
	component, err := s.componentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "component")
	}
	qty, err := s.transactionRepo.SumQty(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.ComponentView{Component: *component, Quantity: qty}, nil
}

func (s *inventoryService) GetAllComponents(ctx context.Context) ([]model.ComponentView, error) {
	components, err := s.componentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.transactionRepo.SumQtyByComponent(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]model.ComponentView, 0, len(components))
	for _, c := range components {
		views = append(views, model.ComponentView{Component: c, Quantity: totals[c.ID]})
	}
	return views, nil
}
