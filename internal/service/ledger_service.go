package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go-parts-inventory/internal/metrics"
	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"
	"go-parts-inventory/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerService derives stock levels from the transaction ledger and guards
// every stock-changing write.
type LedgerService interface {
	CurrentQuantity(ctx context.Context, componentID uuid.UUID) (int, error)
	CheckIn(ctx context.Context, componentID uuid.UUID, qty int, notes string, actor Actor) (*model.Transaction, error)
	CheckOut(ctx context.Context, componentID uuid.UUID, qty int, notes string, actor Actor) (*model.Transaction, error)
	Record(ctx context.Context, req *RecordTransactionRequest, actor Actor) (*model.Transaction, error)
	History(ctx context.Context, componentID uuid.UUID) ([]model.Transaction, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
}

// RecordTransactionRequest is the generic ledger entry accepted over the API.
type RecordTransactionRequest struct {
	ComponentID uuid.UUID             `json:"component_id" validate:"uuid_required"`
	Type        model.TransactionType `json:"type" validate:"required,oneof=IN OUT"`
	Quantity    int                   `json:"quantity" validate:"required,gt=0"`
	Notes       string                `json:"notes"`
}

type ledgerService struct {
	db      *gorm.DB
	wsHub   *ws.Hub
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewLedgerService(db *gorm.DB, hub *ws.Hub, m *metrics.Metrics, log *slog.Logger) LedgerService {
	if log == nil {
		log = slog.Default()
	}
	return &ledgerService{db: db, wsHub: hub, metrics: m, log: log}
}

func (s *ledgerService) CurrentQuantity(ctx context.Context, componentID uuid.UUID) (int, error) {
	if _, err := repository.NewComponentRepo(s.db).FindByID(ctx, componentID); err != nil {
		return 0, lookupErr(err, "component")
	}
	return repository.NewTransactionRepo(s.db).SumQty(ctx, componentID)
}

func (s *ledgerService) CheckIn(ctx context.Context, componentID uuid.UUID, qty int, notes string, actor Actor) (*model.Transaction, error) {
	if qty <= 0 {
		return nil, invalid("quantity", "must be a positive whole number")
	}

	var (
		entry    *model.Transaction
		newStock int
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		component, err := repository.NewComponentRepo(tx).FindByID(ctx, componentID)
		if err != nil {
			return lookupErr(err, "component")
		}

		txRepo := repository.NewTransactionRepo(tx)
		entry = newEntry(component, qty, notes, actor)
		if err := txRepo.Create(ctx, entry); err != nil {
			return err
		}
		newStock, err = txRepo.SumQty(ctx, componentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveTransaction(string(model.TxIn))
	s.log.Info("stock checked in", "sku", entry.Component.SKU, "qty", qty, "quantity", newStock, "user", actor.Email)
	s.publish(entry, newStock, actor)
	return entry, nil
}

func (s *ledgerService) CheckOut(ctx context.Context, componentID uuid.UUID, qty int, notes string, actor Actor) (*model.Transaction, error) {
	if qty <= 0 {
		return nil, invalid("quantity", "must be a positive whole number")
	}

	var (
		entry    *model.Transaction
		newStock int
	)
	// The row lock on the component serializes concurrent check-outs so the
	// read-then-write below cannot oversell.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		component, err := repository.NewComponentRepo(tx).LockByID(ctx, componentID)
		if err != nil {
			return lookupErr(err, "component")
		}

		txRepo := repository.NewTransactionRepo(tx)
		current, err := txRepo.SumQty(ctx, componentID)
		if err != nil {
			return err
		}
		if current-qty < 0 {
			return &InsufficientStockError{Available: current, Requested: qty}
		}

		entry = newEntry(component, -qty, notes, actor)
		if err := txRepo.Create(ctx, entry); err != nil {
			return err
		}
		newStock = current - qty
		return nil
	})
	if err != nil {
		var short *InsufficientStockError
		if errors.As(err, &short) {
			s.metrics.ObserveCheckoutRejected()
			s.log.Info("check-out rejected", "component_id", componentID, "requested", qty, "available", short.Available)
		}
		return nil, err
	}

	s.metrics.ObserveTransaction(string(model.TxOut))
	s.log.Info("stock checked out", "sku", entry.Component.SKU, "qty", qty, "quantity", newStock, "user", actor.Email)
	s.publish(entry, newStock, actor)
	return entry, nil
}

func (s *ledgerService) Record(ctx context.Context, req *RecordTransactionRequest, actor Actor) (*model.Transaction, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.Type == model.TxOut {
		return s.CheckOut(ctx, req.ComponentID, req.Quantity, req.Notes, actor)
	}
	return s.CheckIn(ctx, req.ComponentID, req.Quantity, req.Notes, actor)
}

func (s *ledgerService) History(ctx context.Context, componentID uuid.UUID) ([]model.Transaction, error) {
	if _, err := repository.NewComponentRepo(s.db).FindByID(ctx, componentID); err != nil {
		return nil, lookupErr(err, "component")
	}
	return repository.NewTransactionRepo(s.db).FindByComponent(ctx, componentID)
}

func (s *ledgerService) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	return repository.NewTransactionRepo(s.db).FindAll(ctx)
}

func (s *ledgerService) GetTransaction(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	t, err := repository.NewTransactionRepo(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "transaction")
	}
	return t, nil
}

func newEntry(component *model.Component, qty int, notes string, actor Actor) *model.Transaction {
	entry := &model.Transaction{
		ComponentID: component.ID,
		UserID:      actor.ID,
		Qty:         qty,
		Notes:       notes,
	}
	entry.CreatedBy = actor.auditID()
	entry.UpdatedBy = actor.auditID()
	entry.Component = component
	return entry
}

func (s *ledgerService) publish(entry *model.Transaction, newStock int, actor Actor) {
	verb, action := "added", "checked_in"
	if entry.Qty < 0 {
		verb, action = "removed", "checked_out"
	}
	magnitude := entry.Qty
	if magnitude < 0 {
		magnitude = -magnitude
	}
	s.wsHub.Publish(ws.Event{
		Type:   "stock_update",
		Action: action,
		Data: map[string]interface{}{
			"transaction_id": entry.ID,
			"component_id":   entry.ComponentID,
			"sku":            entry.Component.SKU,
			"qty":            entry.Qty,
			"quantity":       newStock,
		},
		User:    actor.summary(),
		Message: fmt.Sprintf("%s %s %d units of '%s'", actor.Email, verb, magnitude, entry.Component.SKU),
	})
}
