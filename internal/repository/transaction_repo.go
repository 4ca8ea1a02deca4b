package repository

import (
	"context"
	"time"

	"go-parts-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionRepository reads and appends ledger rows. The ledger is
// append-only: no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	SumQty(ctx context.Context, componentID uuid.UUID) (int, error)
	SumQtyByComponent(ctx context.Context) (map[uuid.UUID]int, error)
	FindAll(ctx context.Context) ([]model.Transaction, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	FindByComponent(ctx context.Context, componentID uuid.UUID) ([]model.Transaction, error)
	GetStockMovement(ctx context.Context, startDate, endDate time.Time) ([]StockMovementData, error)
	GetDashboardStats(ctx context.Context, lowStockThreshold int) (*DashboardStats, error)
}

// StockMovementData untuk chart data
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalComponents     int64 `json:"total_components"`
	LowStockCount       int64 `json:"low_stock_count"`
	TotalVendors        int64 `json:"total_vendors"`
	TotalPurchaseOrders int64 `json:"total_purchase_orders"`
	TotalTags           int64 `json:"total_tags"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(ctx context.Context, tx *model.Transaction) error {
	return r.db.WithContext(ctx).Omit("Component", "User").Create(tx).Error
}

func (r *transactionRepo) SumQty(ctx context.Context, componentID uuid.UUID) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("component_id = ?", componentID).
		Select("COALESCE(SUM(qty), 0)").
		Scan(&total).Error
	return total, err
}

func (r *transactionRepo) SumQtyByComponent(ctx context.Context) (map[uuid.UUID]int, error) {
	var rows []struct {
		ComponentID uuid.UUID
		Total       int
	}
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("component_id, COALESCE(SUM(qty), 0) AS total").
		Group("component_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		totals[row.ComponentID] = row.Total
	}
	return totals, nil
}

func (r *transactionRepo) FindAll(ctx context.Context) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.WithContext(ctx).Preload("Component").Preload("User").Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	if err := r.db.WithContext(ctx).Preload("Component").Preload("User").First(&transaction, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepo) FindByComponent(ctx context.Context, componentID uuid.UUID) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.WithContext(ctx).Preload("User").
		Where("component_id = ?", componentID).
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) GetStockMovement(ctx context.Context, startDate, endDate time.Time) ([]StockMovementData, error) {
	results := []StockMovementData{}

	rows, err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN qty > 0 THEN qty ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN qty < 0 THEN -qty ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		// Postgres hands back a full timestamp for DATE(); keep the day part only.
		if len(data.Date) > 10 {
			data.Date = data.Date[:10]
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

func (r *transactionRepo) GetDashboardStats(ctx context.Context, lowStockThreshold int) (*DashboardStats, error) {
	var stats DashboardStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Component{}).Count(&stats.TotalComponents).Error; err != nil {
		return nil, err
	}

	// Low stock is judged on the derived quantity, never a stored counter.
	err := db.Raw(`
		SELECT COUNT(*) FROM components c
		WHERE c.deleted_at IS NULL
		AND (
			SELECT COALESCE(SUM(t.qty), 0) FROM transactions t
			WHERE t.component_id = c.id AND t.deleted_at IS NULL
		) < ?`, lowStockThreshold).Scan(&stats.LowStockCount).Error
	if err != nil {
		return nil, err
	}

	if err := db.Model(&model.Vendor{}).Count(&stats.TotalVendors).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.PurchaseOrder{}).Count(&stats.TotalPurchaseOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Tag{}).Count(&stats.TotalTags).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
