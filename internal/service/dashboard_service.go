package service

import (
	"context"
	"time"

	"go-parts-inventory/internal/repository"
)

type DashboardService interface {
	GetStockMovement(ctx context.Context, days int) ([]repository.StockMovementData, error)
	GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error)
}

type dashboardService struct {
	txRepo            repository.TransactionRepository
	lowStockThreshold int
}

func NewDashboardService(txRepo repository.TransactionRepository, lowStockThreshold int) DashboardService {
	return &dashboardService{txRepo: txRepo, lowStockThreshold: lowStockThreshold}
}

func (s *dashboardService) GetStockMovement(ctx context.Context, days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.txRepo.GetStockMovement(ctx, startDate, endDate)
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	return s.txRepo.GetDashboardStats(ctx, s.lowStockThreshold)
}
