package service

import (
	"time"

	"storeroom/internal/repository"
)

type DashboardService interface {
	CategorySummary() ([]repository.CategorySummary, error)
	Stats() (*repository.StoreStats, error)
	StockFlow(days int) ([]repository.StockFlowPoint, error)
}

type dashboardService struct {
	items           repository.ItemRepository
	movements       repository.MovementRepository
	lowStockPercent float64
}

func NewDashboardService(items repository.ItemRepository, movements repository.MovementRepository, lowStockPercent float64) DashboardService {
	return &dashboardService{items: items, movements: movements, lowStockPercent: lowStockPercent}
}

func (s *dashboardService) CategorySummary() ([]repository.CategorySummary, error) {
	return s.items.CategorySummary()
}

func (s *dashboardService) Stats() (*repository.StoreStats, error) {
	return s.items.Stats(s.lowStockPercent)
}

func (s *dashboardService) StockFlow(days int) ([]repository.StockFlowPoint, error) {
	if days <= 0 {
		days = 7
	}
	end := time.Now()
	start := end.AddDate(0, 0, -days)
	return s.movements.StockFlow(start, end)
}
