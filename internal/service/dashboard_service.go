package service

import (
	"context"

	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/repository"
)

type DashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardSummary, error)
}

type dashboardService struct {
	customerRepo  repository.CustomerRepository
	saleRepo      repository.SaleRepository
	expenseRepo   repository.ExpenseRepository
	inventoryRepo repository.InventoryRepository
}

func NewDashboardService(
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
	inventoryRepo repository.InventoryRepository,
) DashboardService {
	return &dashboardService{
		customerRepo:  customerRepo,
		saleRepo:      saleRepo,
		expenseRepo:   expenseRepo,
		inventoryRepo: inventoryRepo,
	}
}

// Summary aggregates the live (un-archived) collections into the headline
// figures. Archived months drop out automatically because closing removes
// their rows from the live tables.
func (s *dashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	outstanding, err := s.customerRepo.SumOutstanding(ctx)
	if err != nil {
		return nil, err
	}
	day := today()
	salesToday, err := s.saleRepo.SumAmountOnDate(ctx, day)
	if err != nil {
		return nil, err
	}
	expensesToday, err := s.expenseRepo.SumAmountOnDate(ctx, day)
	if err != nil {
		return nil, err
	}
	due, err := s.customerRepo.CountDueToday(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.inventoryRepo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}
	warehouse, err := s.inventoryRepo.Warehouse(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardSummary{
		TotalOutstanding: outstanding,
		SalesToday:       salesToday,
		ExpensesToday:    expensesToday,
		CustomersDue:     int(due),
		LowStockItems:    int(lowStock),
		WarehouseStock:   warehouse.Stock,
	}, nil
}
