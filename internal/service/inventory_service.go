package service

import (
	"context"

	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/model"
	"github.com/manpreet243/nishat-main/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryService interface {
	CreateItem(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error)
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest, adjustedBy string) (*dto.ItemResponse, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	GetItem(ctx context.Context, id uuid.UUID) (*dto.ItemDetailResponse, error)
	ListItems(ctx context.Context) ([]dto.ItemResponse, error)
	Warehouse(ctx context.Context) (*dto.WarehouseResponse, error)
}

type inventoryService struct {
	repo           repository.InventoryRepository
	adjustmentRepo repository.StockAdjustmentRepository
}

func NewInventoryService(repo repository.InventoryRepository, adjustmentRepo repository.StockAdjustmentRepository) InventoryService {
	return &inventoryService{repo: repo, adjustmentRepo: adjustmentRepo}
}

// CreateItem registers a new line and draws its initial stock out of the
// warehouse pool. The pool clamps at zero: stocking more than the pool holds
// empties it without going negative (the surplus is assumed freshly bought).
func (s *inventoryService) CreateItem(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error) {
	warehouse, err := s.repo.Warehouse(ctx)
	if err != nil {
		return nil, err
	}

	item := model.InventoryItem{
		Name:              req.Name,
		Category:          req.Category,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		SellPrice:         req.SellPrice,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &item); err != nil {
			return err
		}
		if req.Stock > 0 {
			pool := warehouse.Stock - req.Stock
			if pool < 0 {
				pool = 0
			}
			if err := s.repo.SetWarehouseTx(tx, pool); err != nil {
				return err
			}
			adj := &model.StockAdjustment{
				ItemID:         item.ID,
				Date:           today(),
				QuantityChange: req.Stock,
				Reason:         "Received to inventory from warehouse",
				AdjustedBy:     adjustedBySystem,
			}
			if err := s.adjustmentRepo.CreateTx(tx, adj); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return itemToResponse(&item), nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrItemNotFound
	}
	item.Name = req.Name
	item.Category = req.Category
	item.LowStockThreshold = req.LowStockThreshold
	item.SellPrice = req.SellPrice
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return itemToResponse(item), nil
}

// AdjustStock sets an item to an absolute level and moves the difference
// through the warehouse pool: increasing an item takes from the pool,
// decreasing returns to it. The pool clamps at zero on the way down.
func (s *inventoryService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest, adjustedBy string) (*dto.ItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrItemNotFound
	}
	warehouse, err := s.repo.Warehouse(ctx)
	if err != nil {
		return nil, err
	}

	diff := req.NewStock - item.Stock
	pool := warehouse.Stock - diff
	if pool < 0 {
		pool = 0
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		item.Stock = req.NewStock
		if err := s.repo.UpdateTx(tx, item); err != nil {
			return err
		}
		if err := s.repo.SetWarehouseTx(tx, pool); err != nil {
			return err
		}
		adj := &model.StockAdjustment{
			ItemID:         item.ID,
			Date:           today(),
			QuantityChange: req.QuantityChange,
			Reason:         req.Reason,
			AdjustedBy:     adjustedBy,
		}
		return s.adjustmentRepo.CreateTx(tx, adj)
	})
	if txErr != nil {
		return nil, txErr
	}
	return itemToResponse(item), nil
}

// DeleteItem returns any remaining stock to the warehouse pool and purges
// the item's adjustment history along with the item itself.
func (s *inventoryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrItemNotFound
	}
	warehouse, err := s.repo.Warehouse(ctx)
	if err != nil {
		return err
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if item.Stock > 0 {
			if err := s.repo.SetWarehouseTx(tx, warehouse.Stock+item.Stock); err != nil {
				return err
			}
		}
		if err := s.adjustmentRepo.DeleteByItemTx(tx, item.ID); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, item.ID)
	})
}

func (s *inventoryService) GetItem(ctx context.Context, id uuid.UUID) (*dto.ItemDetailResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrItemNotFound
	}
	history, err := s.adjustmentRepo.ListByItem(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := &dto.ItemDetailResponse{
		Item:    *itemToResponse(item),
		History: make([]dto.StockAdjustmentResponse, 0, len(history)),
	}
	for i := range history {
		resp.History = append(resp.History, adjustmentToResponse(&history[i]))
	}
	return resp, nil
}

func (s *inventoryService) ListItems(ctx context.Context) ([]dto.ItemResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *itemToResponse(&items[i]))
	}
	return out, nil
}

func (s *inventoryService) Warehouse(ctx context.Context) (*dto.WarehouseResponse, error) {
	w, err := s.repo.Warehouse(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.WarehouseResponse{Stock: w.Stock}, nil
}

func itemToResponse(i *model.InventoryItem) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:                i.ID.String(),
		Name:              i.Name,
		Category:          i.Category,
		Stock:             i.Stock,
		LowStockThreshold: i.LowStockThreshold,
		SellPrice:         i.SellPrice,
		LowStock:          i.Stock <= i.LowStockThreshold,
	}
}

func adjustmentToResponse(a *model.StockAdjustment) dto.StockAdjustmentResponse {
	return dto.StockAdjustmentResponse{
		ID:             a.ID.String(),
		ItemID:         a.ItemID.String(),
		Date:           formatDate(a.Date),
		QuantityChange: a.QuantityChange,
		Reason:         a.Reason,
		AdjustedBy:     a.AdjustedBy,
	}
}
