package service

import (
	"context"
	"fmt"

	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/model"
	"github.com/manpreet243/nishat-main/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// defaultBottleToken is the implicit category: when a sale names no bottle
// category, or the named category matches nothing, inventory lines whose name
// contains this token are debited instead.
const defaultBottleToken = "19-Liter"

// adjustedBySystem marks audit rows written by the reconciler itself rather
// than by an operator.
const adjustedBySystem = "System"

type SaleService interface {
	AddSale(ctx context.Context, req dto.AddSaleRequest) (*dto.SaleResponse, error)
	AddCounterSale(ctx context.Context, req dto.CounterSaleRequest) (*dto.SaleResponse, error)
	UpdateSale(ctx context.Context, id uuid.UUID, req dto.UpdateSaleRequest) (*dto.SaleResponse, error)
	DeleteSale(ctx context.Context, id uuid.UUID) error
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	RecordPayment(ctx context.Context, customerID uuid.UUID, req dto.RecordPaymentRequest) error
}

type saleService struct {
	repo           repository.SaleRepository
	customerRepo   repository.CustomerRepository
	inventoryRepo  repository.InventoryRepository
	adjustmentRepo repository.StockAdjustmentRepository
	bottleLogRepo  repository.BottleLogRepository
}

func NewSaleService(
	repo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	inventoryRepo repository.InventoryRepository,
	adjustmentRepo repository.StockAdjustmentRepository,
	bottleLogRepo repository.BottleLogRepository,
) SaleService {
	return &saleService{
		repo:           repo,
		customerRepo:   customerRepo,
		inventoryRepo:  inventoryRepo,
		adjustmentRepo: adjustmentRepo,
		bottleLogRepo:  bottleLogRepo,
	}
}

// ── Inventory matcher ─────────────────────────────────────────────────────────

// matchItems resolves the inventory lines a sale debits or credits. Category
// match first (exact category or case-sensitive name substring), then the
// default-token fallback. An empty result is returned as-is; the caller
// decides whether that is an error (add) or a skip (delete reversal).
func (s *saleService) matchItems(ctx context.Context, category *string) ([]model.InventoryItem, error) {
	var matched []model.InventoryItem
	var err error

	if category != nil && *category != "" {
		matched, err = s.inventoryRepo.MatchCategory(ctx, *category)
		if err != nil {
			return nil, err
		}
	}
	if len(matched) == 0 {
		matched, err = s.inventoryRepo.MatchName(ctx, defaultBottleToken)
		if err != nil {
			return nil, err
		}
	}
	return matched, nil
}

// ── AddSale ───────────────────────────────────────────────────────────────────
// All failure checks run before the first write; the writes then share one
// transaction. Note the documented quirk: every matched item is decremented
// by the full sale quantity, not a split across them — same-category lines
// are treated as one stock pool reported redundantly.

func (s *saleService) AddSale(ctx context.Context, req dto.AddSaleRequest) (*dto.SaleResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer_id: %w", err)
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	var matched []model.InventoryItem
	if req.BottlesSold > 0 {
		matched, err = s.matchItems(ctx, req.BottleCategory)
		if err != nil {
			return nil, err
		}
		if len(matched) == 0 {
			return nil, ErrNoInventoryMatch
		}
		// Every matched line must cover the full quantity.
		for _, item := range matched {
			if item.Stock < req.BottlesSold {
				return nil, &InsufficientStockError{Item: item.Name, Available: item.Stock}
			}
		}
	}

	// Unit price: snapshot of the selected item's sell price, else zero and
	// the received amount stands alone as the cash figure.
	unitPrice := decimal.Zero
	if req.BottleItemID != nil {
		itemID, parseErr := uuid.Parse(*req.BottleItemID)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid bottle_item_id: %w", parseErr)
		}
		if item, findErr := s.inventoryRepo.FindByID(ctx, itemID); findErr == nil && item.SellPrice != nil {
			unitPrice = *item.SellPrice
		}
	}

	var salesmanID *uuid.UUID
	if req.SalesmanID != nil {
		sid, parseErr := uuid.Parse(*req.SalesmanID)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid salesman_id: %w", parseErr)
		}
		salesmanID = &sid
	}

	saleDate := today()
	sale := model.SaleRecord{
		CustomerID:      &customer.ID,
		CustomerName:    customer.Name,
		BottlesSold:     req.BottlesSold,
		BottlesReturned: req.BottlesReturned,
		AmountReceived:  req.AmountReceived,
		BottleCategory:  req.BottleCategory,
		Date:            saleDate,
		SalesmanID:      salesmanID,
		PaymentMethod:   req.PaymentMethod,
	}
	if unitPrice.IsPositive() {
		up := unitPrice
		sale.UnitPrice = &up
	}
	if req.BottleItemID != nil {
		itemID, _ := uuid.Parse(*req.BottleItemID)
		sale.BottleItemID = &itemID
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if req.BottlesSold > 0 {
			for _, item := range matched {
				if err := s.inventoryRepo.UpdateStockTx(tx, item.ID, -req.BottlesSold); err != nil {
					return fmt.Errorf("decrementing stock of %s: %w", item.Name, err)
				}
				adj := &model.StockAdjustment{
					ItemID:         item.ID,
					Date:           saleDate,
					QuantityChange: -req.BottlesSold,
					Reason:         fmt.Sprintf("Sale to %s", customer.Name),
					AdjustedBy:     adjustedBySystem,
				}
				if err := s.adjustmentRepo.CreateTx(tx, adj); err != nil {
					return err
				}
			}
		}

		// Money counters move only when the caller asked to update the
		// balance; the deposit counter moves regardless.
		if req.UpdateBalance {
			cost := unitPrice.Mul(decimal.NewFromInt(int64(req.BottlesSold)))
			customer.BottlesPurchased += req.BottlesSold
			if unitPrice.IsPositive() {
				customer.PaidBottles += int(req.AmountReceived.Div(unitPrice).Floor().IntPart())
			}
			customer.TotalBalance = customer.TotalBalance.Add(cost).Sub(req.AmountReceived)
		}
		customer.EmptyBottlesOnHand += req.BottlesSold - req.BottlesReturned
		if err := s.customerRepo.UpdateTx(tx, customer); err != nil {
			return err
		}

		if err := s.repo.CreateTx(tx, &sale); err != nil {
			return err
		}

		if req.BottlesSold > 0 || req.BottlesReturned > 0 {
			log := &model.BottleLog{
				CustomerID:      customer.ID,
				Date:            saleDate,
				BottlesTaken:    req.BottlesSold,
				BottlesReturned: req.BottlesReturned,
			}
			if err := s.bottleLogRepo.CreateTx(tx, log); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return saleToResponse(&sale), nil
}

// ── AddCounterSale ────────────────────────────────────────────────────────────
// Walk-in cash sale: no customer, no inventory movement, no bottle log.

func (s *saleService) AddCounterSale(ctx context.Context, req dto.CounterSaleRequest) (*dto.SaleResponse, error) {
	desc := req.Description
	sale := model.SaleRecord{
		CustomerName:   "Counter Sale",
		AmountReceived: req.Amount,
		Date:           today(),
		IsCounterSale:  true,
	}
	if desc != "" {
		sale.Description = &desc
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CreateTx(tx, &sale)
	})
	if txErr != nil {
		return nil, txErr
	}
	return saleToResponse(&sale), nil
}

// ── UpdateSale ────────────────────────────────────────────────────────────────
// Quantities are not part of the request type, so an edit can never desync
// inventory. A changed received amount moves the customer balance by the
// negative delta: receiving more now reduces what is owed.

func (s *saleService) UpdateSale(ctx context.Context, id uuid.UUID, req dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrSaleNotFound
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	amountChanged := !req.AmountReceived.Equal(sale.AmountReceived)
	var customer *model.Customer
	if amountChanged && !sale.IsCounterSale && sale.CustomerID != nil {
		customer, err = s.customerRepo.FindByID(ctx, *sale.CustomerID)
		if err != nil {
			return nil, ErrCustomerNotFound
		}
	}

	var salesmanID *uuid.UUID
	if req.SalesmanID != nil {
		sid, parseErr := uuid.Parse(*req.SalesmanID)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid salesman_id: %w", parseErr)
		}
		salesmanID = &sid
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if customer != nil {
			delta := req.AmountReceived.Sub(sale.AmountReceived)
			customer.TotalBalance = customer.TotalBalance.Sub(delta)
			if err := s.customerRepo.UpdateTx(tx, customer); err != nil {
				return err
			}
		}

		sale.AmountReceived = req.AmountReceived
		sale.Date = date
		sale.BottleCategory = req.BottleCategory
		sale.SalesmanID = salesmanID
		sale.Description = req.Description
		sale.PaymentMethod = req.PaymentMethod
		return s.repo.UpdateTx(tx, sale)
	})
	if txErr != nil {
		return nil, txErr
	}
	return saleToResponse(sale), nil
}

// ── DeleteSale ────────────────────────────────────────────────────────────────
// Full reversal: stock back, reversal audit rows, customer counters unwound.
// PaidBottles stays put (no payment ledger to reverse against) and the bottle
// log row written by the add survives — both are documented limitations, not
// oversights.

func (s *saleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrSaleNotFound
	}

	var matched []model.InventoryItem
	if sale.BottlesSold > 0 {
		// Same resolution as the add path, with the stored category. When
		// nothing matches anymore (items renamed or deleted since), the
		// inventory restore is skipped rather than failing the delete.
		matched, err = s.matchItems(ctx, sale.BottleCategory)
		if err != nil {
			return err
		}
	}

	var customer *model.Customer
	if !sale.IsCounterSale && sale.CustomerID != nil {
		customer, err = s.customerRepo.FindByID(ctx, *sale.CustomerID)
		if err != nil {
			// Customer already gone (cascade delete) — nothing to unwind.
			customer = nil
		}
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		reversalDate := today()
		for _, item := range matched {
			if err := s.inventoryRepo.UpdateStockTx(tx, item.ID, sale.BottlesSold); err != nil {
				return err
			}
			adj := &model.StockAdjustment{
				ItemID:         item.ID,
				Date:           reversalDate,
				QuantityChange: sale.BottlesSold,
				Reason:         fmt.Sprintf("Sale Reversal (ID: %s)", sale.ID),
				AdjustedBy:     adjustedBySystem,
			}
			if err := s.adjustmentRepo.CreateTx(tx, adj); err != nil {
				return err
			}
		}

		if customer != nil {
			unit := decimal.Zero
			if sale.UnitPrice != nil {
				unit = *sale.UnitPrice
			}
			cost := unit.Mul(decimal.NewFromInt(int64(sale.BottlesSold)))
			customer.TotalBalance = customer.TotalBalance.Sub(cost.Sub(sale.AmountReceived))
			customer.BottlesPurchased -= sale.BottlesSold
			customer.EmptyBottlesOnHand += sale.BottlesReturned - sale.BottlesSold
			if err := s.customerRepo.UpdateTx(tx, customer); err != nil {
				return err
			}
		}

		return s.repo.DeleteTx(tx, sale.ID)
	})
}

// ── RecordPayment ─────────────────────────────────────────────────────────────
// A standalone payment is stored as a zero-bottle sale; the balance is
// clamped at zero (overpayments do not create ledger credit here — advances
// are tracked manually).

func (s *saleService) RecordPayment(ctx context.Context, customerID uuid.UUID, req dto.RecordPaymentRequest) error {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return ErrCustomerNotFound
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}

	sale := model.SaleRecord{
		CustomerID:     &customer.ID,
		CustomerName:   customer.Name,
		AmountReceived: req.Amount,
		Date:           date,
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &sale); err != nil {
			return err
		}
		balance := customer.TotalBalance.Sub(req.Amount)
		if balance.IsNegative() {
			balance = decimal.Zero
		}
		customer.TotalBalance = balance
		return s.customerRepo.UpdateTx(tx, customer)
	})
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func saleToResponse(s *model.SaleRecord) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:              s.ID.String(),
		CustomerName:    s.CustomerName,
		BottlesSold:     s.BottlesSold,
		BottlesReturned: s.BottlesReturned,
		AmountReceived:  s.AmountReceived,
		UnitPrice:       s.UnitPrice,
		BottleCategory:  s.BottleCategory,
		Date:            formatDate(s.Date),
		IsCounterSale:   s.IsCounterSale,
		Description:     s.Description,
		PaymentMethod:   s.PaymentMethod,
	}
	if s.CustomerID != nil {
		id := s.CustomerID.String()
		resp.CustomerID = &id
	}
	if s.BottleItemID != nil {
		id := s.BottleItemID.String()
		resp.BottleItemID = &id
	}
	if s.SalesmanID != nil {
		id := s.SalesmanID.String()
		resp.SalesmanID = &id
	}
	return resp
}
