package service

import (
	"context"

	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/model"
	"github.com/manpreet243/nishat-main/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClosingEnqueuer hands finished closings to the background pipeline (report
// build + owner email). Nil-able: a missing queue only skips the email.
type ClosingEnqueuer interface {
	EnqueueClosingReport(ctx context.Context, closingID uuid.UUID) error
}

type ClosingService interface {
	CloseMonth(ctx context.Context, req dto.CloseMonthRequest) (*dto.ClosingResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ClosingResponse, error)
	List(ctx context.Context) (*dto.ClosingListResponse, error)
}

type closingService struct {
	repo           repository.ClosingRepository
	saleRepo       repository.SaleRepository
	expenseRepo    repository.ExpenseRepository
	customerRepo   repository.CustomerRepository
	bottleLogRepo  repository.BottleLogRepository
	adjustmentRepo repository.StockAdjustmentRepository
	enqueuer       ClosingEnqueuer
	log            zerolog.Logger
}

func NewClosingService(
	repo repository.ClosingRepository,
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
	customerRepo repository.CustomerRepository,
	bottleLogRepo repository.BottleLogRepository,
	adjustmentRepo repository.StockAdjustmentRepository,
	enqueuer ClosingEnqueuer,
	log zerolog.Logger,
) ClosingService {
	return &closingService{
		repo:           repo,
		saleRepo:       saleRepo,
		expenseRepo:    expenseRepo,
		customerRepo:   customerRepo,
		bottleLogRepo:  bottleLogRepo,
		adjustmentRepo: adjustmentRepo,
		enqueuer:       enqueuer,
		log:            log,
	}
}

// saleRevenue is the revenue attributed to one sale: the priced quantity when
// a unit price was snapshotted, otherwise the cash actually received.
func saleRevenue(s *model.SaleRecord) decimal.Decimal {
	if s.UnitPrice != nil {
		return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.BottlesSold)))
	}
	return s.AmountReceived
}

// CloseMonth archives the inclusive [start, end] range. Unpaid shortfalls are
// rolled onto each customer's live balance before the in-range rows are cut
// over to the snapshot; the whole cut-over runs in one transaction and is
// irreversible. A range with no activity still produces a (empty) closing.
func (s *closingService) CloseMonth(ctx context.Context, req dto.CloseMonthRequest) (*dto.ClosingResponse, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, ErrInvalidPeriod
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, ErrInvalidPeriod
	}
	if end.Before(start) {
		return nil, ErrInvalidPeriod
	}

	sales, err := s.saleRepo.ListInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	// Per-customer shortfall: expected vs received over the in-range sales.
	// The shortfall stacks on top of whatever balance already exists, so
	// several unpaid months accumulate rather than overwrite.
	type ledger struct{ expected, received decimal.Decimal }
	byCustomer := make(map[uuid.UUID]*ledger)
	totalRevenue := decimal.Zero
	for i := range sales {
		sale := &sales[i]
		revenue := saleRevenue(sale)
		totalRevenue = totalRevenue.Add(revenue)
		if sale.IsCounterSale || sale.CustomerID == nil {
			continue
		}
		l, ok := byCustomer[*sale.CustomerID]
		if !ok {
			l = &ledger{expected: decimal.Zero, received: decimal.Zero}
			byCustomer[*sale.CustomerID] = l
		}
		l.expected = l.expected.Add(revenue)
		l.received = l.received.Add(sale.AmountReceived)
	}

	totalExpenses := decimal.Zero
	for i := range expenses {
		totalExpenses = totalExpenses.Add(expenses[i].Amount)
	}

	closing := model.MonthlyClosing{
		PeriodStart:   start,
		PeriodEnd:     end,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		Sales:         make([]model.ArchivedSale, 0, len(sales)),
		Expenses:      make([]model.ArchivedExpense, 0, len(expenses)),
	}
	for i := range sales {
		sale := &sales[i]
		closing.Sales = append(closing.Sales, model.ArchivedSale{
			SourceID:        sale.ID,
			CustomerID:      sale.CustomerID,
			CustomerName:    sale.CustomerName,
			BottlesSold:     sale.BottlesSold,
			BottlesReturned: sale.BottlesReturned,
			AmountReceived:  sale.AmountReceived,
			UnitPrice:       sale.UnitPrice,
			BottleCategory:  sale.BottleCategory,
			Date:            sale.Date,
			IsCounterSale:   sale.IsCounterSale,
			SalesmanID:      sale.SalesmanID,
		})
	}
	for i := range expenses {
		e := &expenses[i]
		closing.Expenses = append(closing.Expenses, model.ArchivedExpense{
			SourceID:    e.ID,
			Date:        e.Date,
			Name:        e.Name,
			Category:    e.Category,
			Description: e.Description,
			Amount:      e.Amount,
		})
	}

	txErr := runTx(ctx, s.saleRepo.DB(), func(tx *gorm.DB) error {
		for customerID, l := range byCustomer {
			if !l.expected.GreaterThan(l.received) {
				continue
			}
			customer, findErr := s.customerRepo.FindByID(ctx, customerID)
			if findErr != nil {
				// Customer deleted after their sales were recorded; the
				// shortfall has no ledger to land on.
				continue
			}
			customer.TotalBalance = customer.TotalBalance.Add(l.expected.Sub(l.received))
			if err := s.customerRepo.UpdateTx(tx, customer); err != nil {
				return err
			}
		}

		if err := s.repo.CreateTx(tx, &closing); err != nil {
			return err
		}

		if err := s.saleRepo.DeleteInRangeTx(tx, start, end); err != nil {
			return err
		}
		if err := s.expenseRepo.DeleteInRangeTx(tx, start, end); err != nil {
			return err
		}
		if err := s.bottleLogRepo.DeleteInRangeTx(tx, start, end); err != nil {
			return err
		}
		return s.adjustmentRepo.DeleteInRangeTx(tx, start, end)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.Info().
		Str("closing_id", closing.ID.String()).
		Str("period_start", req.StartDate).
		Str("period_end", req.EndDate).
		Int("sales", len(closing.Sales)).
		Int("expenses", len(closing.Expenses)).
		Msg("month closed")

	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueueClosingReport(ctx, closing.ID); err != nil {
			// The snapshot is committed; a lost report job is only an email.
			s.log.Error().Err(err).Str("closing_id", closing.ID.String()).
				Msg("enqueue closing report failed")
		}
	}

	return closingToResponse(&closing, true), nil
}

func (s *closingService) Get(ctx context.Context, id uuid.UUID) (*dto.ClosingResponse, error) {
	closing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrClosingNotFound
	}
	return closingToResponse(closing, true), nil
}

func (s *closingService) List(ctx context.Context) (*dto.ClosingListResponse, error) {
	closings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.ClosingListResponse{Data: make([]dto.ClosingResponse, 0, len(closings))}
	for i := range closings {
		resp.Data = append(resp.Data, *closingToResponse(&closings[i], false))
	}
	return resp, nil
}

func closingToResponse(c *model.MonthlyClosing, includeRows bool) *dto.ClosingResponse {
	resp := &dto.ClosingResponse{
		ID:            c.ID.String(),
		PeriodStart:   formatDate(c.PeriodStart),
		PeriodEnd:     formatDate(c.PeriodEnd),
		CreatedAt:     c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		TotalRevenue:  c.TotalRevenue,
		TotalExpenses: c.TotalExpenses,
		SaleCount:     len(c.Sales),
		ExpenseCount:  len(c.Expenses),
	}
	if !includeRows {
		return resp
	}
	for i := range c.Sales {
		a := &c.Sales[i]
		sr := dto.SaleResponse{
			ID:              a.SourceID.String(),
			CustomerName:    a.CustomerName,
			BottlesSold:     a.BottlesSold,
			BottlesReturned: a.BottlesReturned,
			AmountReceived:  a.AmountReceived,
			UnitPrice:       a.UnitPrice,
			BottleCategory:  a.BottleCategory,
			Date:            formatDate(a.Date),
			IsCounterSale:   a.IsCounterSale,
		}
		if a.CustomerID != nil {
			id := a.CustomerID.String()
			sr.CustomerID = &id
		}
		if a.SalesmanID != nil {
			id := a.SalesmanID.String()
			sr.SalesmanID = &id
		}
		resp.Sales = append(resp.Sales, sr)
	}
	for i := range c.Expenses {
		e := &c.Expenses[i]
		resp.Expenses = append(resp.Expenses, dto.ExpenseResponse{
			ID:          e.SourceID.String(),
			Date:        formatDate(e.Date),
			Name:        e.Name,
			Category:    e.Category,
			Description: e.Description,
			Amount:      e.Amount,
		})
	}
	return resp
}
