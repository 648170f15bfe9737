package tests

import (
	"context"
	"testing"
	"time"

	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/model"
	"github.com/manpreet243/nishat-main/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEnqueuer records closing IDs handed to the report pipeline.
type stubEnqueuer struct {
	enqueued []uuid.UUID
}

func (e *stubEnqueuer) EnqueueClosingReport(_ context.Context, closingID uuid.UUID) error {
	e.enqueued = append(e.enqueued, closingID)
	return nil
}

var _ service.ClosingEnqueuer = (*stubEnqueuer)(nil)

type closingFixture struct {
	svc            service.ClosingService
	closingRepo    *stubClosingRepo
	saleRepo       *stubSaleRepo
	expenseRepo    *stubExpenseRepo
	customerRepo   *stubCustomerRepo
	bottleLogRepo  *stubBottleLogRepo
	adjustmentRepo *stubAdjustmentRepo
	enqueuer       *stubEnqueuer
}

func buildClosingSvc() *closingFixture {
	f := &closingFixture{
		closingRepo:    newStubClosingRepo(),
		saleRepo:       newStubSaleRepo(),
		expenseRepo:    newStubExpenseRepo(),
		customerRepo:   newStubCustomerRepo(),
		bottleLogRepo:  &stubBottleLogRepo{},
		adjustmentRepo: &stubAdjustmentRepo{},
		enqueuer:       &stubEnqueuer{},
	}
	f.svc = service.NewClosingService(
		f.closingRepo, f.saleRepo, f.expenseRepo, f.customerRepo,
		f.bottleLogRepo, f.adjustmentRepo, f.enqueuer, zerolog.Nop(),
	)
	return f
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func priced(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func addSaleRow(repo *stubSaleRepo, customerID *uuid.UUID, name string, bottles int, unitPrice *decimal.Decimal, received decimal.Decimal, date time.Time) *model.SaleRecord {
	s := &model.SaleRecord{
		CustomerID:     customerID,
		CustomerName:   name,
		BottlesSold:    bottles,
		UnitPrice:      unitPrice,
		AmountReceived: received,
		Date:           date,
	}
	_ = repo.CreateTx(nil, s)
	return s
}

func addExpenseRow(repo *stubExpenseRepo, desc string, amount decimal.Decimal, date time.Time) *model.Expense {
	e := &model.Expense{Description: desc, Amount: amount, Date: date}
	_ = repo.Create(context.Background(), e)
	return e
}

func TestCloseMonth_ShortfallRollsOntoBalance(t *testing.T) {
	f := buildClosingSvc()
	customer := seedCustomer(f.customerRepo, "Ibrahim Pasha", decimal.NewFromInt(50))

	// Expected 2×120 = 240, received 100: shortfall 140 stacks on the 50.
	addSaleRow(f.saleRepo, &customer.ID, customer.Name, 2, priced(120), decimal.NewFromInt(100), day(2026, 7, 10))

	resp, err := f.svc.CloseMonth(context.Background(), dto.CloseMonthRequest{
		StartDate: "2026-07-01",
		EndDate:   "2026-07-31",
	})
	require.NoError(t, err)

	assert.Equal(t, "190", customer.TotalBalance.String())
	assert.Equal(t, "240", resp.TotalRevenue.String())
	assert.Equal(t, 1, resp.SaleCount)
}

func TestCloseMonth_ArchivesAndPurgesRange(t *testing.T) {
	f := buildClosingSvc()
	customer := seedCustomer(f.customerRepo, "Fatima Jinnah", decimal.Zero)

	inRangeSale := addSaleRow(f.saleRepo, &customer.ID, customer.Name, 1, priced(120), decimal.NewFromInt(120), day(2026, 7, 5))
	outOfRangeSale := addSaleRow(f.saleRepo, &customer.ID, customer.Name, 1, priced(120), decimal.NewFromInt(120), day(2026, 8, 2))
	inRangeExpense := addExpenseRow(f.expenseRepo, "Fuel", decimal.NewFromInt(3000), day(2026, 7, 20))
	addExpenseRow(f.expenseRepo, "Rent", decimal.NewFromInt(25000), day(2026, 8, 1))

	_ = f.bottleLogRepo.CreateTx(nil, &model.BottleLog{CustomerID: customer.ID, Date: day(2026, 7, 5), BottlesTaken: 1})
	_ = f.bottleLogRepo.CreateTx(nil, &model.BottleLog{CustomerID: customer.ID, Date: day(2026, 8, 2), BottlesTaken: 1})
	_ = f.adjustmentRepo.CreateTx(nil, &model.StockAdjustment{ItemID: uuid.New(), Date: day(2026, 7, 5), QuantityChange: -1, Reason: "Sale to Fatima Jinnah", AdjustedBy: "System"})

	resp, err := f.svc.CloseMonth(context.Background(), dto.CloseMonthRequest{
		StartDate: "2026-07-01",
		EndDate:   "2026-07-31",
	})
	require.NoError(t, err)

	// Snapshot holds copies keyed back to the originals.
	closingID := uuid.MustParse(resp.ID)
	closing, err := f.closingRepo.FindByID(context.Background(), closingID)
	require.NoError(t, err)
	require.Len(t, closing.Sales, 1)
	assert.Equal(t, inRangeSale.ID, closing.Sales[0].SourceID)
	require.Len(t, closing.Expenses, 1)
	assert.Equal(t, inRangeExpense.ID, closing.Expenses[0].SourceID)
	assert.Equal(t, "3000", closing.TotalExpenses.String())

	// Live collections keep only the out-of-range rows.
	assert.Len(t, f.saleRepo.sales, 1)
	_, stillThere := f.saleRepo.sales[outOfRangeSale.ID]
	assert.True(t, stillThere)
	assert.Len(t, f.expenseRepo.expenses, 1)
	assert.Len(t, f.bottleLogRepo.rows, 1)
	assert.Empty(t, f.adjustmentRepo.rows)

	// Report job queued for the new closing.
	require.Len(t, f.enqueuer.enqueued, 1)
	assert.Equal(t, closingID, f.enqueuer.enqueued[0])
}

func TestCloseMonth_EmptyRange(t *testing.T) {
	f := buildClosingSvc()
	customer := seedCustomer(f.customerRepo, "Zain Abdullah", decimal.NewFromInt(75))
	addSaleRow(f.saleRepo, &customer.ID, customer.Name, 1, priced(120), decimal.NewFromInt(120), day(2026, 8, 10))

	resp, err := f.svc.CloseMonth(context.Background(), dto.CloseMonthRequest{
		StartDate: "2026-06-01",
		EndDate:   "2026-06-30",
	})
	require.NoError(t, err)

	// An empty closing is still recorded; nothing else moves.
	assert.True(t, resp.TotalRevenue.IsZero())
	assert.True(t, resp.TotalExpenses.IsZero())
	assert.Equal(t, 0, resp.SaleCount)
	assert.Len(t, f.saleRepo.sales, 1)
	assert.Equal(t, "75", customer.TotalBalance.String())
	assert.Len(t, f.closingRepo.closings, 1)
}

func TestCloseMonth_InvalidPeriod(t *testing.T) {
	f := buildClosingSvc()

	_, err := f.svc.CloseMonth(context.Background(), dto.CloseMonthRequest{
		StartDate: "not-a-date", EndDate: "2026-07-31",
	})
	assert.ErrorIs(t, err, service.ErrInvalidPeriod)

	_, err = f.svc.CloseMonth(context.Background(), dto.CloseMonthRequest{
		StartDate: "2026-07-31", EndDate: "2026-07-01",
	})
	assert.ErrorIs(t, err, service.ErrInvalidPeriod)
}

func TestCloseMonth_CounterSalesCountTowardRevenueOnly(t *testing.T) {
	f := buildClosingSvc()

	counter := &model.SaleRecord{
		CustomerName:   "Counter Sale",
		AmountReceived: decimal.NewFromInt(500),
		Date:           day(2026, 7, 15),
		IsCounterSale:  true,
	}
	_ = f.saleRepo.CreateTx(nil, counter)

	resp, err := f.svc.CloseMonth(context.Background(), dto.CloseMonthRequest{
		StartDate: "2026-07-01", EndDate: "2026-07-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "500", resp.TotalRevenue.String())
}

func TestCloseMonth_FullyPaidCustomerUntouched(t *testing.T) {
	f := buildClosingSvc()
	customer := seedCustomer(f.customerRepo, "Ibrahim Pasha", decimal.NewFromInt(30))

	// Received covers expected exactly: no shortfall to roll.
	addSaleRow(f.saleRepo, &customer.ID, customer.Name, 2, priced(120), decimal.NewFromInt(240), day(2026, 7, 8))

	_, err := f.svc.CloseMonth(context.Background(), dto.CloseMonthRequest{
		StartDate: "2026-07-01", EndDate: "2026-07-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "30", customer.TotalBalance.String())
}

func TestCloseMonth_DeletedCustomerShortfallDropped(t *testing.T) {
	f := buildClosingSvc()
	goneID := uuid.New()
	addSaleRow(f.saleRepo, &goneID, "Departed Customer", 2, priced(120), decimal.NewFromInt(0), day(2026, 7, 12))

	resp, err := f.svc.CloseMonth(context.Background(), dto.CloseMonthRequest{
		StartDate: "2026-07-01", EndDate: "2026-07-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "240", resp.TotalRevenue.String())
	assert.Empty(t, f.saleRepo.sales)
}
