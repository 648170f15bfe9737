package tests

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSaleSvc() (service.SaleService, *stubSaleRepo, *stubCustomerRepo, *stubInventoryRepo, *stubAdjustmentRepo, *stubBottleLogRepo) {
	saleRepo := newStubSaleRepo()
	customerRepo := newStubCustomerRepo()
	inventoryRepo := newStubInventoryRepo(1000)
	adjustmentRepo := &stubAdjustmentRepo{}
	bottleLogRepo := &stubBottleLogRepo{}
	svc := service.NewSaleService(saleRepo, customerRepo, inventoryRepo, adjustmentRepo, bottleLogRepo)
	return svc, saleRepo, customerRepo, inventoryRepo, adjustmentRepo, bottleLogRepo
}

func TestAddSale_BalanceAndCounters(t *testing.T) {
	svc, _, customerRepo, inventoryRepo, adjustmentRepo, bottleLogRepo := buildSaleSvc()
	customer := seedCustomer(customerRepo, "Ibrahim Pasha", decimal.Zero)
	item := seedItem(inventoryRepo, "19-Liter Bottle", "19-Liter", 100, decimal.NewFromInt(120))
	itemID := item.ID.String()

	// 2 bottles at 120 against 200 received: balance += 240 − 200 = 40
	_, err := svc.AddSale(context.Background(), dto.AddSaleRequest{
		CustomerID:      customer.ID.String(),
		BottlesSold:     2,
		BottlesReturned: 1,
		AmountReceived:  decimal.NewFromInt(200),
		UpdateBalance:   true,
		BottleItemID:    &itemID,
	})
	require.NoError(t, err)

	assert.Equal(t, "40", customer.TotalBalance.String())
	assert.Equal(t, 2, customer.BottlesPurchased)
	// floor(200 / 120) = 1 bottle fully paid
	assert.Equal(t, 1, customer.PaidBottles)
	// deposit: 2 taken − 1 returned
	assert.Equal(t, 1, customer.EmptyBottlesOnHand)

	assert.Equal(t, 98, inventoryRepo.items[item.ID].Stock)
	require.Len(t, adjustmentRepo.rows, 1)
	assert.Equal(t, -2, adjustmentRepo.rows[0].QuantityChange)
	assert.Equal(t, "Sale to Ibrahim Pasha", adjustmentRepo.rows[0].Reason)
	assert.Equal(t, "System", adjustmentRepo.rows[0].AdjustedBy)

	require.Len(t, bottleLogRepo.rows, 1)
	assert.Equal(t, 2, bottleLogRepo.rows[0].BottlesTaken)
	assert.Equal(t, 1, bottleLogRepo.rows[0].BottlesReturned)
}

func TestAddSale_WithoutBalanceUpdate(t *testing.T) {
	svc, _, customerRepo, inventoryRepo, _, _ := buildSaleSvc()
	customer := seedCustomer(customerRepo, "Fatima Jinnah", decimal.NewFromInt(500))
	item := seedItem(inventoryRepo, "19-Liter Bottle", "19-Liter", 50, decimal.NewFromInt(120))

	_, err := svc.AddSale(context.Background(), dto.AddSaleRequest{
		CustomerID:      customer.ID.String(),
		BottlesSold:     3,
		BottlesReturned: 2,
		AmountReceived:  decimal.NewFromInt(360),
		UpdateBalance:   false,
	})
	require.NoError(t, err)

	// Money counters frozen, deposit counter still moves, stock still drops.
	assert.Equal(t, "500", customer.TotalBalance.String())
	assert.Equal(t, 0, customer.BottlesPurchased)
	assert.Equal(t, 0, customer.PaidBottles)
	assert.Equal(t, 1, customer.EmptyBottlesOnHand)
	assert.Equal(t, 47, inventoryRepo.items[item.ID].Stock)
}

func TestAddSale_StockExactlyCoversQuantity(t *testing.T) {
	svc, _, customerRepo, inventoryRepo, _, _ := buildSaleSvc()
	customer := seedCustomer(customerRepo, "Zain Abdullah", decimal.Zero)
	item := seedItem(inventoryRepo, "19-Liter Bottle", "19-Liter", 4, decimal.NewFromInt(120))

	_, err := svc.AddSale(context.Background(), dto.AddSaleRequest{
		CustomerID:  customer.ID.String(),
		BottlesSold: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, inventoryRepo.items[item.ID].Stock)
}

func TestAddSale_InsufficientStock(t *testing.T) {
	svc, saleRepo, customerRepo, inventoryRepo, _, _ := buildSaleSvc()
	customer := seedCustomer(customerRepo, "Zain Abdullah", decimal.Zero)
	item := seedItem(inventoryRepo, "19-Liter Bottle", "19-Liter", 4, decimal.NewFromInt(120))

	_, err := svc.AddSale(context.Background(), dto.AddSaleRequest{
		CustomerID:  customer.ID.String(),
		BottlesSold: 5,
	})
	var stockErr *service.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "19-Liter Bottle", stockErr.Item)
	assert.Equal(t, 4, stockErr.Available)

	// Nothing written: no sale, no stock movement, no counter change.
	assert.Empty(t, saleRepo.sales)
	assert.Equal(t, 4, inventoryRepo.items[item.ID].Stock)
	assert.Equal(t, 0, customer.EmptyBottlesOnHand)
}

func TestAddSale_NoInventoryMatch(t *testing.T) {
	svc, _, customerRepo, inventoryRepo, _, _ := buildSaleSvc()
	customer := seedCustomer(customerRepo, "Ibrahim Pasha", decimal.Zero)
	seedItem(inventoryRepo, "Bottle Caps", "Accessories", 500, decimal.NewFromInt(2))

	cat := "Mineral"
	_, err := svc.AddSale(context.Background(), dto.AddSaleRequest{
		CustomerID:     customer.ID.String(),
		BottlesSold:    1,
		BottleCategory: &cat,
	})
	assert.ErrorIs(t, err, service.ErrNoInventoryMatch)
}

func TestAddSale_FallsBackToDefaultLine(t *testing.T) {
	// A category nothing carries still sells against the default 19-Liter line.
	svc, _, customerRepo, inventoryRepo, adjustmentRepo, _ := buildSaleSvc()
	customer := seedCustomer(customerRepo, "Ibrahim Pasha", decimal.Zero)
	fallback := seedItem(inventoryRepo, "19-Liter Bottle", "19-Liter", 40, decimal.NewFromInt(120))

	cat := "Mineral"
	_, err := svc.AddSale(context.Background(), dto.AddSaleRequest{
		CustomerID:     customer.ID.String(),
		BottlesSold:    3,
		BottleCategory: &cat,
	})
	require.NoError(t, err)

	assert.Equal(t, 37, inventoryRepo.items[fallback.ID].Stock)
	assert.Len(t, adjustmentRepo.rows, 1)
}

func TestAddSale_AllMatchedItemsDecremented(t *testing.T) {
	// Two lines share the category; each is debited by the full quantity.
	svc, _, customerRepo, inventoryRepo, adjustmentRepo, _ := buildSaleSvc()
	customer := seedCustomer(customerRepo, "Ibrahim Pasha", decimal.Zero)
	a := seedItem(inventoryRepo, "19-Liter Bottle", "19-Liter", 30, decimal.NewFromInt(120))
	b := seedItem(inventoryRepo, "19-Liter Bottle (Chilled)", "19-Liter", 20, decimal.NewFromInt(130))

	cat := "19-Liter"
	_, err := svc.AddSale(context.Background(), dto.AddSaleRequest{
		CustomerID:     customer.ID.String(),
		BottlesSold:    5,
		BottleCategory: &cat,
	})
	require.NoError(t, err)

	assert.Equal(t, 25, inventoryRepo.items[a.ID].Stock)
	assert.Equal(t, 15, inventoryRepo.items[b.ID].Stock)
	assert.Len(t, adjustmentRepo.rows, 2)
}

func TestDeleteSale_ReversesEverythingButPaidBottles(t *testing.T) {
	svc, saleRepo, customerRepo, inventoryRepo, adjustmentRepo, bottleLogRepo := buildSaleSvc()
	customer := seedCustomer(customerRepo, "Ibrahim Pasha", decimal.Zero)
	item := seedItem(inventoryRepo, "19-Liter Bottle", "19-Liter", 100, decimal.NewFromInt(120))
	itemID := item.ID.String()

	resp, err := svc.AddSale(context.Background(), dto.AddSaleRequest{
		CustomerID:      customer.ID.String(),
		BottlesSold:     2,
		BottlesReturned: 1,
		AmountReceived:  decimal.NewFromInt(200),
		UpdateBalance:   true,
		BottleItemID:    &itemID,
	})
	require.NoError(t, err)
	paidBefore := customer.PaidBottles
	require.Equal(t, 1, paidBefore)

	saleID := uuid.MustParse(resp.ID)
	require.NoError(t, svc.DeleteSale(context.Background(), saleID))

	// Counters unwound to their pre-sale values…
	assert.True(t, customer.TotalBalance.IsZero(), "balance = %s", customer.TotalBalance)
	assert.Equal(t, 0, customer.BottlesPurchased)
	assert.Equal(t, 0, customer.EmptyBottlesOnHand)
	assert.Equal(t, 100, inventoryRepo.items[item.ID].Stock)
	assert.Empty(t, saleRepo.sales)

	// …except PaidBottles, and the bottle log row survives.
	assert.Equal(t, paidBefore, customer.PaidBottles)
	assert.Len(t, bottleLogRepo.rows, 1)

	// Reversal audit row alongside the original debit.
	require.Len(t, adjustmentRepo.rows, 2)
	reversal := adjustmentRepo.rows[1]
	assert.Equal(t, 2, reversal.QuantityChange)
	assert.Equal(t, fmt.Sprintf("Sale Reversal (ID: %s)", saleID), reversal.Reason)
	assert.Equal(t, "System", reversal.AdjustedBy)
}

func TestDeleteSale_SkipsRestoreWhenNoMatchLeft(t *testing.T) {
	svc, saleRepo, customerRepo, inventoryRepo, adjustmentRepo, _ := buildSaleSvc()
	customer := seedCustomer(customerRepo, "Ibrahim Pasha", decimal.Zero)
	item := seedItem(inventoryRepo, "19-Liter Bottle", "19-Liter", 10, decimal.NewFromInt(120))

	resp, err := svc.AddSale(context.Background(), dto.AddSaleRequest{
		CustomerID:  customer.ID.String(),
		BottlesSold: 2,
	})
	require.NoError(t, err)

	// Item removed since the sale; the delete skips the restore silently.
	delete(inventoryRepo.items, item.ID)
	adjustmentRepo.rows = nil

	require.NoError(t, svc.DeleteSale(context.Background(), uuid.MustParse(resp.ID)))
	assert.Empty(t, saleRepo.sales)
	assert.Empty(t, adjustmentRepo.rows)
}

func TestDeleteSale_CustomerAlreadyDeleted(t *testing.T) {
	svc, saleRepo, customerRepo, inventoryRepo, _, _ := buildSaleSvc()
	customer := seedCustomer(customerRepo, "Ibrahim Pasha", decimal.Zero)
	item := seedItem(inventoryRepo, "19-Liter Bottle", "19-Liter", 10, decimal.NewFromInt(120))

	resp, err := svc.AddSale(context.Background(), dto.AddSaleRequest{
		CustomerID:  customer.ID.String(),
		BottlesSold: 2,
	})
	require.NoError(t, err)

	delete(customerRepo.customers, customer.ID)

	// Still succeeds: inventory reverts, the ledger unwind is skipped.
	require.NoError(t, svc.DeleteSale(context.Background(), uuid.MustParse(resp.ID)))
	assert.Empty(t, saleRepo.sales)
	assert.Equal(t, 10, inventoryRepo.items[item.ID].Stock)
}

func TestUpdateSale_MovesBalanceByDelta(t *testing.T) {
	svc, _, customerRepo, inventoryRepo, _, _ := buildSaleSvc()
	customer := seedCustomer(customerRepo, "Ibrahim Pasha", decimal.NewFromInt(100))
	seedItem(inventoryRepo, "19-Liter Bottle", "19-Liter", 10, decimal.NewFromInt(120))

	resp, err := svc.AddSale(context.Background(), dto.AddSaleRequest{
		CustomerID:     customer.ID.String(),
		BottlesSold:    1,
		AmountReceived: decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	require.Equal(t, "100", customer.TotalBalance.String())

	// Received 50 more than first recorded: balance drops by 50.
	_, err = svc.UpdateSale(context.Background(), uuid.MustParse(resp.ID), dto.UpdateSaleRequest{
		AmountReceived: decimal.NewFromInt(250),
		Date:           time.Now().UTC().Format("2006-01-02"),
	})
	require.NoError(t, err)
	assert.Equal(t, "50", customer.TotalBalance.String())
}

func TestAddCounterSale(t *testing.T) {
	svc, saleRepo, _, _, _, bottleLogRepo := buildSaleSvc()

	resp, err := svc.AddCounterSale(context.Background(), dto.CounterSaleRequest{
		Amount:      decimal.NewFromInt(350),
		Description: "Walk-in refill",
	})
	require.NoError(t, err)
	assert.Equal(t, "Counter Sale", resp.CustomerName)
	assert.True(t, resp.IsCounterSale)
	assert.Nil(t, resp.CustomerID)

	assert.Len(t, saleRepo.sales, 1)
	assert.Empty(t, bottleLogRepo.rows)
}

func TestRecordPayment_ClampsBalanceAtZero(t *testing.T) {
	svc, saleRepo, customerRepo, _, _, _ := buildSaleSvc()
	customer := seedCustomer(customerRepo, "Fatima Jinnah", decimal.NewFromInt(150))

	err := svc.RecordPayment(context.Background(), customer.ID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(200),
		Date:   "2026-08-01",
	})
	require.NoError(t, err)

	// Overpayment does not create credit.
	assert.True(t, customer.TotalBalance.IsZero())

	// Stored as a zero-bottle sale.
	require.Len(t, saleRepo.sales, 1)
	for _, s := range saleRepo.sales {
		assert.Equal(t, 0, s.BottlesSold)
		assert.Equal(t, "200", s.AmountReceived.String())
	}
}
