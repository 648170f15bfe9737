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

func buildCustomerSvc() (service.CustomerService, *stubCustomerRepo, *stubSaleRepo, *stubBottleLogRepo) {
	customerRepo := newStubCustomerRepo()
	saleRepo := newStubSaleRepo()
	bottleLogRepo := &stubBottleLogRepo{}
	svc := service.NewCustomerService(customerRepo, saleRepo, bottleLogRepo, zerolog.Nop())
	return svc, customerRepo, saleRepo, bottleLogRepo
}

func TestDeleteCustomer_CascadesSalesAndBottleLogs(t *testing.T) {
	svc, customerRepo, saleRepo, bottleLogRepo := buildCustomerSvc()
	victim := seedCustomer(customerRepo, "Ibrahim Pasha", decimal.NewFromInt(500))
	keeper := seedCustomer(customerRepo, "Fatima Jinnah", decimal.Zero)

	addSaleRow(saleRepo, &victim.ID, victim.Name, 2, priced(120), decimal.NewFromInt(240), day(2026, 8, 1))
	addSaleRow(saleRepo, &victim.ID, victim.Name, 1, priced(120), decimal.NewFromInt(0), day(2026, 8, 10))
	addSaleRow(saleRepo, &keeper.ID, keeper.Name, 1, priced(120), decimal.NewFromInt(120), day(2026, 8, 5))

	_ = bottleLogRepo.CreateTx(nil, &model.BottleLog{CustomerID: victim.ID, Date: day(2026, 8, 1), BottlesTaken: 2})
	_ = bottleLogRepo.CreateTx(nil, &model.BottleLog{CustomerID: keeper.ID, Date: day(2026, 8, 5), BottlesTaken: 1})

	require.NoError(t, svc.Delete(context.Background(), victim.ID))

	_, gone := customerRepo.customers[victim.ID]
	assert.False(t, gone)
	assert.Len(t, saleRepo.sales, 1)
	assert.Len(t, bottleLogRepo.rows, 1)
	assert.Equal(t, keeper.ID, bottleLogRepo.rows[0].CustomerID)
}

func TestDeleteCustomer_NotFound(t *testing.T) {
	svc, customerRepo, _, _ := buildCustomerSvc()
	seedCustomer(customerRepo, "Fatima Jinnah", decimal.Zero)

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)
}

func TestUpdateSchedule_RecomputesDueToday(t *testing.T) {
	svc, customerRepo, _, _ := buildCustomerSvc()
	customer := seedCustomer(customerRepo, "Zain Abdullah", decimal.Zero)

	todayName := time.Now().Weekday().String()
	resp, err := svc.UpdateSchedule(context.Background(), customer.ID, dto.UpdateScheduleRequest{
		DeliveryDays: []string{todayName},
	})
	require.NoError(t, err)
	assert.True(t, resp.DeliveryDueToday)

	// Clearing the schedule clears the flag immediately.
	resp, err = svc.UpdateSchedule(context.Background(), customer.ID, dto.UpdateScheduleRequest{
		DeliveryDays: []string{},
	})
	require.NoError(t, err)
	assert.False(t, resp.DeliveryDueToday)
}

func TestRefreshDeliveryDue(t *testing.T) {
	svc, customerRepo, _, _ := buildCustomerSvc()
	todayName := time.Now().Weekday().String()

	due := seedCustomer(customerRepo, "Ibrahim Pasha", decimal.Zero)
	due.DeliveryDays = []string{todayName}

	stale := seedCustomer(customerRepo, "Fatima Jinnah", decimal.Zero)
	stale.DeliveryDueToday = true // schedule no longer includes today

	require.NoError(t, svc.RefreshDeliveryDue(context.Background()))

	assert.True(t, customerRepo.customers[due.ID].DeliveryDueToday)
	assert.False(t, customerRepo.customers[stale.ID].DeliveryDueToday)
}

func TestAdjustEmptyBottles_SetsAbsoluteValue(t *testing.T) {
	svc, customerRepo, _, _ := buildCustomerSvc()
	customer := seedCustomer(customerRepo, "Ibrahim Pasha", decimal.Zero)
	customer.EmptyBottlesOnHand = 7

	resp, err := svc.AdjustEmptyBottles(context.Background(), customer.ID, dto.AdjustBottlesRequest{
		EmptyBottlesOnHand: -2,
	})
	require.NoError(t, err)
	// Negative is allowed: returns can exceed deliveries under the trust model.
	assert.Equal(t, -2, resp.EmptyBottlesOnHand)
}

func TestGetCustomer_IncludesHistory(t *testing.T) {
	svc, customerRepo, saleRepo, bottleLogRepo := buildCustomerSvc()
	customer := seedCustomer(customerRepo, "Ibrahim Pasha", decimal.NewFromInt(40))

	addSaleRow(saleRepo, &customer.ID, customer.Name, 2, priced(120), decimal.NewFromInt(200), day(2026, 8, 20))
	_ = bottleLogRepo.CreateTx(nil, &model.BottleLog{CustomerID: customer.ID, Date: day(2026, 8, 20), BottlesTaken: 2, BottlesReturned: 1})

	resp, err := svc.Get(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "40", resp.Customer.TotalBalance.String())
	require.Len(t, resp.Sales, 1)
	assert.Equal(t, 2, resp.Sales[0].BottlesSold)
	require.Len(t, resp.BottleLogs, 1)
	assert.Equal(t, 1, resp.BottleLogs[0].BottlesReturned)
}
