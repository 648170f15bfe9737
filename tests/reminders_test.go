package tests

import (
	"context"
	"strings"
	"testing"

	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminder_MessageArithmetic(t *testing.T) {
	customerRepo := newStubCustomerRepo()
	svc := service.NewReminderService(customerRepo)

	customer := seedCustomer(customerRepo, "Ibrahim Pasha", decimal.NewFromInt(12500))
	customer.BottlesPurchased = 30
	customer.PaidBottles = 10
	customer.EmptyBottlesOnHand = 4

	resp, err := svc.Reminder(context.Background(), customer.ID, dto.ReminderOptions{})
	require.NoError(t, err)

	assert.Contains(t, resp.Message, "Hello Ibrahim Pasha, this is a friendly reminder from Nishat Beverages.")
	assert.Contains(t, resp.Message, "- Remaining Payment: PKR 12,500")
	// Default rate 50: paid 10×50, unpaid (30−10)×50
	assert.Contains(t, resp.Message, "- Total Paid Bottles: 10*50=500")
	assert.Contains(t, resp.Message, "- Total Unpaid Bottles: 20*50=1,000")
	assert.Contains(t, resp.Message, "- Empty Bottles to Return: 4")
	assert.True(t, strings.HasSuffix(resp.Message, "Thank you!"))
}

func TestReminder_OptionsOverride(t *testing.T) {
	customerRepo := newStubCustomerRepo()
	svc := service.NewReminderService(customerRepo)

	customer := seedCustomer(customerRepo, "Fatima Jinnah", decimal.NewFromInt(800))
	customer.BottlesPurchased = 8
	customer.PaidBottles = 3

	mult := decimal.NewFromInt(60)
	prev := decimal.NewFromInt(1000)
	sale := decimal.NewFromInt(240)
	resp, err := svc.Reminder(context.Background(), customer.ID, dto.ReminderOptions{
		Date:            "2026-08-28",
		Multiplier:      &mult,
		PreviousBalance: &prev,
		DailySale:       &sale,
	})
	require.NoError(t, err)

	assert.Contains(t, resp.Message, "Date: 2026-08-28\n")
	assert.Contains(t, resp.Message, "- Everyday Sale (2026-08-28): PKR 240")
	assert.Contains(t, resp.Message, "- Total Paid Bottles: 3*60=180")
	// The loose spacing on this line is load-bearing: customers have been
	// receiving it this way for years.
	assert.Contains(t, resp.Message, "-previous balance : 1,000 \n")
}

func TestReminder_UnpaidClampedAtZero(t *testing.T) {
	customerRepo := newStubCustomerRepo()
	svc := service.NewReminderService(customerRepo)

	// More paid than purchased (manual corrections): unpaid shows 0, not negative.
	customer := seedCustomer(customerRepo, "Zain Abdullah", decimal.Zero)
	customer.BottlesPurchased = 5
	customer.PaidBottles = 9

	resp, err := svc.Reminder(context.Background(), customer.ID, dto.ReminderOptions{})
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "- Total Unpaid Bottles: 0*50=0")
}

func TestReminder_WaLinkUsesInternationalDigits(t *testing.T) {
	customerRepo := newStubCustomerRepo()
	svc := service.NewReminderService(customerRepo)

	customer := seedCustomer(customerRepo, "Ibrahim Pasha", decimal.Zero)
	customer.Mobile = "03001234567"

	resp, err := svc.Reminder(context.Background(), customer.ID, dto.ReminderOptions{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.URL, "https://wa.me/923001234567?text="))
	// Spaces are escaped as %20, never "+", so wa.me renders them back.
	assert.NotContains(t, resp.URL, " ")
	assert.NotContains(t, resp.URL, "+")
	assert.Contains(t, resp.URL, "%20")
}

func TestReminder_InvalidPhonePassesThrough(t *testing.T) {
	customerRepo := newStubCustomerRepo()
	svc := service.NewReminderService(customerRepo)

	customer := seedCustomer(customerRepo, "Ibrahim Pasha", decimal.Zero)
	customer.Mobile = "12"

	resp, err := svc.Reminder(context.Background(), customer.ID, dto.ReminderOptions{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.URL, "https://wa.me/12?text="))
}

func TestDueReminders_OnlyFlaggedCustomers(t *testing.T) {
	customerRepo := newStubCustomerRepo()
	svc := service.NewReminderService(customerRepo)

	due := seedCustomer(customerRepo, "Ibrahim Pasha", decimal.NewFromInt(300))
	due.DeliveryDueToday = true
	seedCustomer(customerRepo, "Fatima Jinnah", decimal.Zero) // not due

	resp, err := svc.DueReminders(context.Background(), dto.ReminderOptions{})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Ibrahim Pasha", resp.Data[0].CustomerName)
}
