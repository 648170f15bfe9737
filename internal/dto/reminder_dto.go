package dto

import "github.com/shopspring/decimal"

// ReminderOptions tune the WhatsApp reminder template.
type ReminderOptions struct {
	Date            string           `form:"date" json:"date"`
	Multiplier      *decimal.Decimal `form:"multiplier" json:"multiplier"`
	PreviousBalance *decimal.Decimal `form:"previous_balance" json:"previous_balance"`
	DailySale       *decimal.Decimal `form:"daily_sale" json:"daily_sale"`
}

type ReminderResponse struct {
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Mobile       string `json:"mobile"`
	Message      string `json:"message"`
	URL          string `json:"url"`
}

type DueReminderListResponse struct {
	Data []ReminderResponse `json:"data"`
}

// DashboardSummary is the cached headline view: live totals over the active
// (un-archived) collections.
type DashboardSummary struct {
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	SalesToday       decimal.Decimal `json:"sales_today"`
	ExpensesToday    decimal.Decimal `json:"expenses_today"`
	CustomersDue     int             `json:"customers_due"`
	LowStockItems    int             `json:"low_stock_items"`
	WarehouseStock   int             `json:"warehouse_stock"`
}
