package dto

import "github.com/shopspring/decimal"

// CloseMonthRequest archives the inclusive [start, end] calendar range. The
// operation is irreversible; the UI asks for explicit confirmation first.
type CloseMonthRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type ClosingResponse struct {
	ID            string            `json:"id"`
	PeriodStart   string            `json:"period_start"`
	PeriodEnd     string            `json:"period_end"`
	CreatedAt     string            `json:"created_at"`
	TotalRevenue  decimal.Decimal   `json:"total_revenue"`
	TotalExpenses decimal.Decimal   `json:"total_expenses"`
	SaleCount     int               `json:"sale_count"`
	ExpenseCount  int               `json:"expense_count"`
	Sales         []SaleResponse    `json:"sales,omitempty"`
	Expenses      []ExpenseResponse `json:"expenses,omitempty"`
}

type ClosingListResponse struct {
	Data []ClosingResponse `json:"data"`
}
