package dto

import "github.com/shopspring/decimal"

type CreateCustomerRequest struct {
	Name             string   `json:"name" validate:"required"`
	HouseNumber      string   `json:"house_number"`
	Floor            int      `json:"floor" validate:"min=0"`
	Mobile           string   `json:"mobile"`
	DeliveryArea     *string  `json:"delivery_area"`
	DailyRequirement *int     `json:"daily_requirement"`
	SalesmanID       *string  `json:"salesman_id" validate:"omitempty,uuid"`
}

type UpdateCustomerRequest struct {
	Name             string  `json:"name" validate:"required"`
	HouseNumber      string  `json:"house_number"`
	Floor            int     `json:"floor" validate:"min=0"`
	Mobile           string  `json:"mobile"`
	DeliveryArea     *string `json:"delivery_area"`
	DailyRequirement *int    `json:"daily_requirement"`
	SalesmanID       *string `json:"salesman_id" validate:"omitempty,uuid"`
}

// CustomerFilter mirrors the dashboard filters: free-text search over
// name/mobile/house/area, balance status, and due-today.
type CustomerFilter struct {
	Search  string `form:"search"`
	Status  string `form:"status"` // all | pending | paid
	DueOnly bool   `form:"due_only"`
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
}

type UpdateScheduleRequest struct {
	DeliveryDays []string `json:"delivery_days" validate:"dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
}

// AdjustBottlesRequest sets the empty-bottle counter to an absolute value
// (manual correction, no audit trail — matches the deposit trust model).
type AdjustBottlesRequest struct {
	EmptyBottlesOnHand int `json:"empty_bottles_on_hand"`
}

type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Date   string          `json:"date" validate:"required,datetime=2006-01-02"`
}

type CustomerResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	HouseNumber        string          `json:"house_number"`
	Floor              int             `json:"floor"`
	Mobile             string          `json:"mobile"`
	DeliveryArea       *string         `json:"delivery_area,omitempty"`
	DailyRequirement   *int            `json:"daily_requirement,omitempty"`
	DeliveryDays       []string        `json:"delivery_days"`
	DeliveryDueToday   bool            `json:"delivery_due_today"`
	BottlesPurchased   int             `json:"bottles_purchased"`
	PaidBottles        int             `json:"paid_bottles"`
	TotalBalance       decimal.Decimal `json:"total_balance"`
	EmptyBottlesOnHand int             `json:"empty_bottles_on_hand"`
	SalesmanID         *string         `json:"salesman_id,omitempty"`
}

type CustomerListResponse struct {
	Data  []CustomerResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// CustomerDetailResponse adds the customer's sale history and bottle ledger.
type CustomerDetailResponse struct {
	Customer   CustomerResponse    `json:"customer"`
	Sales      []SaleResponse      `json:"sales"`
	BottleLogs []BottleLogResponse `json:"bottle_logs"`
}

type BottleLogResponse struct {
	ID              string `json:"id"`
	CustomerID      string `json:"customer_id"`
	Date            string `json:"date"`
	BottlesTaken    int    `json:"bottles_taken"`
	BottlesReturned int    `json:"bottles_returned"`
}
