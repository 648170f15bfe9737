package dto

import "github.com/shopspring/decimal"

// AddSaleRequest records a delivery to a registered customer. UpdateBalance
// false records the sale without touching the money counters (the
// empty-bottle delta still applies — deposit tracking is unconditional).
type AddSaleRequest struct {
	CustomerID      string          `json:"customer_id" validate:"required,uuid"`
	BottlesSold     int             `json:"bottles_sold" validate:"min=0"`
	BottlesReturned int             `json:"bottles_returned" validate:"min=0"`
	AmountReceived  decimal.Decimal `json:"amount_received" validate:"min=0"`
	UpdateBalance   bool            `json:"update_balance"`
	SalesmanID      *string         `json:"salesman_id" validate:"omitempty,uuid"`
	BottleCategory  *string         `json:"bottle_category"`
	BottleItemID    *string         `json:"bottle_item_id" validate:"omitempty,uuid"`
	PaymentMethod   *string         `json:"payment_method" validate:"omitempty,oneof=cash bank"`
}

// CounterSaleRequest is a walk-in cash sale with no customer reference.
type CounterSaleRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Description string          `json:"description"`
}

// UpdateSaleRequest deliberately omits the quantity fields: bottles sold and
// returned are immutable once a sale exists, so a caller cannot desync
// inventory through an edit.
type UpdateSaleRequest struct {
	AmountReceived decimal.Decimal `json:"amount_received" validate:"min=0"`
	Date           string          `json:"date" validate:"required,datetime=2006-01-02"`
	BottleCategory *string         `json:"bottle_category"`
	SalesmanID     *string         `json:"salesman_id" validate:"omitempty,uuid"`
	Description    *string         `json:"description"`
	PaymentMethod  *string         `json:"payment_method" validate:"omitempty,oneof=cash bank"`
}

type SaleFilter struct {
	Date        string `form:"date"` // YYYY-MM-DD
	CounterOnly bool   `form:"counter_only"`
	SalesmanID  string `form:"salesman_id"`
	CustomerID  string `form:"customer_id"`
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
}

type SaleResponse struct {
	ID              string           `json:"id"`
	CustomerID      *string          `json:"customer_id,omitempty"`
	CustomerName    string           `json:"customer_name"`
	BottlesSold     int              `json:"bottles_sold"`
	BottlesReturned int              `json:"bottles_returned"`
	AmountReceived  decimal.Decimal  `json:"amount_received"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	BottleCategory  *string          `json:"bottle_category,omitempty"`
	BottleItemID    *string          `json:"bottle_item_id,omitempty"`
	Date            string           `json:"date"`
	IsCounterSale   bool             `json:"is_counter_sale"`
	SalesmanID      *string          `json:"salesman_id,omitempty"`
	Description     *string          `json:"description,omitempty"`
	PaymentMethod   *string          `json:"payment_method,omitempty"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
