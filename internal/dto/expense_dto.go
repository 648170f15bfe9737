package dto

import "github.com/shopspring/decimal"

type ExpenseRequest struct {
	Date           string          `json:"date" validate:"required,datetime=2006-01-02"`
	Name           *string         `json:"name"`
	Category       *string         `json:"category"`
	Description    string          `json:"description" validate:"required"`
	Amount         decimal.Decimal `json:"amount" validate:"required,gt=0"`
	PaymentAccount *string         `json:"payment_account" validate:"omitempty,oneof=cash bank"`
}

type ExpenseResponse struct {
	ID             string          `json:"id"`
	Date           string          `json:"date"`
	Name           *string         `json:"name,omitempty"`
	Category       *string         `json:"category,omitempty"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentAccount *string         `json:"payment_account,omitempty"`
}
