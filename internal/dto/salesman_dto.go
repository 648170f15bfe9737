package dto

import "github.com/shopspring/decimal"

type CreateSalesmanRequest struct {
	Name         string  `json:"name" validate:"required"`
	Mobile       string  `json:"mobile" validate:"required"`
	HireDate     string  `json:"hire_date" validate:"required,datetime=2006-01-02"`
	DeliveryArea *string `json:"delivery_area"`
}

type SalesmanResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Mobile       string  `json:"mobile"`
	HireDate     string  `json:"hire_date"`
	DeliveryArea *string `json:"delivery_area,omitempty"`
}

type SalesmanPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Date   string          `json:"date" validate:"required,datetime=2006-01-02"`
}

type SalesmanPaymentResponse struct {
	ID         string          `json:"id"`
	SalesmanID string          `json:"salesman_id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
}

// SalesmanReportResponse sums the salesman's recorded sales against the
// payments made to them.
type SalesmanReportResponse struct {
	Salesman       SalesmanResponse          `json:"salesman"`
	TotalSales     decimal.Decimal           `json:"total_sales"`
	BottlesSold    int                       `json:"bottles_sold"`
	TotalPayments  decimal.Decimal           `json:"total_payments"`
	Payments       []SalesmanPaymentResponse `json:"payments"`
	SaleCount      int                       `json:"sale_count"`
}
