package dto

import "github.com/shopspring/decimal"

type CreateItemRequest struct {
	Name              string           `json:"name" validate:"required"`
	Category          string           `json:"category" validate:"required"`
	Stock             int              `json:"stock" validate:"min=0"`
	LowStockThreshold int              `json:"low_stock_threshold" validate:"min=0"`
	SellPrice         *decimal.Decimal `json:"sell_price"`
}

type UpdateItemRequest struct {
	Name              string           `json:"name" validate:"required"`
	Category          string           `json:"category" validate:"required"`
	LowStockThreshold int              `json:"low_stock_threshold" validate:"min=0"`
	SellPrice         *decimal.Decimal `json:"sell_price"`
}

// AdjustStockRequest sets the item's stock to an absolute value. The quantity
// change and reason are recorded as the audit row; the difference against the
// old stock is transferred from/to the warehouse pool.
type AdjustStockRequest struct {
	NewStock       int    `json:"new_stock" validate:"min=0"`
	QuantityChange int    `json:"quantity_change"`
	Reason         string `json:"reason" validate:"required"`
}

type ItemResponse struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Category          string           `json:"category"`
	Stock             int              `json:"stock"`
	LowStockThreshold int              `json:"low_stock_threshold"`
	SellPrice         *decimal.Decimal `json:"sell_price,omitempty"`
	LowStock          bool             `json:"low_stock"`
}

type ItemDetailResponse struct {
	Item    ItemResponse              `json:"item"`
	History []StockAdjustmentResponse `json:"history"`
}

type StockAdjustmentResponse struct {
	ID             string `json:"id"`
	ItemID         string `json:"item_id"`
	Date           string `json:"date"`
	QuantityChange int    `json:"quantity_change"`
	Reason         string `json:"reason"`
	AdjustedBy     string `json:"adjusted_by"`
}

type WarehouseResponse struct {
	Stock int `json:"stock"`
}
