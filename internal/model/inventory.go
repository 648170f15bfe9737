package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is a stock-keeping unit. Stock never goes negative: every
// sale checks sufficiency before any mutation is applied.
type InventoryItem struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string    `gorm:"index;not null"`
	Category          string    `gorm:"index;not null"`
	Stock             int       `gorm:"not null;default:0"`
	LowStockThreshold int       `gorm:"not null;default:5"`
	SellPrice         *decimal.Decimal `gorm:"type:decimal(10,2)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Warehouse is the undifferentiated scalar stock pool. Exactly one row exists;
// named inventory items draw their initial stock from it and return remaining
// stock to it on deletion. The pool is clamped at zero when drawn from.
type Warehouse struct {
	ID        int       `gorm:"primaryKey"`
	Stock     int       `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// StockAdjustment is an append-only audit row tied to an inventory item.
// Sales and reversals write rows with auto-generated reasons; manual
// adjustments carry the operator's reason. Deleting an item purges its rows.
type StockAdjustment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Date           time.Time `gorm:"type:date;not null;index"`
	QuantityChange int       `gorm:"not null"` // positive = in, negative = out
	Reason         string    `gorm:"not null"`
	AdjustedBy     string    `gorm:"not null"`
	CreatedAt      time.Time

	Item *InventoryItem `gorm:"foreignKey:ItemID"`
}
