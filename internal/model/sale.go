package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRecord is one delivery/payment transaction. CustomerID is nil for
// counter (walk-in) sales. Quantities are immutable after creation; only the
// money/date/category fields may be edited, and deletion reverses the side
// effects the record caused.
type SaleRecord struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID   *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName string     `gorm:"not null"`

	BottlesSold     int             `gorm:"not null;default:0"`
	BottlesReturned int             `gorm:"not null;default:0"`
	AmountReceived  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// UnitPrice snapshots the inventory item's sell price at sale time. Nil
	// means the sale was recorded as a cash figure only.
	UnitPrice      *decimal.Decimal `gorm:"type:decimal(10,2)"`
	BottleCategory *string          `gorm:"index"`
	BottleItemID   *uuid.UUID       `gorm:"type:uuid"`

	Date          time.Time `gorm:"type:date;not null;index"`
	IsCounterSale bool      `gorm:"not null;default:false"`
	SalesmanID    *uuid.UUID `gorm:"type:uuid;index"`
	Description   *string
	PaymentMethod *string `gorm:"type:varchar(10)"` // "cash" | "bank"
	CreatedAt     time.Time

	Customer *Customer `gorm:"foreignKey:CustomerID"`
	Salesman *Salesman `gorm:"foreignKey:SalesmanID"`
}

// BottleLog is the per-customer empty-bottle ledger entry, written alongside
// every sale that moves bottles. Rows survive sale deletion on purpose: the
// deposit trail is not compensated.
type BottleLog struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Date            time.Time `gorm:"type:date;not null;index"`
	BottlesTaken    int       `gorm:"not null;default:0"`
	BottlesReturned int       `gorm:"not null;default:0"`
	CreatedAt       time.Time
}
