package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a business outgoing. Name is the primary label; Category is kept
// for older rows that were entered before names existed.
type Expense struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date           time.Time       `gorm:"type:date;not null;index"`
	Name           *string
	Category       *string
	Description    string          `gorm:"not null"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentAccount *string         `gorm:"type:varchar(10)"` // "cash" | "bank"
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
