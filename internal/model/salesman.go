package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Salesman is a delivery worker. Customers reference salesmen by id only —
// deleting a salesman leaves customer rows untouched.
type Salesman struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"not null"`
	Mobile       string    `gorm:"index;not null"`
	HireDate     time.Time `gorm:"type:date"`
	DeliveryArea *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SalesmanPayment is one wage/commission payout. Append-only.
type SalesmanPayment struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SalesmanID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Date       time.Time       `gorm:"type:date;not null;index"`
	CreatedAt  time.Time

	Salesman *Salesman `gorm:"foreignKey:SalesmanID"`
}
