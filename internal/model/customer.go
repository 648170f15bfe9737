package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer carries identity plus the running totals maintained by the ledger
// reconciler. None of the counters are validated against each other: the data
// entry trust model allows EmptyBottlesOnHand to go negative when returns
// exceed deliveries, and TotalBalance goes negative when a customer holds
// credit.
type Customer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	HouseNumber string
	Floor       int
	Mobile      string `gorm:"index"`

	DeliveryArea     *string
	DailyRequirement *int
	// DeliveryDays holds weekday names ("Monday", …) the customer receives
	// bottles on. DeliveryDueToday is recomputed from it once a day.
	DeliveryDays     []string `gorm:"serializer:json"`
	DeliveryDueToday bool     `gorm:"not null;default:false"`

	// Cumulative bottles ever sold to this customer.
	BottlesPurchased int `gorm:"not null;default:0"`
	// Cumulative bottles whose cost was fully received. Never decremented —
	// accurate reversal would need a payment ledger that does not exist.
	PaidBottles int `gorm:"not null;default:0"`
	// Signed PKR amount owed; negative means the customer holds credit.
	TotalBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// Deposit bottles currently with the customer, net of returns.
	EmptyBottlesOnHand int `gorm:"not null;default:0"`

	SalesmanID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Salesman *Salesman `gorm:"foreignKey:SalesmanID"`
}
