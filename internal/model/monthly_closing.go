package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyClosing is an immutable snapshot produced by the month-close
// archiver. Once created it is never mutated; the archived rows are removed
// from the live collections and there is no re-open operation.
type MonthlyClosing struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PeriodStart   time.Time       `gorm:"type:date;not null"`
	PeriodEnd     time.Time       `gorm:"type:date;not null"`
	TotalRevenue  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalExpenses decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt     time.Time

	Sales    []ArchivedSale    `gorm:"foreignKey:ClosingID"`
	Expenses []ArchivedExpense `gorm:"foreignKey:ClosingID"`
}

// ArchivedSale is a copy of a SaleRecord frozen inside a closing. SourceID
// keeps the original sale id so audit reasons ("Sale Reversal (ID: …)") stay
// resolvable after archival.
type ArchivedSale struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClosingID uuid.UUID `gorm:"type:uuid;not null;index"`
	SourceID  uuid.UUID `gorm:"type:uuid;not null"`

	CustomerID     *uuid.UUID       `gorm:"type:uuid;index"`
	CustomerName   string           `gorm:"not null"`
	BottlesSold    int              `gorm:"not null"`
	BottlesReturned int             `gorm:"not null"`
	AmountReceived decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	UnitPrice      *decimal.Decimal `gorm:"type:decimal(10,2)"`
	BottleCategory *string
	Date           time.Time `gorm:"type:date;not null"`
	IsCounterSale  bool      `gorm:"not null"`
	SalesmanID     *uuid.UUID `gorm:"type:uuid"`
}

// ArchivedExpense is a copy of an Expense frozen inside a closing.
type ArchivedExpense struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClosingID uuid.UUID `gorm:"type:uuid;not null;index"`
	SourceID  uuid.UUID `gorm:"type:uuid;not null"`

	Date        time.Time       `gorm:"type:date;not null"`
	Name        *string
	Category    *string
	Description string          `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
