package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a back-office login. Role: "admin" | "salesman". Salesman users are
// linked to their Salesman row and get read-only delivery endpoints.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null"`
	SalesmanID   *uuid.UUID `gorm:"type:uuid"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
