package repository

import (
	"context"

	"github.com/manpreet243/nishat-main/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClosingRepository persists monthly closings. Snapshots are immutable:
// there is no update or delete.
type ClosingRepository interface {
	CreateTx(tx *gorm.DB, c *model.MonthlyClosing) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MonthlyClosing, error)
	List(ctx context.Context) ([]model.MonthlyClosing, error)
}

type closingRepo struct{ db *gorm.DB }

func NewClosingRepository(db *gorm.DB) ClosingRepository { return &closingRepo{db: db} }

func (r *closingRepo) CreateTx(tx *gorm.DB, c *model.MonthlyClosing) error {
	return tx.Create(c).Error
}

func (r *closingRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MonthlyClosing, error) {
	var c model.MonthlyClosing
	err := r.db.WithContext(ctx).
		Preload("Sales").
		Preload("Expenses").
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *closingRepo) List(ctx context.Context) ([]model.MonthlyClosing, error) {
	var closings []model.MonthlyClosing
	err := r.db.WithContext(ctx).Order("period_start DESC").Find(&closings).Error
	return closings, err
}
