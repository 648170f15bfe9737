package repository

import (
	"context"
	"time"

	"github.com/manpreet243/nishat-main/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockAdjustmentRepository interface {
	CreateTx(tx *gorm.DB, a *model.StockAdjustment) error
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]model.StockAdjustment, error)
	ListInRange(ctx context.Context, start, end time.Time) ([]model.StockAdjustment, error)
	DeleteByItemTx(tx *gorm.DB, itemID uuid.UUID) error
	DeleteInRangeTx(tx *gorm.DB, start, end time.Time) error
}

type stockAdjustmentRepo struct{ db *gorm.DB }

func NewStockAdjustmentRepository(db *gorm.DB) StockAdjustmentRepository {
	return &stockAdjustmentRepo{db: db}
}

func (r *stockAdjustmentRepo) CreateTx(tx *gorm.DB, a *model.StockAdjustment) error {
	return tx.Create(a).Error
}

func (r *stockAdjustmentRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]model.StockAdjustment, error) {
	var adjustments []model.StockAdjustment
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC").
		Find(&adjustments).Error
	return adjustments, err
}

func (r *stockAdjustmentRepo) ListInRange(ctx context.Context, start, end time.Time) ([]model.StockAdjustment, error) {
	var adjustments []model.StockAdjustment
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Find(&adjustments).Error
	return adjustments, err
}

func (r *stockAdjustmentRepo) DeleteByItemTx(tx *gorm.DB, itemID uuid.UUID) error {
	return tx.Delete(&model.StockAdjustment{}, "item_id = ?", itemID).Error
}

func (r *stockAdjustmentRepo) DeleteInRangeTx(tx *gorm.DB, start, end time.Time) error {
	return tx.Delete(&model.StockAdjustment{}, "date >= ? AND date <= ?", start, end).Error
}
