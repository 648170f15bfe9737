package repository

import (
	"context"
	"time"

	"github.com/manpreet243/nishat-main/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BottleLogRepository interface {
	CreateTx(tx *gorm.DB, l *model.BottleLog) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.BottleLog, error)
	DeleteByCustomerTx(tx *gorm.DB, customerID uuid.UUID) error
	DeleteInRangeTx(tx *gorm.DB, start, end time.Time) error
}

type bottleLogRepo struct{ db *gorm.DB }

func NewBottleLogRepository(db *gorm.DB) BottleLogRepository { return &bottleLogRepo{db: db} }

func (r *bottleLogRepo) CreateTx(tx *gorm.DB, l *model.BottleLog) error {
	return tx.Create(l).Error
}

func (r *bottleLogRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.BottleLog, error) {
	var logs []model.BottleLog
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("date DESC, created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *bottleLogRepo) DeleteByCustomerTx(tx *gorm.DB, customerID uuid.UUID) error {
	return tx.Delete(&model.BottleLog{}, "customer_id = ?", customerID).Error
}

func (r *bottleLogRepo) DeleteInRangeTx(tx *gorm.DB, start, end time.Time) error {
	return tx.Delete(&model.BottleLog{}, "date >= ? AND date <= ?", start, end).Error
}
