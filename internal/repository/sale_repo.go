package repository

import (
	"context"
	"time"

	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.SaleRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SaleRecord, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.SaleRecord, int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.SaleRecord, error)
	ListBySalesman(ctx context.Context, salesmanID uuid.UUID) ([]model.SaleRecord, error)
	ListInRange(ctx context.Context, start, end time.Time) ([]model.SaleRecord, error)
	Update(ctx context.Context, s *model.SaleRecord) error
	UpdateTx(tx *gorm.DB, s *model.SaleRecord) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	DeleteByCustomerTx(tx *gorm.DB, customerID uuid.UUID) error
	DeleteInRangeTx(tx *gorm.DB, start, end time.Time) error
	SumAmountOnDate(ctx context.Context, day time.Time) (decimal.Decimal, error)

	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.SaleRecord) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SaleRecord, error) {
	var s model.SaleRecord
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.SaleRecord, int64, error) {
	var sales []model.SaleRecord
	var total int64

	q := r.db.WithContext(ctx).Model(&model.SaleRecord{})

	if filter.Date != "" {
		q = q.Where("date = ?", filter.Date)
	}
	if filter.CounterOnly {
		q = q.Where("is_counter_sale = true")
	}
	if filter.SalesmanID != "" {
		q = q.Where("salesman_id = ?", filter.SalesmanID)
	}
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}
	offset := (page - 1) * limit

	err := q.Order("date DESC, created_at DESC").Limit(limit).Offset(offset).Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.SaleRecord, error) {
	var sales []model.SaleRecord
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("date DESC, created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListBySalesman(ctx context.Context, salesmanID uuid.UUID) ([]model.SaleRecord, error) {
	var sales []model.SaleRecord
	err := r.db.WithContext(ctx).
		Where("salesman_id = ?", salesmanID).
		Order("date DESC, created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListInRange(ctx context.Context, start, end time.Time) ([]model.SaleRecord, error) {
	var sales []model.SaleRecord
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Update(ctx context.Context, s *model.SaleRecord) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *saleRepo) UpdateTx(tx *gorm.DB, s *model.SaleRecord) error {
	return tx.Save(s).Error
}

func (r *saleRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.SaleRecord{}, "id = ?", id).Error
}

func (r *saleRepo) DeleteByCustomerTx(tx *gorm.DB, customerID uuid.UUID) error {
	return tx.Delete(&model.SaleRecord{}, "customer_id = ?", customerID).Error
}

func (r *saleRepo) DeleteInRangeTx(tx *gorm.DB, start, end time.Time) error {
	return tx.Delete(&model.SaleRecord{}, "date >= ? AND date <= ?", start, end).Error
}

// SumAmountOnDate totals amount_received for one calendar day (dashboard).
func (r *saleRepo) SumAmountOnDate(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.SaleRecord{}).
		Select("SUM(amount_received)").
		Where("date = ?", day).
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
