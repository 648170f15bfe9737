package repository

import (
	"context"

	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomerRepository is the data access contract for customers. Services
// depend on this interface, not on the concrete GORM implementation, so unit
// tests can swap in in-memory stubs.
type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context, filter dto.CustomerFilter) ([]model.Customer, int64, error)
	ListAll(ctx context.Context) ([]model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error

	// Dashboard aggregates.
	SumOutstanding(ctx context.Context) (decimal.Decimal, error)
	CountDueToday(ctx context.Context) (int64, error)

	// Used inside transactions — callers must pass the tx instance.
	UpdateTx(tx *gorm.DB, c *model.Customer) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *customerRepo) List(ctx context.Context, filter dto.CustomerFilter) ([]model.Customer, int64, error) {
	var customers []model.Customer
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Customer{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where(
			"name ILIKE ? OR mobile ILIKE ? OR house_number ILIKE ? OR delivery_area ILIKE ?",
			like, like, like, like,
		)
	}
	// pending = owes money, paid = settled or in credit
	switch filter.Status {
	case "pending":
		q = q.Where("total_balance > 0")
	case "paid":
		q = q.Where("total_balance <= 0")
	}
	if filter.DueOnly {
		q = q.Where("delivery_due_today = true")
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
		limit = 100
	}
	offset := (page - 1) * limit

	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&customers).Error
	return customers, total, err
}

func (r *customerRepo) ListAll(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).Find(&customers).Error
	return customers, err
}

func (r *customerRepo) SumOutstanding(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Customer{}).
		Select("SUM(total_balance)").
		Where("total_balance > 0").
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *customerRepo) CountDueToday(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("delivery_due_today = true").
		Count(&n).Error
	return n, err
}

func (r *customerRepo) Update(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *customerRepo) UpdateTx(tx *gorm.DB, c *model.Customer) error {
	return tx.Save(c).Error
}

func (r *customerRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Customer{}, "id = ?", id).Error
}

func (r *customerRepo) DB() *gorm.DB { return r.db }
