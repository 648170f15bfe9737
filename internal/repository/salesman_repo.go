package repository

import (
	"context"

	"github.com/manpreet243/nishat-main/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SalesmanRepository interface {
	Create(ctx context.Context, s *model.Salesman) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Salesman, error)
	List(ctx context.Context) ([]model.Salesman, error)
	Update(ctx context.Context, s *model.Salesman) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreatePayment(ctx context.Context, p *model.SalesmanPayment) error
	ListPayments(ctx context.Context, salesmanID uuid.UUID) ([]model.SalesmanPayment, error)
}

type salesmanRepo struct{ db *gorm.DB }

func NewSalesmanRepository(db *gorm.DB) SalesmanRepository { return &salesmanRepo{db: db} }

func (r *salesmanRepo) Create(ctx context.Context, s *model.Salesman) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *salesmanRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Salesman, error) {
	var s model.Salesman
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *salesmanRepo) List(ctx context.Context) ([]model.Salesman, error) {
	var salesmen []model.Salesman
	err := r.db.WithContext(ctx).Order("name ASC").Find(&salesmen).Error
	return salesmen, err
}

func (r *salesmanRepo) Update(ctx context.Context, s *model.Salesman) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *salesmanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Salesman{}, "id = ?", id).Error
}

func (r *salesmanRepo) CreatePayment(ctx context.Context, p *model.SalesmanPayment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *salesmanRepo) ListPayments(ctx context.Context, salesmanID uuid.UUID) ([]model.SalesmanPayment, error) {
	var payments []model.SalesmanPayment
	err := r.db.WithContext(ctx).
		Where("salesman_id = ?", salesmanID).
		Order("date DESC").
		Find(&payments).Error
	return payments, err
}
