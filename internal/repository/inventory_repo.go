package repository

import (
	"context"
	"time"

	"github.com/manpreet243/nishat-main/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// warehouseRowID is the primary key of the single warehouse pool row.
const warehouseRowID = 1

type InventoryRepository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	CreateTx(tx *gorm.DB, item *model.InventoryItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	List(ctx context.Context) ([]model.InventoryItem, error)
	Update(ctx context.Context, item *model.InventoryItem) error
	UpdateTx(tx *gorm.DB, item *model.InventoryItem) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	// MatchCategory returns items whose category equals the requested value or
	// whose name contains it (case-sensitive substring).
	MatchCategory(ctx context.Context, category string) ([]model.InventoryItem, error)
	// MatchName returns items whose name contains the token — the fallback
	// lookup used when no category match exists.
	MatchName(ctx context.Context, token string) ([]model.InventoryItem, error)
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error
	CountLowStock(ctx context.Context) (int64, error)

	// Warehouse pool — a single scalar row.
	Warehouse(ctx context.Context) (*model.Warehouse, error)
	SetWarehouseTx(tx *gorm.DB, stock int) error

	DB() *gorm.DB
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) Create(ctx context.Context, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryRepo) CreateTx(tx *gorm.DB, item *model.InventoryItem) error {
	return tx.Create(item).Error
}

func (r *inventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	return &item, err
}

func (r *inventoryRepo) List(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepo) Update(ctx context.Context, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *inventoryRepo) UpdateTx(tx *gorm.DB, item *model.InventoryItem) error {
	return tx.Save(item).Error
}

func (r *inventoryRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.InventoryItem{}, "id = ?", id).Error
}

func (r *inventoryRepo) MatchCategory(ctx context.Context, category string) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	// LIKE (not ILIKE): the substring match is case-sensitive.
	err := r.db.WithContext(ctx).
		Where("category = ? OR name LIKE ?", category, "%"+category+"%").
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *inventoryRepo) MatchName(ctx context.Context, token string) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+token+"%").
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *inventoryRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.InventoryItem{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *inventoryRepo) CountLowStock(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.InventoryItem{}).
		Where("stock <= low_stock_threshold").
		Count(&n).Error
	return n, err
}

func (r *inventoryRepo) Warehouse(ctx context.Context) (*model.Warehouse, error) {
	var w model.Warehouse
	err := r.db.WithContext(ctx).First(&w, "id = ?", warehouseRowID).Error
	return &w, err
}

func (r *inventoryRepo) SetWarehouseTx(tx *gorm.DB, stock int) error {
	return tx.Model(&model.Warehouse{}).Where("id = ?", warehouseRowID).
		Updates(map[string]interface{}{"stock": stock, "updated_at": time.Now()}).Error
}

func (r *inventoryRepo) DB() *gorm.DB { return r.db }
