package tests

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/model"
	"github.com/manpreet243/nishat-main/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNotFound = errors.New("not found")

func inRange(day, start, end time.Time) bool {
	return !day.Before(start) && !day.After(end)
}

// ── stubCustomerRepo ─────────────────────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) List(_ context.Context, filter dto.CustomerFilter) ([]model.Customer, int64, error) {
	var out []model.Customer
	for _, c := range r.customers {
		if filter.DueOnly && !c.DeliveryDueToday {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCustomerRepo) ListAll(_ context.Context) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCustomerRepo) SumOutstanding(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, c := range r.customers {
		if c.TotalBalance.IsPositive() {
			sum = sum.Add(c.TotalBalance)
		}
	}
	return sum, nil
}

func (r *stubCustomerRepo) CountDueToday(_ context.Context) (int64, error) {
	var n int64
	for _, c := range r.customers {
		if c.DeliveryDueToday {
			n++
		}
	}
	return n, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	if _, ok := r.customers[c.ID]; !ok {
		return errNotFound
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) UpdateTx(_ *gorm.DB, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *stubCustomerRepo) DB() *gorm.DB { return nil }

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// ── stubSaleRepo ─────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales map[uuid.UUID]*model.SaleRecord
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.SaleRecord)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.SaleRecord) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SaleRecord, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.SaleRecord, int64, error) {
	var out []model.SaleRecord
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]model.SaleRecord, error) {
	var out []model.SaleRecord
	for _, s := range r.sales {
		if s.CustomerID != nil && *s.CustomerID == customerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) ListBySalesman(_ context.Context, salesmanID uuid.UUID) ([]model.SaleRecord, error) {
	var out []model.SaleRecord
	for _, s := range r.sales {
		if s.SalesmanID != nil && *s.SalesmanID == salesmanID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) ListInRange(_ context.Context, start, end time.Time) ([]model.SaleRecord, error) {
	var out []model.SaleRecord
	for _, s := range r.sales {
		if inRange(s.Date, start, end) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) Update(_ context.Context, s *model.SaleRecord) error {
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) UpdateTx(_ *gorm.DB, s *model.SaleRecord) error {
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.sales, id)
	return nil
}

func (r *stubSaleRepo) DeleteByCustomerTx(_ *gorm.DB, customerID uuid.UUID) error {
	for id, s := range r.sales {
		if s.CustomerID != nil && *s.CustomerID == customerID {
			delete(r.sales, id)
		}
	}
	return nil
}

func (r *stubSaleRepo) DeleteInRangeTx(_ *gorm.DB, start, end time.Time) error {
	for id, s := range r.sales {
		if inRange(s.Date, start, end) {
			delete(r.sales, id)
		}
	}
	return nil
}

func (r *stubSaleRepo) SumAmountOnDate(_ context.Context, day time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, s := range r.sales {
		if s.Date.Equal(day) {
			sum = sum.Add(s.AmountReceived)
		}
	}
	return sum, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── stubInventoryRepo ────────────────────────────────────────────────────────

type stubInventoryRepo struct {
	items     map[uuid.UUID]*model.InventoryItem
	warehouse model.Warehouse
}

func newStubInventoryRepo(pool int) *stubInventoryRepo {
	return &stubInventoryRepo{
		items:     make(map[uuid.UUID]*model.InventoryItem),
		warehouse: model.Warehouse{ID: 1, Stock: pool},
	}
}

func (r *stubInventoryRepo) Create(_ context.Context, item *model.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return nil
}

func (r *stubInventoryRepo) CreateTx(_ *gorm.DB, item *model.InventoryItem) error {
	return r.Create(context.Background(), item)
}

func (r *stubInventoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, errNotFound
	}
	return item, nil
}

func (r *stubInventoryRepo) List(_ context.Context) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *stubInventoryRepo) Update(_ context.Context, item *model.InventoryItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *stubInventoryRepo) UpdateTx(_ *gorm.DB, item *model.InventoryItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *stubInventoryRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *stubInventoryRepo) MatchCategory(_ context.Context, category string) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	for _, item := range r.items {
		if item.Category == category || strings.Contains(item.Name, category) {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) MatchName(_ context.Context, token string) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	for _, item := range r.items {
		if strings.Contains(item.Name, token) {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	item, ok := r.items[id]
	if !ok {
		return errNotFound
	}
	item.Stock += delta
	return nil
}

func (r *stubInventoryRepo) CountLowStock(_ context.Context) (int64, error) {
	var n int64
	for _, item := range r.items {
		if item.Stock <= item.LowStockThreshold {
			n++
		}
	}
	return n, nil
}

func (r *stubInventoryRepo) Warehouse(_ context.Context) (*model.Warehouse, error) {
	w := r.warehouse
	return &w, nil
}

func (r *stubInventoryRepo) SetWarehouseTx(_ *gorm.DB, stock int) error {
	r.warehouse.Stock = stock
	return nil
}

func (r *stubInventoryRepo) DB() *gorm.DB { return nil }

var _ repository.InventoryRepository = (*stubInventoryRepo)(nil)

// ── stubAdjustmentRepo ───────────────────────────────────────────────────────

type stubAdjustmentRepo struct {
	rows []model.StockAdjustment
}

func (r *stubAdjustmentRepo) CreateTx(_ *gorm.DB, a *model.StockAdjustment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.rows = append(r.rows, *a)
	return nil
}

func (r *stubAdjustmentRepo) ListByItem(_ context.Context, itemID uuid.UUID) ([]model.StockAdjustment, error) {
	var out []model.StockAdjustment
	for _, a := range r.rows {
		if a.ItemID == itemID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubAdjustmentRepo) ListInRange(_ context.Context, start, end time.Time) ([]model.StockAdjustment, error) {
	var out []model.StockAdjustment
	for _, a := range r.rows {
		if inRange(a.Date, start, end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubAdjustmentRepo) DeleteByItemTx(_ *gorm.DB, itemID uuid.UUID) error {
	kept := r.rows[:0]
	for _, a := range r.rows {
		if a.ItemID != itemID {
			kept = append(kept, a)
		}
	}
	r.rows = kept
	return nil
}

func (r *stubAdjustmentRepo) DeleteInRangeTx(_ *gorm.DB, start, end time.Time) error {
	kept := r.rows[:0]
	for _, a := range r.rows {
		if !inRange(a.Date, start, end) {
			kept = append(kept, a)
		}
	}
	r.rows = kept
	return nil
}

var _ repository.StockAdjustmentRepository = (*stubAdjustmentRepo)(nil)

// ── stubBottleLogRepo ────────────────────────────────────────────────────────

type stubBottleLogRepo struct {
	rows []model.BottleLog
}

func (r *stubBottleLogRepo) CreateTx(_ *gorm.DB, l *model.BottleLog) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.rows = append(r.rows, *l)
	return nil
}

func (r *stubBottleLogRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]model.BottleLog, error) {
	var out []model.BottleLog
	for _, l := range r.rows {
		if l.CustomerID == customerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubBottleLogRepo) DeleteByCustomerTx(_ *gorm.DB, customerID uuid.UUID) error {
	kept := r.rows[:0]
	for _, l := range r.rows {
		if l.CustomerID != customerID {
			kept = append(kept, l)
		}
	}
	r.rows = kept
	return nil
}

func (r *stubBottleLogRepo) DeleteInRangeTx(_ *gorm.DB, start, end time.Time) error {
	kept := r.rows[:0]
	for _, l := range r.rows {
		if !inRange(l.Date, start, end) {
			kept = append(kept, l)
		}
	}
	r.rows = kept
	return nil
}

var _ repository.BottleLogRepository = (*stubBottleLogRepo)(nil)

// ── stubExpenseRepo ──────────────────────────────────────────────────────────

type stubExpenseRepo struct {
	expenses map[uuid.UUID]*model.Expense
}

func newStubExpenseRepo() *stubExpenseRepo {
	return &stubExpenseRepo{expenses: make(map[uuid.UUID]*model.Expense)}
}

func (r *stubExpenseRepo) Create(_ context.Context, e *model.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.expenses[e.ID] = e
	return nil
}

func (r *stubExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Expense, error) {
	e, ok := r.expenses[id]
	if !ok {
		return nil, errNotFound
	}
	return e, nil
}

func (r *stubExpenseRepo) List(_ context.Context) ([]model.Expense, error) {
	var out []model.Expense
	for _, e := range r.expenses {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubExpenseRepo) ListInRange(_ context.Context, start, end time.Time) ([]model.Expense, error) {
	var out []model.Expense
	for _, e := range r.expenses {
		if inRange(e.Date, start, end) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubExpenseRepo) Update(_ context.Context, e *model.Expense) error {
	r.expenses[e.ID] = e
	return nil
}

func (r *stubExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.expenses, id)
	return nil
}

func (r *stubExpenseRepo) DeleteInRangeTx(_ *gorm.DB, start, end time.Time) error {
	for id, e := range r.expenses {
		if inRange(e.Date, start, end) {
			delete(r.expenses, id)
		}
	}
	return nil
}

func (r *stubExpenseRepo) SumAmountOnDate(_ context.Context, day time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.expenses {
		if e.Date.Equal(day) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

var _ repository.ExpenseRepository = (*stubExpenseRepo)(nil)

// ── stubClosingRepo ──────────────────────────────────────────────────────────

type stubClosingRepo struct {
	closings map[uuid.UUID]*model.MonthlyClosing
}

func newStubClosingRepo() *stubClosingRepo {
	return &stubClosingRepo{closings: make(map[uuid.UUID]*model.MonthlyClosing)}
}

func (r *stubClosingRepo) CreateTx(_ *gorm.DB, c *model.MonthlyClosing) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.closings[c.ID] = c
	return nil
}

func (r *stubClosingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MonthlyClosing, error) {
	c, ok := r.closings[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubClosingRepo) List(_ context.Context) ([]model.MonthlyClosing, error) {
	var out []model.MonthlyClosing
	for _, c := range r.closings {
		out = append(out, *c)
	}
	return out, nil
}

var _ repository.ClosingRepository = (*stubClosingRepo)(nil)

// ── Seed helpers ─────────────────────────────────────────────────────────────

func seedCustomer(repo *stubCustomerRepo, name string, balance decimal.Decimal) *model.Customer {
	c := &model.Customer{
		ID:           uuid.New(),
		Name:         name,
		Mobile:       "03001234567",
		DeliveryDays: []string{},
		TotalBalance: balance,
	}
	repo.customers[c.ID] = c
	return c
}

func seedItem(repo *stubInventoryRepo, name, category string, stock int, price decimal.Decimal) *model.InventoryItem {
	item := &model.InventoryItem{
		ID:                uuid.New(),
		Name:              name,
		Category:          category,
		Stock:             stock,
		LowStockThreshold: 5,
	}
	if price.IsPositive() {
		item.SellPrice = &price
	}
	repo.items[item.ID] = item
	return item
}
