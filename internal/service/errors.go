package service

import (
	"errors"
	"fmt"
)

// Reconciliation errors surface before any mutation is applied: every
// operation orders its checks ahead of its writes, and the enclosing
// transaction covers the rest.
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrItemNotFound     = errors.New("inventory item not found")
	ErrSalesmanNotFound = errors.New("salesman not found")
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrClosingNotFound  = errors.New("closing not found")
	ErrNoInventoryMatch = errors.New("no inventory item found for this sale category")
	ErrInvalidPeriod    = errors.New("invalid closing period")
)

// InsufficientStockError reports which matched item is short and how many
// units it actually has.
type InsufficientStockError struct {
	Item      string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: only %d available", e.Item, e.Available)
}
