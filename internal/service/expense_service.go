package service

import (
	"context"
	"fmt"

	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/model"
	"github.com/manpreet243/nishat-main/internal/repository"

	"github.com/google/uuid"
)

type ExpenseService interface {
	Create(ctx context.Context, req dto.ExpenseRequest) (*dto.ExpenseResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.ExpenseRequest) (*dto.ExpenseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]dto.ExpenseResponse, error)
}

type expenseService struct {
	repo repository.ExpenseRepository
}

func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo}
}

func (s *expenseService) Create(ctx context.Context, req dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	expense := model.Expense{
		Date:           date,
		Name:           req.Name,
		Category:       req.Category,
		Description:    req.Description,
		Amount:         req.Amount,
		PaymentAccount: req.PaymentAccount,
	}
	if err := s.repo.Create(ctx, &expense); err != nil {
		return nil, err
	}
	return expenseToResponse(&expense), nil
}

func (s *expenseService) Update(ctx context.Context, id uuid.UUID, req dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrExpenseNotFound
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	expense.Date = date
	expense.Name = req.Name
	expense.Category = req.Category
	expense.Description = req.Description
	expense.Amount = req.Amount
	expense.PaymentAccount = req.PaymentAccount
	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expenseToResponse(expense), nil
}

func (s *expenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrExpenseNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *expenseService) List(ctx context.Context) ([]dto.ExpenseResponse, error) {
	expenses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, *expenseToResponse(&expenses[i]))
	}
	return out, nil
}

func expenseToResponse(e *model.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:             e.ID.String(),
		Date:           formatDate(e.Date),
		Name:           e.Name,
		Category:       e.Category,
		Description:    e.Description,
		Amount:         e.Amount,
		PaymentAccount: e.PaymentAccount,
	}
}
