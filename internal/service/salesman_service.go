package service

import (
	"context"
	"fmt"

	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/model"
	"github.com/manpreet243/nishat-main/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SalesmanService interface {
	Create(ctx context.Context, req dto.CreateSalesmanRequest) (*dto.SalesmanResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.CreateSalesmanRequest) (*dto.SalesmanResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]dto.SalesmanResponse, error)
	RecordPayment(ctx context.Context, id uuid.UUID, req dto.SalesmanPaymentRequest) (*dto.SalesmanPaymentResponse, error)

	// Report sums the salesman's recorded sales against the payouts made to
	// them over their whole history.
	Report(ctx context.Context, id uuid.UUID) (*dto.SalesmanReportResponse, error)
}

type salesmanService struct {
	repo     repository.SalesmanRepository
	saleRepo repository.SaleRepository
}

func NewSalesmanService(repo repository.SalesmanRepository, saleRepo repository.SaleRepository) SalesmanService {
	return &salesmanService{repo: repo, saleRepo: saleRepo}
}

func (s *salesmanService) Create(ctx context.Context, req dto.CreateSalesmanRequest) (*dto.SalesmanResponse, error) {
	hireDate, err := parseDate(req.HireDate)
	if err != nil {
		return nil, fmt.Errorf("invalid hire_date: %w", err)
	}
	salesman := model.Salesman{
		Name:         req.Name,
		Mobile:       req.Mobile,
		HireDate:     hireDate,
		DeliveryArea: req.DeliveryArea,
	}
	if err := s.repo.Create(ctx, &salesman); err != nil {
		return nil, err
	}
	return salesmanToResponse(&salesman), nil
}

func (s *salesmanService) Update(ctx context.Context, id uuid.UUID, req dto.CreateSalesmanRequest) (*dto.SalesmanResponse, error) {
	salesman, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrSalesmanNotFound
	}
	hireDate, err := parseDate(req.HireDate)
	if err != nil {
		return nil, fmt.Errorf("invalid hire_date: %w", err)
	}
	salesman.Name = req.Name
	salesman.Mobile = req.Mobile
	salesman.HireDate = hireDate
	salesman.DeliveryArea = req.DeliveryArea
	if err := s.repo.Update(ctx, salesman); err != nil {
		return nil, err
	}
	return salesmanToResponse(salesman), nil
}

func (s *salesmanService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrSalesmanNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *salesmanService) List(ctx context.Context) ([]dto.SalesmanResponse, error) {
	salesmen, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesmanResponse, 0, len(salesmen))
	for i := range salesmen {
		out = append(out, *salesmanToResponse(&salesmen[i]))
	}
	return out, nil
}

func (s *salesmanService) RecordPayment(ctx context.Context, id uuid.UUID, req dto.SalesmanPaymentRequest) (*dto.SalesmanPaymentResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, ErrSalesmanNotFound
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	payment := model.SalesmanPayment{
		SalesmanID: id,
		Amount:     req.Amount,
		Date:       date,
	}
	if err := s.repo.CreatePayment(ctx, &payment); err != nil {
		return nil, err
	}
	resp := paymentToResponse(&payment)
	return &resp, nil
}

func (s *salesmanService) Report(ctx context.Context, id uuid.UUID) (*dto.SalesmanReportResponse, error) {
	salesman, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrSalesmanNotFound
	}
	sales, err := s.saleRepo.ListBySalesman(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.ListPayments(ctx, id)
	if err != nil {
		return nil, err
	}

	report := &dto.SalesmanReportResponse{
		Salesman:      *salesmanToResponse(salesman),
		TotalSales:    decimal.Zero,
		TotalPayments: decimal.Zero,
		Payments:      make([]dto.SalesmanPaymentResponse, 0, len(payments)),
		SaleCount:     len(sales),
	}
	for i := range sales {
		report.TotalSales = report.TotalSales.Add(sales[i].AmountReceived)
		report.BottlesSold += sales[i].BottlesSold
	}
	for i := range payments {
		report.TotalPayments = report.TotalPayments.Add(payments[i].Amount)
		report.Payments = append(report.Payments, paymentToResponse(&payments[i]))
	}
	return report, nil
}

func salesmanToResponse(m *model.Salesman) *dto.SalesmanResponse {
	return &dto.SalesmanResponse{
		ID:           m.ID.String(),
		Name:         m.Name,
		Mobile:       m.Mobile,
		HireDate:     formatDate(m.HireDate),
		DeliveryArea: m.DeliveryArea,
	}
}

func paymentToResponse(p *model.SalesmanPayment) dto.SalesmanPaymentResponse {
	return dto.SalesmanPaymentResponse{
		ID:         p.ID.String(),
		SalesmanID: p.SalesmanID.String(),
		Amount:     p.Amount,
		Date:       formatDate(p.Date),
	}
}
