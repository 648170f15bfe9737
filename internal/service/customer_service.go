package service

import (
	"context"
	"fmt"
	"time"

	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/model"
	"github.com/manpreet243/nishat-main/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*dto.CustomerDetailResponse, error)
	List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error)
	UpdateSchedule(ctx context.Context, id uuid.UUID, req dto.UpdateScheduleRequest) (*dto.CustomerResponse, error)
	AdjustEmptyBottles(ctx context.Context, id uuid.UUID, req dto.AdjustBottlesRequest) (*dto.CustomerResponse, error)

	// RefreshDeliveryDue recomputes the due-today flag for every customer
	// from their delivery schedule. Runs at startup and once per day.
	RefreshDeliveryDue(ctx context.Context) error
}

type customerService struct {
	repo          repository.CustomerRepository
	saleRepo      repository.SaleRepository
	bottleLogRepo repository.BottleLogRepository
	log           zerolog.Logger
}

func NewCustomerService(
	repo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	bottleLogRepo repository.BottleLogRepository,
	log zerolog.Logger,
) CustomerService {
	return &customerService{repo: repo, saleRepo: saleRepo, bottleLogRepo: bottleLogRepo, log: log}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer := model.Customer{
		Name:             req.Name,
		HouseNumber:      req.HouseNumber,
		Floor:            req.Floor,
		Mobile:           req.Mobile,
		DeliveryArea:     req.DeliveryArea,
		DailyRequirement: req.DailyRequirement,
		DeliveryDays:     []string{},
	}
	if req.SalesmanID != nil {
		sid, err := uuid.Parse(*req.SalesmanID)
		if err != nil {
			return nil, fmt.Errorf("invalid salesman_id: %w", err)
		}
		customer.SalesmanID = &sid
	}
	if err := s.repo.Create(ctx, &customer); err != nil {
		return nil, err
	}
	return customerToResponse(&customer), nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}
	customer.Name = req.Name
	customer.HouseNumber = req.HouseNumber
	customer.Floor = req.Floor
	customer.Mobile = req.Mobile
	customer.DeliveryArea = req.DeliveryArea
	customer.DailyRequirement = req.DailyRequirement
	customer.SalesmanID = nil
	if req.SalesmanID != nil {
		sid, parseErr := uuid.Parse(*req.SalesmanID)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid salesman_id: %w", parseErr)
		}
		customer.SalesmanID = &sid
	}
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customerToResponse(customer), nil
}

// Delete removes the customer together with their sale history and bottle
// ledger. Inventory is NOT restored: delivered bottles were really delivered.
func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrCustomerNotFound
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.saleRepo.DeleteByCustomerTx(tx, customer.ID); err != nil {
			return err
		}
		if err := s.bottleLogRepo.DeleteByCustomerTx(tx, customer.ID); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, customer.ID)
	})
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*dto.CustomerDetailResponse, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}
	sales, err := s.saleRepo.ListByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	logs, err := s.bottleLogRepo.ListByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.CustomerDetailResponse{
		Customer:   *customerToResponse(customer),
		Sales:      make([]dto.SaleResponse, 0, len(sales)),
		BottleLogs: make([]dto.BottleLogResponse, 0, len(logs)),
	}
	for i := range sales {
		resp.Sales = append(resp.Sales, *saleToResponse(&sales[i]))
	}
	for i := range logs {
		l := &logs[i]
		resp.BottleLogs = append(resp.BottleLogs, dto.BottleLogResponse{
			ID:              l.ID.String(),
			CustomerID:      l.CustomerID.String(),
			Date:            formatDate(l.Date),
			BottlesTaken:    l.BottlesTaken,
			BottlesReturned: l.BottlesReturned,
		})
	}
	return resp, nil
}

func (s *customerService) List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, *customerToResponse(&customers[i]))
	}
	return &dto.CustomerListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *customerService) UpdateSchedule(ctx context.Context, id uuid.UUID, req dto.UpdateScheduleRequest) (*dto.CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}
	customer.DeliveryDays = req.DeliveryDays
	customer.DeliveryDueToday = dueToday(customer.DeliveryDays, time.Now())
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customerToResponse(customer), nil
}

func (s *customerService) AdjustEmptyBottles(ctx context.Context, id uuid.UUID, req dto.AdjustBottlesRequest) (*dto.CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}
	customer.EmptyBottlesOnHand = req.EmptyBottlesOnHand
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customerToResponse(customer), nil
}

func (s *customerService) RefreshDeliveryDue(ctx context.Context) error {
	customers, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	updated := 0
	for i := range customers {
		c := &customers[i]
		due := dueToday(c.DeliveryDays, now)
		if due == c.DeliveryDueToday {
			continue
		}
		c.DeliveryDueToday = due
		if err := s.repo.Update(ctx, c); err != nil {
			return err
		}
		updated++
	}
	s.log.Info().Int("updated", updated).Msg("delivery due flags refreshed")
	return nil
}

func dueToday(deliveryDays []string, now time.Time) bool {
	weekday := now.Weekday().String()
	for _, d := range deliveryDays {
		if d == weekday {
			return true
		}
	}
	return false
}

func customerToResponse(c *model.Customer) *dto.CustomerResponse {
	resp := &dto.CustomerResponse{
		ID:                 c.ID.String(),
		Name:               c.Name,
		HouseNumber:        c.HouseNumber,
		Floor:              c.Floor,
		Mobile:             c.Mobile,
		DeliveryArea:       c.DeliveryArea,
		DailyRequirement:   c.DailyRequirement,
		DeliveryDays:       c.DeliveryDays,
		DeliveryDueToday:   c.DeliveryDueToday,
		BottlesPurchased:   c.BottlesPurchased,
		PaidBottles:        c.PaidBottles,
		TotalBalance:       c.TotalBalance,
		EmptyBottlesOnHand: c.EmptyBottlesOnHand,
	}
	if resp.DeliveryDays == nil {
		resp.DeliveryDays = []string{}
	}
	if c.SalesmanID != nil {
		id := c.SalesmanID.String()
		resp.SalesmanID = &id
	}
	return resp
}
