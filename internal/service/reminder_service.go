package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/model"
	"github.com/manpreet243/nishat-main/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"
)

// defaultBottleRate is the per-bottle PKR rate shown in the reminder
// arithmetic when the caller does not supply one.
var defaultBottleRate = decimal.NewFromInt(50)

const defaultPhoneRegion = "PK"

type ReminderService interface {
	// Reminder builds the WhatsApp message and wa.me deep link for one
	// customer.
	Reminder(ctx context.Context, customerID uuid.UUID, opts dto.ReminderOptions) (*dto.ReminderResponse, error)
	// DueReminders builds reminders for every customer flagged due today.
	DueReminders(ctx context.Context, opts dto.ReminderOptions) (*dto.DueReminderListResponse, error)
}

type reminderService struct {
	customerRepo repository.CustomerRepository
}

func NewReminderService(customerRepo repository.CustomerRepository) ReminderService {
	return &reminderService{customerRepo: customerRepo}
}

func (s *reminderService) Reminder(ctx context.Context, customerID uuid.UUID, opts dto.ReminderOptions) (*dto.ReminderResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, ErrCustomerNotFound
	}
	return buildReminder(customer, opts), nil
}

func (s *reminderService) DueReminders(ctx context.Context, opts dto.ReminderOptions) (*dto.DueReminderListResponse, error) {
	customers, _, err := s.customerRepo.List(ctx, dto.CustomerFilter{DueOnly: true, Limit: 500})
	if err != nil {
		return nil, err
	}
	resp := &dto.DueReminderListResponse{Data: make([]dto.ReminderResponse, 0, len(customers))}
	for i := range customers {
		resp.Data = append(resp.Data, *buildReminder(&customers[i], opts))
	}
	return resp, nil
}

func buildReminder(c *model.Customer, opts dto.ReminderOptions) *dto.ReminderResponse {
	message := reminderMessage(c, opts)
	// wa.me does not decode "+" as a space; spaces must travel as %20.
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return &dto.ReminderResponse{
		CustomerID:   c.ID.String(),
		CustomerName: c.Name,
		Mobile:       c.Mobile,
		Message:      message,
		URL:          fmt.Sprintf("https://wa.me/%s?text=%s", waPhone(c.Mobile), encoded),
	}
}

// reminderMessage renders the account-summary text. The layout (including
// the blank line after the date and the loose "-previous balance :" line) is
// kept exactly as customers have been receiving it.
func reminderMessage(c *model.Customer, opts dto.ReminderOptions) string {
	unpaidBottles := c.BottlesPurchased - c.PaidBottles
	if unpaidBottles < 0 {
		unpaidBottles = 0
	}

	multiplier := defaultBottleRate
	if opts.Multiplier != nil {
		multiplier = *opts.Multiplier
	}
	paidAmount := multiplier.Mul(decimal.NewFromInt(int64(c.PaidBottles)))
	unpaidAmount := multiplier.Mul(decimal.NewFromInt(int64(unpaidBottles)))

	dateLine := ""
	if opts.Date != "" {
		dateLine = fmt.Sprintf("Date: %s\n", opts.Date)
	}
	prevLine := ""
	if opts.PreviousBalance != nil {
		prevLine = fmt.Sprintf("-previous balance : %s \n", groupDigits(*opts.PreviousBalance))
	}
	dailySaleLine := ""
	if opts.DailySale != nil {
		day := opts.Date
		if day == "" {
			day = "today"
		}
		dailySaleLine = fmt.Sprintf("- Everyday Sale (%s): PKR %s\n", day, groupDigits(*opts.DailySale))
	}

	return fmt.Sprintf(`Hello %s, this is a friendly reminder from Nishat Beverages.
%s
Your Account Summary:
- Remaining Payment: PKR %s
%s- Total Paid Bottles: %d*%s=%s
- Total Unpaid Bottles: %d*%s=%s
%s- Empty Bottles to Return: %d

Thank you!`,
		c.Name,
		dateLine,
		groupDigits(c.TotalBalance),
		dailySaleLine,
		c.PaidBottles, multiplier.String(), groupDigits(paidAmount),
		unpaidBottles, multiplier.String(), groupDigits(unpaidAmount),
		prevLine,
		c.EmptyBottlesOnHand,
	)
}

// waPhone normalizes a mobile number into the digits-only international form
// wa.me expects ("923001234567"). Numbers the parser rejects pass through
// unchanged so a typo'd record still yields a clickable (if broken) link.
func waPhone(mobile string) string {
	p, err := libphonenumber.Parse(mobile, defaultPhoneRegion)
	if err != nil || !libphonenumber.IsValidNumber(p) {
		return mobile
	}
	return strings.TrimPrefix(libphonenumber.Format(p, libphonenumber.E164), "+")
}

// groupDigits renders a decimal with thousands separators ("12,500").
func groupDigits(d decimal.Decimal) string {
	s := d.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(fracPart)
	return b.String()
}
