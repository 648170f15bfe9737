package infra

import (
	"fmt"
	"time"

	"github.com/manpreet243/nishat-main/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// to create / update all tables. This is a greenfield schema, so AutoMigrate
// is authoritative — there is no legacy DDL to reconcile.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Customer{},
		&model.Salesman{},
		&model.SalesmanPayment{},
		&model.SaleRecord{},
		&model.BottleLog{},
		&model.InventoryItem{},
		&model.Warehouse{},
		&model.StockAdjustment{},
		&model.Expense{},
		&model.MonthlyClosing{},
		&model.ArchivedSale{},
		&model.ArchivedExpense{},
		&model.User{},
	)
}

// Seed populates empty tables with the demo dataset the back office ships
// with. Each block is guarded by an emptiness check, so it only fires on a
// fresh database and never touches live data.
func Seed(db *gorm.DB, adminPassword string) error {
	if err := seedWarehouse(db); err != nil {
		return err
	}
	if err := seedAdminUser(db, adminPassword); err != nil {
		return err
	}
	return seedDemoData(db)
}

func seedWarehouse(db *gorm.DB) error {
	var n int64
	if err := db.Model(&model.Warehouse{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return db.Create(&model.Warehouse{ID: 1, Stock: 1000}).Error
}

func seedAdminUser(db *gorm.DB, password string) error {
	var n int64
	if err := db.Model(&model.User{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if password == "" {
		password = "admin123"
		log.Warn().Msg("seeding default admin credentials, change them immediately")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	return db.Create(&model.User{
		Username:     "admin",
		Name:         "Administrator",
		PasswordHash: string(hash),
		Role:         "admin",
		Active:       true,
	}).Error
}

func seedDemoData(db *gorm.DB) error {
	var n int64
	if err := db.Model(&model.Customer{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		day := func(s string) time.Time {
			t, _ := time.Parse("2006-01-02", s)
			return t
		}
		today := time.Now().UTC().Truncate(24 * time.Hour)
		str := func(s string) *string { return &s }
		num := func(i int) *int { return &i }
		dec := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
		decPtr := func(v int64) *decimal.Decimal { d := decimal.NewFromInt(v); return &d }

		ali := model.Salesman{Name: "Ali Khan", Mobile: "923001234567", HireDate: day("2023-01-15"), DeliveryArea: str("Area A")}
		bilal := model.Salesman{Name: "Bilal Ahmed", Mobile: "923017654321", HireDate: day("2023-03-10"), DeliveryArea: str("Area B")}
		if err := tx.Create(&ali).Error; err != nil {
			return err
		}
		if err := tx.Create(&bilal).Error; err != nil {
			return err
		}

		bottles19 := model.InventoryItem{Name: "19-Liter Bottle", Category: "Containers", Stock: 150, LowStockThreshold: 50, SellPrice: decPtr(120)}
		caps := model.InventoryItem{Name: "Bottle Caps", Category: "Supplies", Stock: 800, LowStockThreshold: 200, SellPrice: decPtr(2)}
		filters := model.InventoryItem{Name: "RO Filters", Category: "Parts", Stock: 15, LowStockThreshold: 5, SellPrice: decPtr(500)}
		for _, item := range []*model.InventoryItem{&bottles19, &caps, &filters} {
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		}

		ibrahim := model.Customer{
			Name: "Ibrahim Pasha", HouseNumber: "123-B", Floor: 2, Mobile: "923331122333",
			DeliveryArea: str("Area A"), DailyRequirement: num(2),
			DeliveryDays: []string{"Monday", "Thursday"}, DeliveryDueToday: true,
			BottlesPurchased: 50, PaidBottles: 45, TotalBalance: dec(500),
			EmptyBottlesOnHand: 5, SalesmanID: &ali.ID,
		}
		fatima := model.Customer{
			Name: "Fatima Jinnah", HouseNumber: "45-C", Floor: 1, Mobile: "923214455666",
			DeliveryArea: str("Area B"), DailyRequirement: num(1),
			DeliveryDays: []string{"Tuesday", "Friday"},
			BottlesPurchased: 20, PaidBottles: 20, TotalBalance: dec(0),
			EmptyBottlesOnHand: 2, SalesmanID: &bilal.ID,
		}
		zain := model.Customer{
			Name: "Zain Abdullah", HouseNumber: "88-F", Floor: 5, Mobile: "923118877665",
			DeliveryArea: str("Area A"), DailyRequirement: num(1),
			DeliveryDays: []string{"Wednesday", "Saturday", "Monday"}, DeliveryDueToday: true,
			BottlesPurchased: 15, PaidBottles: 10, TotalBalance: dec(500),
			EmptyBottlesOnHand: 3, SalesmanID: &ali.ID,
		}
		for _, c := range []*model.Customer{&ibrahim, &fatima, &zain} {
			if err := tx.Create(c).Error; err != nil {
				return err
			}
		}

		sales := []model.SaleRecord{
			{CustomerID: &ibrahim.ID, CustomerName: ibrahim.Name, BottlesSold: 2, BottlesReturned: 2,
				AmountReceived: dec(240), UnitPrice: decPtr(120), BottleCategory: str("19-Liter"),
				BottleItemID: &bottles19.ID, Date: today, SalesmanID: &ali.ID},
			{CustomerID: &zain.ID, CustomerName: zain.Name, BottlesSold: 1, BottlesReturned: 1,
				AmountReceived: dec(0), UnitPrice: decPtr(120), BottleCategory: str("19-Liter"),
				BottleItemID: &bottles19.ID, Date: today, SalesmanID: &ali.ID},
			{CustomerID: &fatima.ID, CustomerName: fatima.Name, BottlesSold: 1, BottlesReturned: 0,
				AmountReceived: dec(2), UnitPrice: decPtr(2), BottleCategory: str("5-Liter"),
				BottleItemID: &caps.ID, Date: day("2024-05-20"), SalesmanID: &bilal.ID},
			{CustomerName: "Counter Sale", AmountReceived: dec(50), Date: today,
				IsCounterSale: true, Description: str("3 small bottles"), BottleCategory: str("1-Liter")},
		}
		for i := range sales {
			if err := tx.Create(&sales[i]).Error; err != nil {
				return err
			}
		}

		expenses := []model.Expense{
			{Date: today, Category: str("Utilities"), Description: "Electricity Bill", Amount: dec(15000)},
			{Date: day("2024-05-15"), Category: str("Maintenance"), Description: "Filter Replacement", Amount: dec(5000)},
		}
		for i := range expenses {
			if err := tx.Create(&expenses[i]).Error; err != nil {
				return err
			}
		}

		logs := []model.BottleLog{
			{CustomerID: ibrahim.ID, Date: today, BottlesTaken: 2, BottlesReturned: 2},
			{CustomerID: zain.ID, Date: today, BottlesTaken: 1, BottlesReturned: 1},
			{CustomerID: ibrahim.ID, Date: day("2024-05-20"), BottlesTaken: 2, BottlesReturned: 1},
		}
		for i := range logs {
			if err := tx.Create(&logs[i]).Error; err != nil {
				return err
			}
		}

		payments := []model.SalesmanPayment{
			{SalesmanID: ali.ID, Amount: dec(5000), Date: today},
			{SalesmanID: bilal.ID, Amount: dec(4500), Date: day("2024-05-18")},
		}
		for i := range payments {
			if err := tx.Create(&payments[i]).Error; err != nil {
				return err
			}
		}

		adjustments := []model.StockAdjustment{
			{ItemID: bottles19.ID, Date: day("2024-05-10"), QuantityChange: 200, Reason: "Received Shipment", AdjustedBy: "Admin"},
			{ItemID: bottles19.ID, Date: day("2024-05-12"), QuantityChange: -5, Reason: "Damaged Goods", AdjustedBy: "Admin"},
			{ItemID: filters.ID, Date: day("2024-05-15"), QuantityChange: -1, Reason: "Maintenance Use", AdjustedBy: "Admin"},
		}
		for i := range adjustments {
			if err := tx.Create(&adjustments[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
