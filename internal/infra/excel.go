package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manpreet243/nishat-main/internal/model"

	"github.com/xuri/excelize/v2"
)

// WriteClosingWorkbook renders a monthly closing as an .xlsx workbook with a
// Sales sheet and an Expenses sheet and saves it under dir. Returns the full
// file path.
func WriteClosingWorkbook(c *model.MonthlyClosing, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const salesSheet = "Sales"
	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return "", err
	}

	f.SetCellValue(salesSheet, "A1", "Date")
	f.SetCellValue(salesSheet, "B1", "Customer")
	f.SetCellValue(salesSheet, "C1", "Bottles Sold")
	f.SetCellValue(salesSheet, "D1", "Bottles Returned")
	f.SetCellValue(salesSheet, "E1", "Unit Price")
	f.SetCellValue(salesSheet, "F1", "Amount Received")
	f.SetCellValue(salesSheet, "G1", "Counter Sale")
	for i := range c.Sales {
		s := &c.Sales[i]
		row := fmt.Sprint(i + 2)
		f.SetCellValue(salesSheet, "A"+row, s.Date.Format("2006-01-02"))
		f.SetCellValue(salesSheet, "B"+row, s.CustomerName)
		f.SetCellValue(salesSheet, "C"+row, s.BottlesSold)
		f.SetCellValue(salesSheet, "D"+row, s.BottlesReturned)
		if s.UnitPrice != nil {
			f.SetCellValue(salesSheet, "E"+row, s.UnitPrice.InexactFloat64())
		}
		f.SetCellValue(salesSheet, "F"+row, s.AmountReceived.InexactFloat64())
		f.SetCellValue(salesSheet, "G"+row, s.IsCounterSale)
	}

	const expenseSheet = "Expenses"
	if _, err := f.NewSheet(expenseSheet); err != nil {
		return "", err
	}
	f.SetCellValue(expenseSheet, "A1", "Date")
	f.SetCellValue(expenseSheet, "B1", "Description")
	f.SetCellValue(expenseSheet, "C1", "Category")
	f.SetCellValue(expenseSheet, "D1", "Amount")
	for i := range c.Expenses {
		e := &c.Expenses[i]
		row := fmt.Sprint(i + 2)
		f.SetCellValue(expenseSheet, "A"+row, e.Date.Format("2006-01-02"))
		f.SetCellValue(expenseSheet, "B"+row, e.Description)
		if e.Category != nil {
			f.SetCellValue(expenseSheet, "C"+row, *e.Category)
		}
		f.SetCellValue(expenseSheet, "D"+row, e.Amount.InexactFloat64())
	}

	// Totals row on the sales sheet
	totalsRow := fmt.Sprint(len(c.Sales) + 3)
	f.SetCellValue(salesSheet, "A"+totalsRow, "Total Revenue")
	f.SetCellValue(salesSheet, "F"+totalsRow, c.TotalRevenue.InexactFloat64())
	expTotalsRow := fmt.Sprint(len(c.Expenses) + 3)
	f.SetCellValue(expenseSheet, "A"+expTotalsRow, "Total Expenses")
	f.SetCellValue(expenseSheet, "D"+expTotalsRow, c.TotalExpenses.InexactFloat64())

	path := filepath.Join(dir, fmt.Sprintf("closing_%s_%s.xlsx",
		c.PeriodStart.Format("2006-01-02"), c.PeriodEnd.Format("2006-01-02")))
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}
