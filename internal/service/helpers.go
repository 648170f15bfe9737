package service

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode with in-memory stubs).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// dateOnly truncates t to a calendar day in UTC. All ledger dates are stored
// and compared as whole days; range boundaries are inclusive on both ends.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func today() time.Time { return dateOnly(time.Now().UTC()) }

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func formatDate(t time.Time) string { return t.Format(dateLayout) }
