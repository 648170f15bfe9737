package worker

// Builds the daily digest of payment-reminder links for due customers and
// mails it to the owner. A Redis SETNX key makes the digest once-per-day even
// when the cron job and a manual trigger race.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/manpreet243/nishat-main/internal/config"
	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const reminderDedupTTL = 48 * time.Hour

type ReminderWorker struct {
	svc        service.ReminderService
	rdb        *redis.Client
	dispatcher *Dispatcher
	cfg        *config.Config
}

func NewReminderWorker(svc service.ReminderService, rdb *redis.Client, dispatcher *Dispatcher, cfg *config.Config) *ReminderWorker {
	return &ReminderWorker{svc: svc, rdb: rdb, dispatcher: dispatcher, cfg: cfg}
}

func (w *ReminderWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReminderJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("reminder_worker: invalid payload")
		return
	}

	dedupKey := "reminders:digest:" + payload.Date
	ok, err := w.rdb.SetNX(ctx, dedupKey, 1, reminderDedupTTL).Result()
	if err != nil {
		log.Error().Err(err).Msg("reminder_worker: dedup check failed")
		return
	}
	if !ok {
		log.Info().Str("date", payload.Date).Msg("reminder_worker: digest already built today")
		return
	}

	reminders, err := w.svc.DueReminders(ctx, dto.ReminderOptions{Date: payload.Date})
	if err != nil {
		log.Error().Err(err).Msg("reminder_worker: building reminders failed")
		return
	}
	if len(reminders.Data) == 0 {
		log.Info().Str("date", payload.Date).Msg("reminder_worker: no customers due")
		return
	}
	if w.cfg.OwnerEmail == "" {
		log.Warn().Msg("reminder_worker: OWNER_EMAIL not set, digest skipped")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Customers due for delivery on %s:\n\n", payload.Date)
	for _, r := range reminders.Data {
		fmt.Fprintf(&b, "%s (%s)\n%s\n\n", r.CustomerName, r.Mobile, r.URL)
	}

	emailErr := w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: w.cfg.OwnerEmail,
		Subject: fmt.Sprintf("Delivery reminders for %s (%d customers)", payload.Date, len(reminders.Data)),
		Body:    b.String(),
	})
	if emailErr != nil {
		log.Error().Err(emailErr).Msg("reminder_worker: enqueue email failed")
	}
}
