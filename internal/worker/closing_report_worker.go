package worker

// Turns a committed monthly closing into an .xlsx workbook and hands it to
// the email queue for delivery to the owner.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/manpreet243/nishat-main/internal/config"
	"github.com/manpreet243/nishat-main/internal/infra"
	"github.com/manpreet243/nishat-main/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type ClosingReportWorker struct {
	repo       repository.ClosingRepository
	dispatcher *Dispatcher
	rdb        *redis.Client
	cfg        *config.Config
}

const closingReportMaxAttempts = 3

func NewClosingReportWorker(repo repository.ClosingRepository, dispatcher *Dispatcher, rdb *redis.Client, cfg *config.Config) *ClosingReportWorker {
	return &ClosingReportWorker{repo: repo, dispatcher: dispatcher, rdb: rdb, cfg: cfg}
}

func (w *ClosingReportWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ClosingReportJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("closing_report_worker: invalid payload")
		return
	}
	id, err := uuid.Parse(payload.ClosingID)
	if err != nil {
		log.Error().Err(err).Str("closing_id", payload.ClosingID).Msg("closing_report_worker: bad closing id")
		return
	}

	closing, err := w.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("closing_id", payload.ClosingID).Msg("closing_report_worker: closing not found")
		SendToDLQ(ctx, w.rdb, QueueClosingReport, "closing_report", raw, err.Error(), 1)
		return
	}

	var path string
	err = withRetry(ctx, closingReportMaxAttempts, func(attempt int) error {
		var buildErr error
		path, buildErr = infra.WriteClosingWorkbook(closing, w.cfg.ReportStoragePath)
		if buildErr != nil {
			log.Warn().Err(buildErr).Str("closing_id", payload.ClosingID).
				Int("attempt", attempt).Msg("closing_report_worker: workbook build failed")
		}
		return buildErr
	})
	if err != nil {
		SendToDLQ(ctx, w.rdb, QueueClosingReport, "closing_report", raw, err.Error(), closingReportMaxAttempts)
		return
	}
	log.Info().Str("closing_id", payload.ClosingID).Str("path", path).Msg("closing_report_worker: workbook written")

	if w.cfg.OwnerEmail == "" {
		log.Warn().Msg("closing_report_worker: OWNER_EMAIL not set, report kept on disk only")
		return
	}

	period := fmt.Sprintf("%s to %s",
		closing.PeriodStart.Format("2006-01-02"), closing.PeriodEnd.Format("2006-01-02"))
	emailErr := w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: w.cfg.OwnerEmail,
		Subject: "Monthly closing " + period,
		Body: fmt.Sprintf(
			"The books for %s have been closed.\n\nTotal revenue: %s\nTotal expenses: %s\n\nThe full breakdown is attached.",
			period, closing.TotalRevenue.String(), closing.TotalExpenses.String()),
		AttachmentPath: path,
	})
	if emailErr != nil {
		log.Error().Err(emailErr).Str("closing_id", payload.ClosingID).Msg("closing_report_worker: enqueue email failed")
	}
}
