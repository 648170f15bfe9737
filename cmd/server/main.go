package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/manpreet243/nishat-main/internal/config"
	"github.com/manpreet243/nishat-main/internal/infra"
	"github.com/manpreet243/nishat-main/internal/repository"
	"github.com/manpreet243/nishat-main/internal/router"
	"github.com/manpreet243/nishat-main/internal/service"
	"github.com/manpreet243/nishat-main/internal/worker"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger: pretty in dev, JSON in prod
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.Seed(db, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Goroutine worker pool for async jobs (closing reports, email, reminder
	// digests). Handlers are wired here at the composition root so the pool
	// has full access to infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	closingRepo := repository.NewClosingRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	bottleLogRepo := repository.NewBottleLogRepository(db)
	reminderSvc := service.NewReminderService(customerRepo)

	pool := worker.NewPool(rdb)
	pool.Register("closing_report", worker.NewClosingReportWorker(closingRepo, dispatcher, rdb, cfg))
	pool.Register("email", worker.NewEmailWorker(mailer, rdb))
	pool.Register("reminder_digest", worker.NewReminderWorker(reminderSvc, rdb, dispatcher, cfg))
	pool.Start(ctx, cfg.WorkerPoolSize)

	// Daily schedule jobs: recompute which customers are due for delivery
	// today, then queue the owner's WhatsApp reminder digest.
	customerSvc := service.NewCustomerService(customerRepo, saleRepo, bottleLogRepo,
		log.With().Str("component", "customers").Logger())
	if err := customerSvc.RefreshDeliveryDue(ctx); err != nil {
		log.Error().Err(err).Msg("initial delivery-due refresh failed")
	}
	c := cron.New()
	if _, err := c.AddFunc(cfg.DeliveryRefreshCron, func() {
		jobCtx, jobCancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer jobCancel()
		if err := customerSvc.RefreshDeliveryDue(jobCtx); err != nil {
			log.Error().Err(err).Msg("delivery-due refresh failed")
		}
		today := time.Now().Format("2006-01-02")
		if err := dispatcher.EnqueueReminderDigest(jobCtx, today); err != nil {
			log.Error().Err(err).Msg("failed to enqueue reminder digest")
		}
	}); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.DeliveryRefreshCron).Msg("invalid cron spec")
	}
	c.Start()
	defer c.Stop()

	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("nishat backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
