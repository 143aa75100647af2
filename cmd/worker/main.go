package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightshop/config"
	"github.com/Domenick1991/flightshop/internal/bootstrap"
	"github.com/Domenick1991/flightshop/internal/email"
	"github.com/Domenick1991/flightshop/internal/kafka"
	"github.com/Domenick1991/flightshop/internal/repository"
	"github.com/Domenick1991/flightshop/internal/service/booking"
	"github.com/Domenick1991/flightshop/internal/session"
	"github.com/Domenick1991/flightshop/internal/storage"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := bootstrap.NewLogger(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	// The sweep never touches carts, so an in-memory session store is enough.
	bookingService := booking.NewBookingService(
		repository.NewTicketRepository(db.Pool),
		repository.NewFlightRepository(db.Pool),
		repository.NewUserRepository(db.Pool),
		session.NewMemoryStore(time.Hour),
		producer,
		cfg.Kafka.TicketEventsTopic,
		time.Duration(cfg.Booking.PaymentTTLMinutes)*time.Minute,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	topic := cfg.Kafka.NotificationsTopic
	if topic == "" {
		topic = cfg.Kafka.TicketEventsTopic
	}
	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, topic)
	defer consumer.Close()

	sender := email.NewSender(logger)
	go func() {
		if err := consumer.Consume(ctx, kafka.TicketEventHandler(sender.Send)); err != nil && ctx.Err() == nil {
			logger.Error("consumer stopped", "error", err)
		}
	}()

	expireTicker := time.NewTicker(time.Duration(cfg.Worker.ExpirationSweepMinutes) * time.Minute)
	defer expireTicker.Stop()

	logger.Info("worker started", "topic", topic, "sweep_minutes", cfg.Worker.ExpirationSweepMinutes)
	for {
		select {
		case <-expireTicker.C:
			expired, err := bookingService.ExpireUnpaid(ctx)
			if err != nil {
				logger.Error("expire unpaid payments", "error", err)
				continue
			}
			if len(expired) > 0 {
				logger.Info("expired unpaid payments", "count", len(expired))
			}
		case <-ctx.Done():
			logger.Info("shutting down worker")
			return
		}
	}
}
