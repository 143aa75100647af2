package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightshop/api"
	"github.com/Domenick1991/flightshop/config"
	"github.com/Domenick1991/flightshop/internal/bootstrap"
	"github.com/Domenick1991/flightshop/internal/cache"
	"github.com/Domenick1991/flightshop/internal/kafka"
	"github.com/Domenick1991/flightshop/internal/ratelimit"
	"github.com/Domenick1991/flightshop/internal/repository"
	"github.com/Domenick1991/flightshop/internal/service/booking"
	"github.com/Domenick1991/flightshop/internal/service/cart"
	"github.com/Domenick1991/flightshop/internal/service/flights"
	"github.com/Domenick1991/flightshop/internal/service/stats"
	"github.com/Domenick1991/flightshop/internal/service/users"
	"github.com/Domenick1991/flightshop/internal/session"
	"github.com/Domenick1991/flightshop/internal/storage"
	"github.com/gin-gonic/gin"
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
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if cfg.Database.AutoMigrate {
		if err := db.Migrate(); err != nil {
			logger.Error("migrate database", "error", err)
			os.Exit(1)
		}
	}

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	var sessions session.Store = session.NewMemoryStore(sessionTTL)
	var flightCache flights.FlightCache
	var catalog api.CatalogInvalidator
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Error("connect redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		sessions = session.NewRedisStore(redisClient, sessionTTL)
		redisCache := cache.NewRedisCache(redisClient, time.Duration(cfg.Shop.FlightsCacheTTL)*time.Second)
		flightCache = redisCache
		catalog = redisCache
	} else {
		logger.Warn("redis not configured, sessions are kept in memory and listings are not cached")
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		logger.Warn("kafka unavailable, ticket events will fail to publish", "error", err)
	}

	flightRepo := repository.NewFlightRepository(db.Pool)
	userRepo := repository.NewUserRepository(db.Pool)

	flightService := flights.NewFlightService(
		flightRepo,
		repository.NewAirportRepository(db.Pool),
		repository.NewRouteRepository(db.Pool),
		flightCache,
		cfg.Shop.PageSize,
	)
	cartService := cart.NewCartService(sessions)
	userService := users.NewUserService(userRepo)
	statsService := stats.NewStatsService(repository.NewStatsRepository(db.Pool))
	bookingService := booking.NewBookingService(
		repository.NewTicketRepository(db.Pool),
		flightRepo,
		userRepo,
		sessions,
		producer,
		cfg.Kafka.TicketEventsTopic,
		time.Duration(cfg.Booking.PaymentTTLMinutes)*time.Minute,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	loginLimiter := ratelimit.NewKeyedLimiter(ratelimit.Config{
		RequestsPerSecond: cfg.Security.LoginRatePerSecond,
		BurstSize:         cfg.Security.LoginBurst,
	})
	go loginLimiter.Run(ctx, time.Minute)

	router := api.NewRouter(
		api.RouterConfig{
			Logger:   logger,
			Sessions: sessions,
			Session: api.SessionOptions{
				CookieName: cfg.Session.CookieName,
				TTL:        sessionTTL,
				Secure:     cfg.Session.CookieSecure,
			},
			SwaggerDir:     cfg.HTTP.SwaggerDir,
			TrustedProxies: cfg.HTTP.TrustedProxies,
		},
		api.NewAdminHandler(statsService, sessions, db.Gorm, catalog),
		api.NewFlightHandler(flightService, cfg.Shop.DefaultDeparture, cfg.Shop.FeaturedCities),
		api.NewAuthHandler(userService, sessions, loginLimiter),
		api.NewCartHandler(cartService),
		api.NewBookingHandler(bookingService),
	)

	if err := bootstrap.Run(ctx, cfg.HTTP.Address, router); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
