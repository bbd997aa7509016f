package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/melnyk-o/airport-api/config"
	"github.com/melnyk-o/airport-api/internal/bootstrap"
	"github.com/melnyk-o/airport-api/internal/cache"
	"github.com/melnyk-o/airport-api/internal/kafka"
	"github.com/melnyk-o/airport-api/internal/repository"
	"github.com/melnyk-o/airport-api/internal/service/auth"
	"github.com/melnyk-o/airport-api/internal/service/booking"
	"github.com/melnyk-o/airport-api/internal/service/flights"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	orderRepo := repository.NewOrderRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	authService := auth.NewAuthService(userRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	flightService := flights.NewFlightService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(
		orderRepo,
		flightRepo,
		producer,
		cfg.Kafka.OrdersTopic,
		cfg.Booking.OrdersPageSize,
		cfg.Booking.OrdersMaxPageSize,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	router := bootstrap.NewRouter(cfg, authService, flightService, bookingService, catalogRepo)
	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
