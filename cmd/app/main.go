package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbooker/config"
	"github.com/Domenick1991/flightbooker/internal/bootstrap"
	"github.com/Domenick1991/flightbooker/internal/cache"
	"github.com/Domenick1991/flightbooker/internal/kafka"
	"github.com/Domenick1991/flightbooker/internal/repository"
	"github.com/Domenick1991/flightbooker/internal/service/booking"
	"github.com/Domenick1991/flightbooker/internal/service/customers"
	"github.com/Domenick1991/flightbooker/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
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

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	seatRepo := repository.NewSeatRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)

	flightService := flights.NewFlightService(flightRepo, redisCache, time.Duration(cfg.Booking.FlightsCacheTTLSeconds)*time.Second)
	customerService := customers.NewCustomerService(customerRepo)
	bookingService := booking.NewBookingService(
		bookingRepo,
		seatRepo,
		customerService,
		flightService,
		redisCache,
		producer,
		cfg.Kafka.BookingEventsTopic,
		time.Duration(cfg.Booking.SeatLockTTLSeconds)*time.Second,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, bookingService, flightService, customerService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
