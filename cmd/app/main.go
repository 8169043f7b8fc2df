package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/utopia-air/flightnet/api"
	"github.com/utopia-air/flightnet/config"
	"github.com/utopia-air/flightnet/internal/bootstrap"
	"github.com/utopia-air/flightnet/internal/cache"
	"github.com/utopia-air/flightnet/internal/cascade"
	"github.com/utopia-air/flightnet/internal/kafka"
	"github.com/utopia-air/flightnet/internal/repository"
	"github.com/utopia-air/flightnet/internal/service/fleet"
	"github.com/utopia-air/flightnet/internal/service/flights"
	"github.com/utopia-air/flightnet/internal/service/network"
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

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Network.ListingCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	networkRepo := repository.NewNetworkRepository(pool)
	fleetRepo := repository.NewFleetRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	txManager := repository.NewTxManager(pool)
	resolver := cascade.NewResolver(networkRepo, fleetRepo, flightRepo)

	networkService := network.NewNetworkService(
		networkRepo,
		resolver,
		txManager,
		redisCache,
		producer,
		cfg.Kafka.NetworkTopic,
		time.Duration(cfg.Network.PairLockTTLSeconds)*time.Second,
		network.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	fleetService := fleet.NewFleetService(
		fleetRepo,
		resolver,
		txManager,
		producer,
		cfg.Kafka.FleetTopic,
		fleet.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	flightService := flights.NewFlightService(flightRepo, networkRepo, fleetRepo)

	airportHandler := api.NewAirportHandler(networkService)
	routeHandler := api.NewRouteHandler(networkService)
	fleetHandler := api.NewFleetHandler(fleetService)
	flightHandler := api.NewFlightHandler(flightService)

	if err := bootstrap.Run(ctx, cfg, airportHandler, routeHandler, fleetHandler, flightHandler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
