package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/utopia-air/flightnet/config"
	"github.com/utopia-air/flightnet/internal/kafka"
	"github.com/utopia-air/flightnet/internal/notify"
	"github.com/utopia-air/flightnet/internal/repository"
	"github.com/utopia-air/flightnet/internal/service/flights"
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

	networkRepo := repository.NewNetworkRepository(pool)
	fleetRepo := repository.NewFleetRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	flightService := flights.NewFlightService(flightRepo, networkRepo, fleetRepo)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	notifier := notify.NewNotifier()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.NetworkEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("decode event error: %v", err)
				return nil
			}
			return notifier.Notify(ctx, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	auditTicker := time.NewTicker(time.Duration(cfg.Worker.AuditSweepMinutes) * time.Minute)
	defer auditTicker.Stop()

	for {
		select {
		case <-auditTicker.C:
			report, err := flightService.Audit(ctx)
			if err != nil {
				log.Printf("audit error: %v", err)
				continue
			}
			if !report.Clean() {
				log.Printf("dangling references found: flights without route %d, flights without airplane %d, airplanes without type %d, routes without airport %d",
					report.FlightsMissingRoute, report.FlightsMissingAirplane, report.AirplanesMissingType, report.RoutesMissingAirport)
			}
		case <-ctx.Done():
			log.Printf("shutting down")
			return
		}
	}
}
