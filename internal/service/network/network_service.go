// Package network is the only entry point for writes against airports and
// routes. It combines the duplicate pre-checks, the duration estimator and
// the cascade resolver so the request layer never talks to the record store
// directly.
package network

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/utopia-air/flightnet/internal/cascade"
	"github.com/utopia-air/flightnet/internal/domain"
	"github.com/utopia-air/flightnet/internal/geo"
	"github.com/utopia-air/flightnet/internal/kafka"
	"github.com/utopia-air/flightnet/internal/repository"
)

type NetworkUseCase interface {
	CreateAirport(ctx context.Context, input CreateAirportInput) (*domain.Airport, error)
	GetAirport(ctx context.Context, iata string) (*domain.Airport, error)
	ListAirports(ctx context.Context) ([]domain.Airport, error)
	ListAirportsByCity(ctx context.Context, city string) ([]domain.Airport, error)
	UpdateAirport(ctx context.Context, iata string, input UpdateAirportInput) (*domain.Airport, error)
	DeleteAirport(ctx context.Context, iata string) (*domain.DeletedSet, error)

	CreateRoute(ctx context.Context, input CreateRouteInput) (*domain.Route, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	ListRoutes(ctx context.Context) ([]domain.Route, error)
	ListRoutesByOrigin(ctx context.Context, iata string) ([]domain.Route, error)
	ListRoutesByDestination(ctx context.Context, iata string) ([]domain.Route, error)
	DeleteRoute(ctx context.Context, id int64) (*domain.DeletedSet, error)
}

type Cache interface {
	GetAirports(ctx context.Context) ([]domain.Airport, error)
	SetAirports(ctx context.Context, airports []domain.Airport) error
	GetRoutes(ctx context.Context) ([]domain.Route, error)
	SetRoutes(ctx context.Context, routes []domain.Route) error
	InvalidateNetwork(ctx context.Context) error
	AcquirePairLock(ctx context.Context, origin, destination string, ttl time.Duration) (bool, error)
	ReleasePairLock(ctx context.Context, origin, destination string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type NetworkService struct {
	repo               repository.NetworkRepository
	resolver           *cascade.Resolver
	tx                 repository.TxManager
	cache              Cache
	producer           Producer
	networkTopic       string
	notificationsTopic string
	pairLockTTL        time.Duration
}

type CreateAirportInput struct {
	IATA      string  `json:"iata_id"`
	City      string  `json:"city"`
	Name      string  `json:"name"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Elevation int     `json:"elevation"`
}

type UpdateAirportInput struct {
	City      *string  `json:"city"`
	Name      *string  `json:"name"`
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`
	Elevation *int     `json:"elevation"`
}

type CreateRouteInput struct {
	OriginID      string `json:"origin_id"`
	DestinationID string `json:"destination_id"`
}

type NetworkServiceOption func(*NetworkService)

func WithNotificationsTopic(topic string) NetworkServiceOption {
	return func(s *NetworkService) {
		s.notificationsTopic = topic
	}
}

func NewNetworkService(
	repo repository.NetworkRepository,
	resolver *cascade.Resolver,
	tx repository.TxManager,
	cache Cache,
	producer Producer,
	networkTopic string,
	pairLockTTL time.Duration,
	opts ...NetworkServiceOption,
) *NetworkService {
	service := &NetworkService{
		repo:         repo,
		resolver:     resolver,
		tx:           tx,
		cache:        cache,
		producer:     producer,
		networkTopic: networkTopic,
		pairLockTTL:  pairLockTTL,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *NetworkService) CreateAirport(ctx context.Context, input CreateAirportInput) (*domain.Airport, error) {
	if !validIATA(input.IATA) {
		return nil, fmt.Errorf("%w: iata_id must be exactly three letters", domain.ErrInvalidInput)
	}

	// Friendly pre-check; the primary key on iata is the enforcement.
	if existing, err := s.repo.GetAirport(ctx, input.IATA); err == nil {
		return nil, &domain.ConflictError{Entity: "airport", Field: "iata_id", ExistingKey: existing.IATA}
	}

	airport := &domain.Airport{
		IATA:      input.IATA,
		City:      input.City,
		Name:      input.Name,
		Longitude: input.Longitude,
		Latitude:  input.Latitude,
		Elevation: input.Elevation,
	}
	if err := s.repo.InsertAirport(ctx, airport); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, "airport_created", "airport", airport.IATA, nil)
	return airport, nil
}

func (s *NetworkService) GetAirport(ctx context.Context, iata string) (*domain.Airport, error) {
	return s.repo.GetAirport(ctx, iata)
}

func (s *NetworkService) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAirports(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	airports, err := s.repo.ListAirports(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetAirports(ctx, airports)
	}
	return airports, nil
}

func (s *NetworkService) ListAirportsByCity(ctx context.Context, city string) ([]domain.Airport, error) {
	return s.repo.ListAirportsByCity(ctx, city)
}

func (s *NetworkService) UpdateAirport(ctx context.Context, iata string, input UpdateAirportInput) (*domain.Airport, error) {
	airport, err := s.repo.GetAirport(ctx, iata)
	if err != nil {
		return nil, err
	}

	if input.City != nil {
		airport.City = *input.City
	}
	if input.Name != nil {
		airport.Name = *input.Name
	}
	if input.Longitude != nil {
		airport.Longitude = *input.Longitude
	}
	if input.Latitude != nil {
		airport.Latitude = *input.Latitude
	}
	if input.Elevation != nil {
		airport.Elevation = *input.Elevation
	}

	if err := s.repo.UpdateAirport(ctx, airport); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return airport, nil
}

// DeleteAirport removes the airport together with every route touching it and
// every flight on those routes, all in one transaction.
func (s *NetworkService) DeleteAirport(ctx context.Context, iata string) (*domain.DeletedSet, error) {
	var set *domain.DeletedSet
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		set, err = s.resolver.Airport(ctx, iata)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, "airport_deleted", "airport", iata, set)
	return set, nil
}

func (s *NetworkService) CreateRoute(ctx context.Context, input CreateRouteInput) (*domain.Route, error) {
	if input.OriginID == input.DestinationID {
		return nil, fmt.Errorf("%w: origin and destination must differ", domain.ErrInvalidInput)
	}

	locked := false
	if s.cache != nil {
		ok, err := s.cache.AcquirePairLock(ctx, input.OriginID, input.DestinationID, s.pairLockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &domain.ConflictError{Entity: "route", Field: "origin/destination pair"}
		}
		locked = true
	}
	if locked {
		defer func() { _ = s.cache.ReleasePairLock(ctx, input.OriginID, input.DestinationID) }()
	}

	var route *domain.Route
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		origin, err := s.repo.GetAirport(ctx, input.OriginID)
		if err != nil {
			return err
		}
		destination, err := s.repo.GetAirport(ctx, input.DestinationID)
		if err != nil {
			return err
		}

		// Pre-check so the response can name the conflicting route; the
		// unique index on the ordered pair is what actually prevents
		// duplicates under concurrency.
		if existing, err := s.repo.FindRouteByPair(ctx, input.OriginID, input.DestinationID); err == nil {
			return &domain.ConflictError{
				Entity:      "route",
				Field:       "origin/destination pair",
				ExistingKey: strconv.FormatInt(existing.ID, 10),
			}
		}

		route = &domain.Route{
			OriginIATA:      origin.IATA,
			DestinationIATA: destination.IATA,
			Duration: geo.EstimateDuration(
				geo.Coordinate{Longitude: origin.Longitude, Latitude: origin.Latitude},
				geo.Coordinate{Longitude: destination.Longitude, Latitude: destination.Latitude},
			),
		}
		return s.repo.InsertRoute(ctx, route)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, "route_created", "route", strconv.FormatInt(route.ID, 10), nil)
	return route, nil
}

func (s *NetworkService) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	return s.repo.GetRoute(ctx, id)
}

func (s *NetworkService) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetRoutes(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	routes, err := s.repo.ListRoutes(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetRoutes(ctx, routes)
	}
	return routes, nil
}

func (s *NetworkService) ListRoutesByOrigin(ctx context.Context, iata string) ([]domain.Route, error) {
	return s.repo.ListRoutesByOrigin(ctx, iata)
}

func (s *NetworkService) ListRoutesByDestination(ctx context.Context, iata string) ([]domain.Route, error) {
	return s.repo.ListRoutesByDestination(ctx, iata)
}

func (s *NetworkService) DeleteRoute(ctx context.Context, id int64) (*domain.DeletedSet, error) {
	var set *domain.DeletedSet
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		set, err = s.resolver.Route(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, "route_deleted", "route", strconv.FormatInt(id, 10), set)
	return set, nil
}

func (s *NetworkService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateNetwork(ctx)
	}
}

func (s *NetworkService) publish(ctx context.Context, eventType, entity, key string, set *domain.DeletedSet) {
	if s.producer == nil || s.networkTopic == "" {
		return
	}
	event := kafka.NetworkEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Entity:     entity,
		Key:        key,
		OccurredAt: time.Now(),
	}
	if set != nil {
		event.DeletedAirports = len(set.Airports)
		event.DeletedTypes = len(set.AirplaneTypes)
		event.DeletedAirplanes = len(set.Airplanes)
		event.DeletedRoutes = len(set.Routes)
		event.DeletedFlights = len(set.Flights)
	}

	if err := s.producer.Publish(ctx, s.networkTopic, event.ID, event); err != nil {
		log.Printf("publish %s event: %v", eventType, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, event.ID, event); err != nil {
			log.Printf("publish %s notification: %v", eventType, err)
		}
	}
}

func validIATA(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

var _ NetworkUseCase = (*NetworkService)(nil)
