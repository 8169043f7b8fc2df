// Package fleet manages airplane types and airplanes. Capacity uniqueness and
// the type/airplane deletion cascades live here.
package fleet

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/utopia-air/flightnet/internal/cascade"
	"github.com/utopia-air/flightnet/internal/domain"
	"github.com/utopia-air/flightnet/internal/kafka"
	"github.com/utopia-air/flightnet/internal/repository"
)

type FleetUseCase interface {
	CreateAirplaneType(ctx context.Context, capacity int) (*domain.AirplaneType, error)
	GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error)
	ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error)
	FindAirplaneTypeWithCapacityAtLeast(ctx context.Context, capacity int) (*domain.AirplaneType, error)
	UpdateAirplaneType(ctx context.Context, id int64, capacity int) (*domain.AirplaneType, error)
	DeleteAirplaneType(ctx context.Context, id int64) (*domain.DeletedSet, error)

	CreateAirplane(ctx context.Context, typeID int64) (*domain.Airplane, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)
	ListAirplanes(ctx context.Context) ([]domain.Airplane, error)
	ListAirplanesByType(ctx context.Context, typeID int64) ([]domain.Airplane, error)
	UpdateAirplane(ctx context.Context, id, typeID int64) (*domain.Airplane, error)
	DeleteAirplane(ctx context.Context, id int64) (*domain.DeletedSet, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type FleetService struct {
	repo               repository.FleetRepository
	resolver           *cascade.Resolver
	tx                 repository.TxManager
	producer           Producer
	fleetTopic         string
	notificationsTopic string
}

type FleetServiceOption func(*FleetService)

func WithNotificationsTopic(topic string) FleetServiceOption {
	return func(s *FleetService) {
		s.notificationsTopic = topic
	}
}

func NewFleetService(
	repo repository.FleetRepository,
	resolver *cascade.Resolver,
	tx repository.TxManager,
	producer Producer,
	fleetTopic string,
	opts ...FleetServiceOption,
) *FleetService {
	service := &FleetService{
		repo:       repo,
		resolver:   resolver,
		tx:         tx,
		producer:   producer,
		fleetTopic: fleetTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *FleetService) CreateAirplaneType(ctx context.Context, capacity int) (*domain.AirplaneType, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: max_capacity must be positive", domain.ErrInvalidInput)
	}

	// Pre-check for the friendly message; the unique index on max_capacity
	// is the enforcement.
	if existing, err := s.repo.FindAirplaneTypeByCapacity(ctx, capacity); err == nil {
		return nil, &domain.ConflictError{
			Entity:      "airplane type",
			Field:       "capacity",
			ExistingKey: strconv.FormatInt(existing.ID, 10),
		}
	}

	t := &domain.AirplaneType{MaxCapacity: capacity}
	if err := s.repo.InsertAirplaneType(ctx, t); err != nil {
		return nil, err
	}
	s.publish(ctx, "airplane_type_created", "airplane_type", strconv.FormatInt(t.ID, 10), nil)
	return t, nil
}

func (s *FleetService) GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	return s.repo.GetAirplaneType(ctx, id)
}

func (s *FleetService) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	return s.repo.ListAirplaneTypes(ctx)
}

func (s *FleetService) FindAirplaneTypeWithCapacityAtLeast(ctx context.Context, capacity int) (*domain.AirplaneType, error) {
	return s.repo.FindAirplaneTypeWithCapacityAtLeast(ctx, capacity)
}

func (s *FleetService) UpdateAirplaneType(ctx context.Context, id int64, capacity int) (*domain.AirplaneType, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: max_capacity must be positive", domain.ErrInvalidInput)
	}

	t, err := s.repo.GetAirplaneType(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing, err := s.repo.FindAirplaneTypeByCapacity(ctx, capacity); err == nil && existing.ID != id {
		return nil, &domain.ConflictError{
			Entity:      "airplane type",
			Field:       "capacity",
			ExistingKey: strconv.FormatInt(existing.ID, 10),
		}
	}

	t.MaxCapacity = capacity
	if err := s.repo.UpdateAirplaneType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteAirplaneType removes the type, its airplanes and every flight on
// those airplanes in one transaction. Leaving flights pointing at removed
// airplanes is not an option here.
func (s *FleetService) DeleteAirplaneType(ctx context.Context, id int64) (*domain.DeletedSet, error) {
	var set *domain.DeletedSet
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		set, err = s.resolver.AirplaneType(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "airplane_type_deleted", "airplane_type", strconv.FormatInt(id, 10), set)
	return set, nil
}

func (s *FleetService) CreateAirplane(ctx context.Context, typeID int64) (*domain.Airplane, error) {
	if _, err := s.repo.GetAirplaneType(ctx, typeID); err != nil {
		return nil, err
	}

	airplane := &domain.Airplane{TypeID: typeID}
	if err := s.repo.InsertAirplane(ctx, airplane); err != nil {
		return nil, err
	}
	s.publish(ctx, "airplane_created", "airplane", strconv.FormatInt(airplane.ID, 10), nil)
	return airplane, nil
}

func (s *FleetService) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	return s.repo.GetAirplane(ctx, id)
}

func (s *FleetService) ListAirplanes(ctx context.Context) ([]domain.Airplane, error) {
	return s.repo.ListAirplanes(ctx)
}

func (s *FleetService) ListAirplanesByType(ctx context.Context, typeID int64) ([]domain.Airplane, error) {
	return s.repo.FindAirplanesByType(ctx, typeID)
}

func (s *FleetService) UpdateAirplane(ctx context.Context, id, typeID int64) (*domain.Airplane, error) {
	airplane, err := s.repo.GetAirplane(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetAirplaneType(ctx, typeID); err != nil {
		return nil, err
	}

	airplane.TypeID = typeID
	if err := s.repo.UpdateAirplane(ctx, airplane); err != nil {
		return nil, err
	}
	return airplane, nil
}

// DeleteAirplane removes the airplane and its flights in one transaction.
func (s *FleetService) DeleteAirplane(ctx context.Context, id int64) (*domain.DeletedSet, error) {
	var set *domain.DeletedSet
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		set, err = s.resolver.Airplane(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "airplane_deleted", "airplane", strconv.FormatInt(id, 10), set)
	return set, nil
}

func (s *FleetService) publish(ctx context.Context, eventType, entity, key string, set *domain.DeletedSet) {
	if s.producer == nil || s.fleetTopic == "" {
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
		event.DeletedTypes = len(set.AirplaneTypes)
		event.DeletedAirplanes = len(set.Airplanes)
		event.DeletedFlights = len(set.Flights)
	}

	if err := s.producer.Publish(ctx, s.fleetTopic, event.ID, event); err != nil {
		log.Printf("publish %s event: %v", eventType, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, event.ID, event); err != nil {
			log.Printf("publish %s notification: %v", eventType, err)
		}
	}
}

var _ FleetUseCase = (*FleetService)(nil)
