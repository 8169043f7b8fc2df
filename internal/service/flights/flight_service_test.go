package flights

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/utopia-air/flightnet/internal/domain"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) FindFlightsByRoute(ctx context.Context, routeID int64) ([]domain.Flight, error) {
	args := m.Called(ctx, routeID)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) FindFlightsByAirplane(ctx context.Context, airplaneID int64) ([]domain.Flight, error) {
	args := m.Called(ctx, airplaneID)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) InsertFlight(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) UpdateFlight(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) DeleteFlight(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlightRepository) CountDangling(ctx context.Context) (*domain.AuditReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditReport), args.Error(1)
}

type MockNetworkRepository struct {
	mock.Mock
}

func (m *MockNetworkRepository) GetAirport(ctx context.Context, iata string) (*domain.Airport, error) {
	args := m.Called(ctx, iata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockNetworkRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockNetworkRepository) ListAirportsByCity(ctx context.Context, city string) ([]domain.Airport, error) {
	args := m.Called(ctx, city)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockNetworkRepository) InsertAirport(ctx context.Context, airport *domain.Airport) error {
	args := m.Called(ctx, airport)
	return args.Error(0)
}

func (m *MockNetworkRepository) UpdateAirport(ctx context.Context, airport *domain.Airport) error {
	args := m.Called(ctx, airport)
	return args.Error(0)
}

func (m *MockNetworkRepository) DeleteAirport(ctx context.Context, iata string) (bool, error) {
	args := m.Called(ctx, iata)
	return args.Bool(0), args.Error(1)
}

func (m *MockNetworkRepository) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockNetworkRepository) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockNetworkRepository) ListRoutesByOrigin(ctx context.Context, iata string) ([]domain.Route, error) {
	args := m.Called(ctx, iata)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockNetworkRepository) ListRoutesByDestination(ctx context.Context, iata string) ([]domain.Route, error) {
	args := m.Called(ctx, iata)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockNetworkRepository) FindRouteByPair(ctx context.Context, origin, destination string) (*domain.Route, error) {
	args := m.Called(ctx, origin, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockNetworkRepository) FindRoutesByAirport(ctx context.Context, iata string) ([]domain.Route, error) {
	args := m.Called(ctx, iata)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockNetworkRepository) InsertRoute(ctx context.Context, route *domain.Route) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockNetworkRepository) DeleteRoute(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockFleetRepository struct {
	mock.Mock
}

func (m *MockFleetRepository) GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AirplaneType), args.Error(1)
}

func (m *MockFleetRepository) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AirplaneType), args.Error(1)
}

func (m *MockFleetRepository) FindAirplaneTypeByCapacity(ctx context.Context, capacity int) (*domain.AirplaneType, error) {
	args := m.Called(ctx, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AirplaneType), args.Error(1)
}

func (m *MockFleetRepository) FindAirplaneTypeWithCapacityAtLeast(ctx context.Context, capacity int) (*domain.AirplaneType, error) {
	args := m.Called(ctx, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AirplaneType), args.Error(1)
}

func (m *MockFleetRepository) InsertAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockFleetRepository) UpdateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockFleetRepository) DeleteAirplaneType(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockFleetRepository) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockFleetRepository) ListAirplanes(ctx context.Context) ([]domain.Airplane, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airplane), args.Error(1)
}

func (m *MockFleetRepository) FindAirplanesByType(ctx context.Context, typeID int64) ([]domain.Airplane, error) {
	args := m.Called(ctx, typeID)
	return args.Get(0).([]domain.Airplane), args.Error(1)
}

func (m *MockFleetRepository) InsertAirplane(ctx context.Context, airplane *domain.Airplane) error {
	args := m.Called(ctx, airplane)
	return args.Error(0)
}

func (m *MockFleetRepository) UpdateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	args := m.Called(ctx, airplane)
	return args.Error(0)
}

func (m *MockFleetRepository) DeleteAirplane(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newTestService() (*FlightService, *MockFlightRepository, *MockNetworkRepository, *MockFleetRepository) {
	repo := &MockFlightRepository{}
	network := &MockNetworkRepository{}
	fleet := &MockFleetRepository{}
	return NewFlightService(repo, network, fleet), repo, network, fleet
}

func TestFlightService_CreateFlight_Success(t *testing.T) {
	service, repo, network, fleet := newTestService()
	ctx := context.Background()
	departure := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	network.On("GetRoute", ctx, int64(1)).Return(&domain.Route{ID: 1, OriginIATA: "JFK", DestinationIATA: "LAX", Duration: 4.94}, nil).Once()
	fleet.On("GetAirplane", ctx, int64(5)).Return(&domain.Airplane{ID: 5, TypeID: 2}, nil).Once()
	fleet.On("GetAirplaneType", ctx, int64(2)).Return(&domain.AirplaneType{ID: 2, MaxCapacity: 150}, nil).Once()
	repo.On("InsertFlight", ctx, mock.AnythingOfType("*domain.Flight")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Flight).ID = 10
	}).Return(nil).Once()

	flight, err := service.CreateFlight(ctx, CreateFlightInput{
		RouteID:       1,
		AirplaneID:    5,
		DepartureTime: departure,
		ReservedSeats: 100,
		SeatPrice:     199.99,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), flight.ID)
	assert.Equal(t, departure, flight.DepartureTime)
	repo.AssertExpectations(t)
}

func TestFlightService_CreateFlight_MissingRoute(t *testing.T) {
	service, repo, network, _ := newTestService()
	ctx := context.Background()

	network.On("GetRoute", ctx, int64(99)).Return(nil, domain.ErrNotFound).Once()

	_, err := service.CreateFlight(ctx, CreateFlightInput{RouteID: 99, AirplaneID: 5})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "InsertFlight", mock.Anything, mock.Anything)
}

func TestFlightService_CreateFlight_MissingAirplane(t *testing.T) {
	service, repo, network, fleet := newTestService()
	ctx := context.Background()

	network.On("GetRoute", ctx, int64(1)).Return(&domain.Route{ID: 1}, nil).Once()
	fleet.On("GetAirplane", ctx, int64(99)).Return(nil, domain.ErrNotFound).Once()

	_, err := service.CreateFlight(ctx, CreateFlightInput{RouteID: 1, AirplaneID: 99})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "InsertFlight", mock.Anything, mock.Anything)
}

func TestFlightService_CreateFlight_SeatsExceedCapacity(t *testing.T) {
	service, repo, network, fleet := newTestService()
	ctx := context.Background()

	network.On("GetRoute", ctx, int64(1)).Return(&domain.Route{ID: 1}, nil).Once()
	fleet.On("GetAirplane", ctx, int64(5)).Return(&domain.Airplane{ID: 5, TypeID: 2}, nil).Once()
	fleet.On("GetAirplaneType", ctx, int64(2)).Return(&domain.AirplaneType{ID: 2, MaxCapacity: 150}, nil).Once()

	_, err := service.CreateFlight(ctx, CreateFlightInput{RouteID: 1, AirplaneID: 5, ReservedSeats: 151})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "InsertFlight", mock.Anything, mock.Anything)
}

func TestFlightService_CreateFlight_NegativeValues(t *testing.T) {
	service, _, network, fleet := newTestService()
	ctx := context.Background()

	_, err := service.CreateFlight(ctx, CreateFlightInput{RouteID: 1, AirplaneID: 5, SeatPrice: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	network.On("GetRoute", ctx, int64(1)).Return(&domain.Route{ID: 1}, nil).Once()
	fleet.On("GetAirplane", ctx, int64(5)).Return(&domain.Airplane{ID: 5, TypeID: 2}, nil).Once()

	_, err = service.CreateFlight(ctx, CreateFlightInput{RouteID: 1, AirplaneID: 5, ReservedSeats: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFlightService_UpdateFlight_RevalidatesSeats(t *testing.T) {
	service, repo, _, fleet := newTestService()
	ctx := context.Background()

	repo.On("GetFlight", ctx, int64(10)).Return(&domain.Flight{ID: 10, RouteID: 1, AirplaneID: 5, ReservedSeats: 100}, nil).Once()
	fleet.On("GetAirplane", ctx, int64(5)).Return(&domain.Airplane{ID: 5, TypeID: 2}, nil).Once()
	fleet.On("GetAirplaneType", ctx, int64(2)).Return(&domain.AirplaneType{ID: 2, MaxCapacity: 150}, nil).Once()

	seats := 200
	_, err := service.UpdateFlight(ctx, 10, UpdateFlightInput{ReservedSeats: &seats})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "UpdateFlight", mock.Anything, mock.Anything)
}

func TestFlightService_UpdateFlight_SwapAirplane(t *testing.T) {
	service, repo, _, fleet := newTestService()
	ctx := context.Background()

	repo.On("GetFlight", ctx, int64(10)).Return(&domain.Flight{ID: 10, RouteID: 1, AirplaneID: 5, ReservedSeats: 100}, nil).Once()
	fleet.On("GetAirplane", ctx, int64(6)).Return(&domain.Airplane{ID: 6, TypeID: 3}, nil).Twice()
	fleet.On("GetAirplaneType", ctx, int64(3)).Return(&domain.AirplaneType{ID: 3, MaxCapacity: 180}, nil).Once()
	repo.On("UpdateFlight", ctx, mock.AnythingOfType("*domain.Flight")).Return(nil).Once()

	airplaneID := int64(6)
	flight, err := service.UpdateFlight(ctx, 10, UpdateFlightInput{AirplaneID: &airplaneID})

	assert.NoError(t, err)
	assert.Equal(t, int64(6), flight.AirplaneID)
	repo.AssertExpectations(t)
}

func TestFlightService_DeleteFlight_NotFound(t *testing.T) {
	service, repo, _, _ := newTestService()
	ctx := context.Background()

	repo.On("DeleteFlight", ctx, int64(99)).Return(false, nil).Once()

	err := service.DeleteFlight(ctx, 99)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlightService_Audit_ReportsDangling(t *testing.T) {
	service, repo, _, _ := newTestService()
	ctx := context.Background()

	repo.On("CountDangling", ctx).Return(&domain.AuditReport{FlightsMissingRoute: 2}, nil).Once()

	report, err := service.Audit(ctx)

	assert.NoError(t, err)
	assert.False(t, report.Clean())
	assert.Equal(t, int64(2), report.FlightsMissingRoute)
}
