package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/utopia-air/flightnet/internal/domain"
	"github.com/utopia-air/flightnet/internal/service/network"
)

// MockNetworkUseCase is a mock implementation of network.NetworkUseCase
type MockNetworkUseCase struct {
	mock.Mock
}

func (m *MockNetworkUseCase) CreateAirport(ctx context.Context, input network.CreateAirportInput) (*domain.Airport, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockNetworkUseCase) GetAirport(ctx context.Context, iata string) (*domain.Airport, error) {
	args := m.Called(ctx, iata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockNetworkUseCase) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockNetworkUseCase) ListAirportsByCity(ctx context.Context, city string) ([]domain.Airport, error) {
	args := m.Called(ctx, city)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockNetworkUseCase) UpdateAirport(ctx context.Context, iata string, input network.UpdateAirportInput) (*domain.Airport, error) {
	args := m.Called(ctx, iata, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockNetworkUseCase) DeleteAirport(ctx context.Context, iata string) (*domain.DeletedSet, error) {
	args := m.Called(ctx, iata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeletedSet), args.Error(1)
}

func (m *MockNetworkUseCase) CreateRoute(ctx context.Context, input network.CreateRouteInput) (*domain.Route, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockNetworkUseCase) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockNetworkUseCase) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockNetworkUseCase) ListRoutesByOrigin(ctx context.Context, iata string) ([]domain.Route, error) {
	args := m.Called(ctx, iata)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockNetworkUseCase) ListRoutesByDestination(ctx context.Context, iata string) ([]domain.Route, error) {
	args := m.Called(ctx, iata)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockNetworkUseCase) DeleteRoute(ctx context.Context, id int64) (*domain.DeletedSet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeletedSet), args.Error(1)
}

func TestAirportHandler_create(t *testing.T) {
	mockService := &MockNetworkUseCase{}
	handler := NewAirportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"iata_id":"JFK","city":"New York","name":"John F. Kennedy International","longitude":-73.7789,"latitude":40.6398,"elevation":13}`
	c.Request = httptest.NewRequest("POST", "/airports", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	airport := &domain.Airport{IATA: "JFK", City: "New York", Name: "John F. Kennedy International", Longitude: -73.7789, Latitude: 40.6398, Elevation: 13}

	mockService.On("CreateAirport", c.Request.Context(), mock.AnythingOfType("network.CreateAirportInput")).Return(airport, nil)

	handler.create(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"iata_id":"JFK"`)

	mockService.AssertExpectations(t)
}

func TestAirportHandler_create_conflict(t *testing.T) {
	mockService := &MockNetworkUseCase{}
	handler := NewAirportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"iata_id":"JFK","city":"New York","name":"JFK"}`
	c.Request = httptest.NewRequest("POST", "/airports", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	conflict := &domain.ConflictError{Entity: "airport", Field: "IATA code", ExistingKey: "JFK"}
	mockService.On("CreateAirport", c.Request.Context(), mock.AnythingOfType("network.CreateAirportInput")).Return(nil, conflict)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestAirportHandler_list_empty(t *testing.T) {
	mockService := &MockNetworkUseCase{}
	handler := NewAirportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/airports", nil)

	mockService.On("ListAirports", c.Request.Context()).Return([]domain.Airport{}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No airports found")
}

func TestAirportHandler_get_notFound(t *testing.T) {
	mockService := &MockNetworkUseCase{}
	handler := NewAirportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "iata", Value: "ZZZ"}}
	c.Request = httptest.NewRequest("GET", "/airports/ZZZ", nil)

	mockService.On("GetAirport", c.Request.Context(), "ZZZ").Return(nil, domain.ErrNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAirportHandler_remove(t *testing.T) {
	mockService := &MockNetworkUseCase{}
	handler := NewAirportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "iata", Value: "JFK"}}
	c.Request = httptest.NewRequest("DELETE", "/airports/JFK", nil)

	set := &domain.DeletedSet{Airports: []string{"JFK"}, Routes: []int64{1, 2}, Flights: []int64{10}}
	mockService.On("DeleteAirport", c.Request.Context(), "JFK").Return(set, nil)

	handler.remove(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)

	mockService.AssertExpectations(t)
}
