package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockFlightCache struct {
	mock.Mock
}

func (m *MockFlightCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func TestFlightService_List_CacheMiss(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockFlightCache{}
	service := NewFlightService(mockRepo, mockCache, time.Minute)

	ctx := context.Background()
	flights := []domain.Flight{
		{FlightNumber: "FI101", FromAirport: "KEF", ToAirport: "LHR", DepartureTime: time.Now(), ArrivalTime: time.Now().Add(2 * time.Hour)},
	}

	mockCache.On("GetFlights", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx).Return(flights, nil).Once()
	mockCache.On("SetFlights", ctx, flights).Return(nil).Once()

	got, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, got)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockFlightCache{}
	service := NewFlightService(mockRepo, mockCache, time.Minute)

	ctx := context.Background()
	flights := []domain.Flight{{FlightNumber: "FI101"}}

	mockCache.On("GetFlights", ctx).Return(flights, nil).Once()

	got, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, got)
	mockRepo.AssertNotCalled(t, "List")
}

func TestFlightService_List_NoCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil, time.Minute)

	ctx := context.Background()
	flights := []domain.Flight{{FlightNumber: "FI101"}}

	mockRepo.On("List", ctx).Return(flights, nil).Once()

	got, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, got)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_List_RepoError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockFlightCache{}
	service := NewFlightService(mockRepo, mockCache, time.Minute)

	ctx := context.Background()
	repoErr := errors.New("database error")

	mockCache.On("GetFlights", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx).Return([]domain.Flight(nil), repoErr).Once()

	got, err := service.List(ctx)

	assert.Nil(t, got)
	assert.Equal(t, repoErr, err)
	mockCache.AssertNotCalled(t, "SetFlights")
}

func TestFlightService_GetByNumber(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil, time.Minute)

	ctx := context.Background()
	flight := &domain.Flight{FlightNumber: "FI101", FromAirport: "KEF", ToAirport: "LHR"}

	mockRepo.On("GetByNumber", ctx, "FI101").Return(flight, nil).Once()

	got, err := service.GetByNumber(ctx, "FI101")

	assert.NoError(t, err)
	assert.Equal(t, flight, got)
}

func TestFlightService_GetByNumber_NotFound(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil, time.Minute)

	ctx := context.Background()
	mockRepo.On("GetByNumber", ctx, "XX999").Return(nil, domain.ErrNotFound).Once()

	got, err := service.GetByNumber(ctx, "XX999")

	assert.Nil(t, got)
	assert.True(t, domain.IsNotFound(err))
}
