package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooker/internal/domain"
	"github.com/Domenick1991/flightbooker/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, bookingID string) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingUseCase) UpdateBooking(ctx context.Context, bookingID, newSeatNumber string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, newSeatNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetAvailableSeats(ctx context.Context, flightNumber string) ([]domain.Seat, error) {
	args := m.Called(ctx, flightNumber)
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockBookingUseCase) GetBookedSeat(ctx context.Context, bookingID string) (*domain.Seat, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seat), args.Error(1)
}

func (m *MockBookingUseCase) ViewBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetBookingsByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := booking.CreateBookingInput{
		CustomerID:   "C1",
		FlightNumber: "FI101",
		SeatNumber:   "A1",
	}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.Booking{
		ID:           "Babc12345",
		CreatedAt:    time.Now(),
		Status:       domain.BookingStatusConfirmed,
		CustomerID:   "C1",
		FlightNumber: "FI101",
		SeatNumber:   "A1",
	}

	mockService.On("CreateBooking", c.Request.Context(), input).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Babc12345", response.ID)
	assert.Equal(t, string(domain.BookingStatusConfirmed), response.Status)
	assert.Equal(t, "A1", response.SeatNumber)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_ValidationError(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := booking.CreateBookingInput{CustomerID: "C1", FlightNumber: "FI101", SeatNumber: "A1"}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("CreateBooking", c.Request.Context(), input).
		Return(nil, domain.NewValidationError("seat A1 is already booked"))

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already booked")
	mockService.AssertExpectations(t)
}

func TestBookingHandler_view_NotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	c.Request = httptest.NewRequest("GET", "/bookings/missing", nil)

	mockService.On("ViewBooking", c.Request.Context(), "missing").Return(nil, nil)

	handler.view(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_updateSeat(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "Babc12345"}}
	body, _ := json.Marshal(updateBookingRequest{SeatNumber: "A2"})
	c.Request = httptest.NewRequest("PUT", "/bookings/Babc12345/seat", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	updated := &domain.Booking{
		ID:           "Babc12345",
		Status:       domain.BookingStatusConfirmed,
		CustomerID:   "C1",
		FlightNumber: "FI101",
		SeatNumber:   "A2",
	}

	mockService.On("UpdateBooking", c.Request.Context(), "Babc12345", "A2").Return(updated, nil)

	handler.updateSeat(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "A2", response.SeatNumber)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_updateSeat_NotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	body, _ := json.Marshal(updateBookingRequest{SeatNumber: "A2"})
	c.Request = httptest.NewRequest("PUT", "/bookings/missing/seat", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("UpdateBooking", c.Request.Context(), "missing", "A2").
		Return(nil, &domain.NotFoundError{Entity: "booking", ID: "missing"})

	handler.updateSeat(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "Babc12345"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/Babc12345", nil)

	mockService.On("CancelBooking", c.Request.Context(), "Babc12345").Return(true, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "true")
	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel_NotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/missing", nil)

	mockService.On("CancelBooking", c.Request.Context(), "missing").Return(false, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_availableSeats(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "number", Value: "FI101"}}
	c.Request = httptest.NewRequest("GET", "/flights/FI101/seats", nil)

	seats := []domain.Seat{
		{SeatNumber: "A1", FlightNumber: "FI101", Held: false},
		{SeatNumber: "A2", FlightNumber: "FI101", Held: false},
	}
	mockService.On("GetAvailableSeats", c.Request.Context(), "FI101").Return(seats, nil)

	handler.availableSeats(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []seatResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 2)
	assert.Equal(t, "A1", response[0].SeatNumber)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_bookedSeat(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "Babc12345"}}
	c.Request = httptest.NewRequest("GET", "/bookings/Babc12345/seat", nil)

	seat := &domain.Seat{SeatNumber: "A1", FlightNumber: "FI101", Held: true}
	mockService.On("GetBookedSeat", c.Request.Context(), "Babc12345").Return(seat, nil)

	handler.bookedSeat(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response seatResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.Held)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_byCustomer(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "C1"}}
	c.Request = httptest.NewRequest("GET", "/customers/C1/bookings", nil)

	bookings := []domain.Booking{
		{ID: "B1", CustomerID: "C1", FlightNumber: "FI101", SeatNumber: "A1", Status: domain.BookingStatusConfirmed},
		{ID: "B2", CustomerID: "C1", FlightNumber: "FI101", SeatNumber: "B2", Status: domain.BookingStatusCancelled},
	}
	mockService.On("GetBookingsByCustomer", c.Request.Context(), "C1").Return(bookings, nil)

	handler.byCustomer(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 2)
	mockService.AssertExpectations(t)
}
