package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/flightbooker/internal/domain"
	"github.com/Domenick1991/flightbooker/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	CustomerID   string `json:"customer_id"`
	FlightNumber string `json:"flight_number"`
	SeatNumber   string `json:"seat_number"`
}

type updateBookingRequest struct {
	SeatNumber string `json:"seat_number"`
}

type bookingResponse struct {
	ID           string `json:"id"`
	CreatedAt    string `json:"created_at"`
	Status       string `json:"status"`
	CustomerID   string `json:"customer_id"`
	FlightNumber string `json:"flight_number"`
	SeatNumber   string `json:"seat_number"`
}

type seatResponse struct {
	SeatNumber   string `json:"seat_number"`
	FlightNumber string `json:"flight_number"`
	Held         bool   `json:"held"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:id", h.view)
	router.GET("/:id/seat", h.bookedSeat)
	router.PUT("/:id/seat", h.updateSeat)
	router.DELETE("/:id", h.cancel)
}

// RegisterFlightSeats exposes the availability view under the flights group.
func (h *BookingHandler) RegisterFlightSeats(router *gin.RouterGroup) {
	router.GET("/:number/seats", h.availableSeats)
}

// RegisterCustomerBookings exposes per-customer booking lists under the
// customers group.
func (h *BookingHandler) RegisterCustomerBookings(router *gin.RouterGroup) {
	router.GET("/:id/bookings", h.byCustomer)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		CustomerID:   req.CustomerID,
		FlightNumber: req.FlightNumber,
		SeatNumber:   req.SeatNumber,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) view(c *gin.Context) {
	b, err := h.service.ViewBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) bookedSeat(c *gin.Context) {
	seat, err := h.service.GetBookedSeat(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if seat == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, seatResponse{SeatNumber: seat.SeatNumber, FlightNumber: seat.FlightNumber, Held: seat.Held})
}

func (h *BookingHandler) updateSeat(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateBooking(c.Request.Context(), c.Param("id"), req.SeatNumber)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	cancelled, err := h.service.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !cancelled {
		c.JSON(http.StatusNotFound, gin.H{"cancelled": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

func (h *BookingHandler) availableSeats(c *gin.Context) {
	seats, err := h.service.GetAvailableSeats(c.Request.Context(), c.Param("number"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp := make([]seatResponse, 0, len(seats))
	for _, s := range seats {
		resp = append(resp, seatResponse{SeatNumber: s.SeatNumber, FlightNumber: s.FlightNumber, Held: s.Held})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) byCustomer(c *gin.Context) {
	bookings, err := h.service.GetBookingsByCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, *toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func toBookingResponse(b *domain.Booking) *bookingResponse {
	return &bookingResponse{
		ID:           b.ID,
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
		Status:       string(b.Status),
		CustomerID:   b.CustomerID,
		FlightNumber: b.FlightNumber,
		SeatNumber:   b.SeatNumber,
	}
}

func statusFor(err error) int {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case domain.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
