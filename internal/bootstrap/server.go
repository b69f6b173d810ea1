package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/flightbooker/api"
	"github.com/Domenick1991/flightbooker/config"
	"github.com/Domenick1991/flightbooker/internal/service/booking"
	"github.com/Domenick1991/flightbooker/internal/service/customers"
	"github.com/Domenick1991/flightbooker/internal/service/flights"
	"github.com/gin-gonic/gin"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, bookingSvc booking.BookingUseCase, flightSvc flights.FlightUseCase, customerSvc customers.CustomerUseCase) error {
	router := gin.Default()

	bookingHandler := api.NewBookingHandler(bookingSvc)
	flightHandler := api.NewFlightHandler(flightSvc)
	customerHandler := api.NewCustomerHandler(customerSvc)

	bookingsGroup := router.Group("/bookings")
	bookingHandler.Register(bookingsGroup)

	flightsGroup := router.Group("/flights")
	flightHandler.Register(flightsGroup)
	bookingHandler.RegisterFlightSeats(flightsGroup)

	customersGroup := router.Group("/customers")
	customerHandler.Register(customersGroup)
	bookingHandler.RegisterCustomerBookings(customersGroup)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
