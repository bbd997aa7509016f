package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/melnyk-o/airport-api/api"
	"github.com/melnyk-o/airport-api/config"
	"github.com/melnyk-o/airport-api/internal/repository"
	"github.com/melnyk-o/airport-api/internal/service/auth"
	"github.com/melnyk-o/airport-api/internal/service/booking"
	"github.com/melnyk-o/airport-api/internal/service/flights"
)

// NewRouter assembles the full HTTP surface: public auth endpoints and
// the authenticated API group.
func NewRouter(
	cfg *config.Config,
	authSvc auth.AuthUseCase,
	flightSvc flights.FlightUseCase,
	bookingSvc booking.BookingUseCase,
	catalog repository.CatalogRepository,
) *gin.Engine {
	router := gin.Default()

	v1 := router.Group("/api/v1")
	api.NewAuthHandler(authSvc).Register(v1)

	authed := v1.Group("")
	authed.Use(api.Auth(authSvc))

	adminOnly := api.AdminOnly()
	api.NewCatalogHandler(catalog).Register(authed, adminOnly)
	api.NewFlightHandler(flightSvc).Register(authed.Group("/flights"), adminOnly)

	orders := authed.Group("/orders")
	orders.Use(api.RateLimit(cfg.Booking.OrdersRatePerSec, cfg.Booking.OrdersRateBurst))
	api.NewOrderHandler(bookingSvc).Register(orders)

	return router
}

// Run serves the handler until the context is canceled or the server
// fails, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
