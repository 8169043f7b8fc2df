package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/utopia-air/flightnet/api"
	"github.com/utopia-air/flightnet/config"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, airports *api.AirportHandler, routes *api.RouteHandler, fleet *api.FleetHandler, flights *api.FlightHandler) error {
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "Flights service is present and ready for action."})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "Healthy"})
	})

	v2 := router.Group("/api/v2")
	airports.Register(v2.Group("/airports"))
	routes.Register(v2.Group("/routes"))
	fleet.Register(v2.Group("/airplane_types"), v2.Group("/airplanes"))
	flights.Register(v2.Group("/flights"))

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
