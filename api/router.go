// Package api is the REST surface of the booking backend.
package api

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/skylinetravels/flightbooking/internal/service/booking"
	"github.com/skylinetravels/flightbooking/internal/service/destinations"
	"github.com/skylinetravels/flightbooking/internal/service/flights"
	"github.com/skylinetravels/flightbooking/internal/service/users"
)

// SwaggerFile is the document served at /swagger/doc.json from the swagger directory.
const SwaggerFile = "flightbooking.swagger.json"

type Services struct {
	Users        users.UserUseCase
	Flights      flights.FlightUseCase
	Destinations destinations.DestinationUseCase
	Bookings     booking.BookingUseCase
}

type RouterConfig struct {
	Logger         *slog.Logger
	Policy         Authorizer
	RequestTimeout time.Duration
	SwaggerDir     string
}

func NewRouter(cfg RouterConfig, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(cfg.Logger), CORS())

	if cfg.SwaggerDir != "" {
		r.StaticFile("/swagger/doc.json", filepath.Join(cfg.SwaggerDir, SwaggerFile))
		r.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))
	}

	api := r.Group("/api", Timeout(cfg.RequestTimeout), Authenticate(svc.Users), Authorize(cfg.Policy))
	api.GET("/health", health)

	NewAuthHandler(svc.Users).Register(api.Group("/auth"))
	NewFlightHandler(svc.Flights).Register(api.Group("/flights"))
	NewDestinationHandler(svc.Destinations).Register(api.Group("/destinations"))
	NewBookingHandler(svc.Bookings).Register(api.Group("/bookings"))
	NewUserHandler(svc.Users).Register(api.Group("/users"))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
	return r
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Server is running"})
}
