package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Airports      *AirportHandler
	Routes        *RouteHandler
	AirplaneTypes *AirplaneTypeHandler
	Airplanes     *AirplaneHandler
	Crews         *CrewHandler
	Flights       *FlightHandler
	Orders        *OrderHandler
}

// NewRouter mounts the public API under /api/v1 behind bearer auth. health
// serves /healthz and may be nil.
func NewRouter(handlers Handlers, jwtSecret string, health http.Handler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger), Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if health != nil {
		router.GET("/healthz", gin.WrapH(health))
	}

	v1 := router.Group("/api/v1", JWTAuth(jwtSecret))

	catalog := v1.Group("", StaffWrites())
	handlers.Airports.Register(catalog.Group("/airports"))
	handlers.Routes.Register(catalog.Group("/routes"))
	handlers.AirplaneTypes.Register(catalog.Group("/airplane_types"))
	handlers.Airplanes.Register(catalog.Group("/airplanes"))
	handlers.Crews.Register(catalog.Group("/crews"))
	handlers.Flights.Register(catalog.Group("/flights"))

	handlers.Orders.Register(v1.Group("/orders"))

	return router
}
