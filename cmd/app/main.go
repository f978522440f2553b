package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airport/api"
	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/bootstrap"
	"github.com/Domenick1991/airport/internal/cache"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/logger"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/Domenick1991/airport/internal/service/orders"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"google.golang.org/grpc/health"
)

func main() {
	app := &cli.App{
		Name:  "airport",
		Usage: "Airport flight booking API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the YAML config",
				Value:   "config.yaml",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP and gRPC servers",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply the database schema",
				Action: migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup(c *cli.Context) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	lg, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, lg, nil
}

func migrate(c *cli.Context) error {
	cfg, lg, err := setup(c)
	if err != nil {
		return err
	}
	defer lg.Sync()

	pool, err := pgxpool.New(c.Context, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := repository.Migrate(c.Context, pool); err != nil {
		return err
	}
	lg.Info("schema applied")
	return nil
}

func serve(c *cli.Context) error {
	cfg, lg, err := setup(c)
	if err != nil {
		return err
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Cache.FlightsTTL())
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, lg)
	defer producer.Close()

	airportRepo := repository.NewAirportRepository(pool)
	routeRepo := repository.NewRouteRepository(pool)
	airplaneTypeRepo := repository.NewAirplaneTypeRepository(pool)
	airplaneRepo := repository.NewAirplaneRepository(pool)
	crewRepo := repository.NewCrewRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	flightService := flights.NewFlightService(flightRepo, routeRepo, airplaneRepo, redisCache, lg)
	orderService := orders.NewOrderService(
		orderRepo,
		flightRepo,
		redisCache,
		producer,
		cfg.Kafka.OrderEventsTopic,
		lg,
		orders.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	healthSrv := health.NewServer()
	healthHandler, err := bootstrap.HealthHandler(healthSrv)
	if err != nil {
		return err
	}
	router := api.NewRouter(api.Handlers{
		Airports:      api.NewAirportHandler(catalog.NewAirportService(airportRepo, routeRepo, redisCache, lg), lg),
		Routes:        api.NewRouteHandler(catalog.NewRouteService(routeRepo, redisCache, lg), lg),
		AirplaneTypes: api.NewAirplaneTypeHandler(catalog.NewAirplaneTypeService(airplaneTypeRepo, redisCache, lg), lg),
		Airplanes:     api.NewAirplaneHandler(catalog.NewAirplaneService(airplaneRepo, redisCache, lg), lg),
		Crews:         api.NewCrewHandler(catalog.NewCrewService(crewRepo, redisCache, lg), lg),
		Flights:       api.NewFlightHandler(flightService, lg),
		Orders:        api.NewOrderHandler(orderService, lg),
	}, cfg.Auth.JWTSecret, healthHandler, lg)

	prober := bootstrap.NewProber(healthSrv, cfg.Health.ProbeInterval(), lg,
		bootstrap.Probe{Name: "postgres", Pinger: pool},
		bootstrap.Probe{Name: "redis", Pinger: redisCache},
		bootstrap.Probe{Name: "kafka", Pinger: producer},
	)

	servers := bootstrap.NewServers(cfg, router, healthSrv)
	if err := bootstrap.Run(ctx, cfg, servers, prober, lg); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
