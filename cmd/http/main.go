package main

import (
	"context"
	"expvar"
	"log"
	"net/http"
	"runtime"
	"slices"

	"github.com/hilthontt/roombook/internal/application/auth"
	"github.com/hilthontt/roombook/internal/application/booking"
	"github.com/hilthontt/roombook/internal/domain"
	"github.com/hilthontt/roombook/internal/infrastructure/configs"
	"github.com/hilthontt/roombook/internal/infrastructure/gateway"
	"github.com/hilthontt/roombook/internal/infrastructure/graphql"
	"github.com/hilthontt/roombook/internal/infrastructure/logging"
	"github.com/hilthontt/roombook/internal/infrastructure/messaging"
	"github.com/hilthontt/roombook/internal/infrastructure/metrics"
	"github.com/hilthontt/roombook/internal/infrastructure/ratelimiter"
	"github.com/hilthontt/roombook/internal/infrastructure/session"
	"github.com/hilthontt/roombook/internal/infrastructure/tracing"
	"github.com/hilthontt/roombook/internal/infrastructure/ws"
	"github.com/hilthontt/roombook/internal/presentation/api"
	appointmentsHandler "github.com/hilthontt/roombook/internal/presentation/handler/appointments"
	authHandler "github.com/hilthontt/roombook/internal/presentation/handler/auth"
	healthHandler "github.com/hilthontt/roombook/internal/presentation/handler/health"
	roomHandler "github.com/hilthontt/roombook/internal/presentation/handler/rooms"
	"github.com/redis/go-redis/v9"
)

const serviceName = "roombook"

func main() {
	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(&logging.LoggerConfig{
		FilePath: cfg.Logger.FilePath,
		Encoding: cfg.Logger.Encoding,
		Level:    cfg.Logger.Level,
		Logger:   cfg.Logger.Logger,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	shutdownTracer, err := tracing.InitTracer(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: serviceName,
		Environment: cfg.Tracing.Environment,
		Exporter:    cfg.Tracing.Exporter,
		Endpoint:    cfg.Tracing.Endpoint,
	})
	if err != nil {
		logger.Fatal(logging.General, logging.Startup, "failed to initialize tracer", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
	}
	defer shutdownTracer(context.Background())

	checks := map[string]healthHandler.Check{}

	var redisClient *redis.Client
	if cfg.UsesRedis() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	var sessions domain.SessionStore
	switch cfg.Session.Backend {
	case configs.BackendRedis:
		sessions = session.NewRedisStore(redisClient, cfg.Session.TTL)
	default:
		memoryStore := session.NewMemoryStore(cfg.Session.TTL)
		defer memoryStore.Close()
		sessions = memoryStore
	}

	var limiterCache ratelimiter.GetterSetter
	switch cfg.RateLimiter.Backend {
	case configs.BackendRedis:
		limiterCache = ratelimiter.NewRedis(redisClient)
	default:
		limiterCache = ratelimiter.NewInMemory()
	}
	defer limiterCache.Close()

	rateLimiter := ratelimiter.New(ratelimiter.Options{
		MaxRatePerSecond: cfg.RateLimiter.MaxRatePerSecond,
		MaxBurst:         cfg.RateLimiter.MaxBurst,
		Cache:            limiterCache,
		CacheTTL:         cfg.RateLimiter.CacheTTL,
		SourceHeaderKey:  cfg.RateLimiter.SourceHeaderKey,
	})

	client := graphql.NewClient(cfg.Upstream.GraphQLURL,
		graphql.WithTimeout(cfg.Upstream.Timeout),
		graphql.WithMaxRetries(cfg.Upstream.MaxRetries),
		graphql.WithLogger(logger),
	)
	upstream := gateway.New(client, logger)

	var publisher domain.BookingPublisher = messaging.NopPublisher{}
	if cfg.Broker.Enabled {
		rabbit, err := messaging.NewRabbitMQ(cfg.Broker.URI, cfg.Broker.Exchange)
		if err != nil {
			logger.Fatal(logging.RabbitMQ, logging.Startup, "failed to connect to broker", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		}
		defer rabbit.Close()
		publisher = messaging.NewBookingPublisher(rabbit, rabbit.Exchange())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := ws.NewCore(logger, checkOrigin(cfg.HTTP.AllowedOrigins))
	go hub.Run(ctx)

	m := metrics.New(nil)

	bookingService := booking.NewService(upstream, hub, publisher, logger, booking.WithRecorder(m))
	authService := auth.NewService(upstream, sessions, logger)

	cookie := api.CookieOptions(cfg.Session)
	handlers := api.Handlers{
		Rooms:        roomHandler.NewHandler(bookingService, hub, authService, cookie, logger),
		Appointments: appointmentsHandler.NewHandler(bookingService, authService, cookie),
		Auth:         authHandler.NewHandler(authService, cookie),
		Health:       healthHandler.NewHandler(checks),
	}

	app := api.NewApplication(*cfg, handlers, authService, logger, rateLimiter, m)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		logger.Fatal(logging.General, logging.Shutdown, "server stopped", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}
