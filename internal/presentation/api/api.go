package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hilthontt/roombook/internal/domain"
	"github.com/hilthontt/roombook/internal/infrastructure/configs"
	"github.com/hilthontt/roombook/internal/infrastructure/logging"
	"github.com/hilthontt/roombook/internal/infrastructure/metrics"
	"github.com/hilthontt/roombook/internal/infrastructure/ratelimiter"
	appointmentsHandler "github.com/hilthontt/roombook/internal/presentation/handler/appointments"
	authHandler "github.com/hilthontt/roombook/internal/presentation/handler/auth"
	healthHandler "github.com/hilthontt/roombook/internal/presentation/handler/health"
	roomHandler "github.com/hilthontt/roombook/internal/presentation/handler/rooms"
	"github.com/hilthontt/roombook/internal/presentation/utils"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const requestTimeout = 60 * time.Second

// SessionReader resolves a session id from the cookie.
type SessionReader interface {
	Current(ctx context.Context, id string) (*domain.Session, error)
}

type Handlers struct {
	Rooms        *roomHandler.Handler
	Appointments *appointmentsHandler.Handler
	Auth         *authHandler.Handler
	Health       *healthHandler.Handler
}

type Application struct {
	config      configs.Config
	handlers    Handlers
	sessions    SessionReader
	logger      logging.Logger
	ratelimiter ratelimiter.Limiter
	metrics     *metrics.Metrics
	cookie      utils.CookieOptions
}

func NewApplication(
	config configs.Config,
	handlers Handlers,
	sessions SessionReader,
	logger logging.Logger,
	ratelimiter ratelimiter.Limiter,
	metrics *metrics.Metrics,
) *Application {
	return &Application{
		config:      config,
		handlers:    handlers,
		sessions:    sessions,
		logger:      logger,
		ratelimiter: ratelimiter,
		metrics:     metrics,
		cookie:      CookieOptions(config.Session),
	}
}

func CookieOptions(cfg configs.SessionConfig) utils.CookieOptions {
	return utils.CookieOptions{
		Name:   cfg.CookieName,
		Secure: cfg.CookieSecure,
		TTL:    cfg.TTL,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.metrics.Middleware)
	r.Use(app.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(app.enableCors)

	r.Handle("/metrics", app.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.handlers.Health.GetHealth)
		r.Get("/healthz", app.handlers.Health.GetHealth)
		r.Get("/live", app.handlers.Health.GetHealth)
		r.Get("/ready", app.handlers.Health.GetReady)

		// long-lived, so outside the request timeout
		r.With(app.rateLimiterMiddleware).Get("/rooms/{roomId}/live", app.handlers.Rooms.LiveSlotsHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout))
			r.Use(app.rateLimiterMiddleware)
			r.Use(app.sessionMiddleware)

			r.Post("/auth/signup", app.handlers.Auth.SignupHandler)
			r.Post("/auth/login", app.handlers.Auth.LoginHandler)
			r.Post("/auth/logout", app.handlers.Auth.LogoutHandler)

			r.Get("/rooms", app.handlers.Rooms.ListRoomsHandler)
			r.Get("/rooms/{roomId}/slots", app.handlers.Rooms.RoomSlotsHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.requireSession)

				r.Get("/auth/me", app.handlers.Auth.MeHandler)
				r.Post("/rooms/{roomId}/bookings", app.handlers.Rooms.BookSlotHandler)
				r.Get("/appointments", app.handlers.Appointments.ListAppointmentsHandler)
				r.Delete("/appointments/{eventId}", app.handlers.Appointments.CancelAppointmentHandler)
			})
		})
	})

	return r
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.HTTP.Addr(),
		Handler:      otelhttp.NewHandler(mux, "roombook-http"),
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Info(logging.General, logging.Shutdown, "signal caught", map[logging.ExtraKey]any{
			"Signal": s.String(),
		})

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
		"Addr": srv.Addr,
	})

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		"Addr": srv.Addr,
	})

	return nil
}
