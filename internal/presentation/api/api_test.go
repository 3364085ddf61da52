package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hilthontt/roombook/internal/application/booking"
	"github.com/hilthontt/roombook/internal/domain"
	"github.com/hilthontt/roombook/internal/infrastructure/configs"
	"github.com/hilthontt/roombook/internal/infrastructure/logging"
	"github.com/hilthontt/roombook/internal/infrastructure/metrics"
	"github.com/hilthontt/roombook/internal/infrastructure/ratelimiter"
	"github.com/hilthontt/roombook/internal/infrastructure/session"
	appointmentsHandler "github.com/hilthontt/roombook/internal/presentation/handler/appointments"
	authHandler "github.com/hilthontt/roombook/internal/presentation/handler/auth"
	healthHandler "github.com/hilthontt/roombook/internal/presentation/handler/health"
	roomHandler "github.com/hilthontt/roombook/internal/presentation/handler/rooms"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookings struct{}

func (stubBookings) ListRooms(context.Context, *domain.Session) (*booking.Overview, error) {
	return &booking.Overview{}, nil
}

func (stubBookings) RoomSlots(context.Context, *domain.Session, string) (*booking.Overview, error) {
	return nil, domain.ErrRoomNotFound
}

func (stubBookings) Book(context.Context, *domain.Session, string, domain.Hour) (domain.Event, error) {
	return domain.Event{}, domain.ErrSlotUnavailable
}

func (stubBookings) Appointments(context.Context, *domain.Session) ([]domain.Appointment, error) {
	return []domain.Appointment{}, nil
}

func (stubBookings) Cancel(context.Context, *domain.Session, string) (string, error) {
	return domain.EventDeletedMessage, nil
}

// storeSessions adapts a session store to the reader and ender interfaces.
type storeSessions struct {
	store *session.MemoryStore
}

func (s storeSessions) Current(ctx context.Context, id string) (*domain.Session, error) {
	return s.store.Get(ctx, id)
}

func (s storeSessions) Logout(ctx context.Context, id string) error {
	return s.store.Clear(ctx, id)
}

func (s storeSessions) Login(context.Context, string, string) (string, *domain.Session, error) {
	return "", nil, domain.ErrInvalidCredentials
}

func (s storeSessions) Signup(context.Context, string, string) (string, *domain.Session, error) {
	return "", nil, domain.ErrInvalidCredentials
}

type testApp struct {
	handler http.Handler
	store   *session.MemoryStore
}

func newTestApp(t *testing.T, limits ratelimiter.Options) *testApp {
	t.Helper()

	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(func() { _ = store.Close() })
	sessions := storeSessions{store: store}

	cfg := configs.Config{
		HTTP:    configs.HTTPConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Session: configs.SessionConfig{CookieName: "sid"},
	}
	cookie := CookieOptions(cfg.Session)

	logger := logging.NewNop()
	handlers := Handlers{
		Rooms:        roomHandler.NewHandler(stubBookings{}, nil, sessions, cookie, logger),
		Appointments: appointmentsHandler.NewHandler(stubBookings{}, sessions, cookie),
		Auth:         authHandler.NewHandler(sessions, cookie),
		Health:       healthHandler.NewHandler(nil),
	}

	if limits.MaxRatePerSecond == 0 {
		limits.MaxRatePerSecond = 1000
	}

	app := NewApplication(cfg, handlers, sessions, logger, ratelimiter.New(limits), metrics.New(prometheus.NewRegistry()))
	return &testApp{handler: app.Mount(), store: store}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestMount_Health(t *testing.T) {
	app := newTestApp(t, ratelimiter.Options{})

	for _, path := range []string{"/api/health", "/api/healthz", "/api/live", "/api/ready"} {
		rec := app.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestMount_OptionalSession(t *testing.T) {
	app := newTestApp(t, ratelimiter.Options{})

	rec := app.do(httptest.NewRequest(http.MethodGet, "/api/rooms", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1000", rec.Header().Get("X-RateLimit-Limit"))
}

func TestMount_RequireSession(t *testing.T) {
	app := newTestApp(t, ratelimiter.Options{})

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/appointments"},
		{http.MethodDelete, "/api/appointments/e1"},
		{http.MethodPost, "/api/rooms/r1/bookings"},
	}

	for _, tt := range tests {
		rec := app.do(httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tt.path)
	}
}

func TestMount_SessionCookie(t *testing.T) {
	app := newTestApp(t, ratelimiter.Options{})
	user := &domain.User{ID: "u1", Email: "alice@example.com"}
	require.NoError(t, app.store.Set(context.Background(), "s1", domain.NewSession("tok", user)))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "s1"})
	rec := app.do(req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User domain.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, *user, resp.User)
}

func TestMount_StaleCookieIsCleared(t *testing.T) {
	app := newTestApp(t, ratelimiter.Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "gone"})
	rec := app.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "sid=;")
}

func TestMount_RateLimit(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	app := newTestApp(t, ratelimiter.Options{
		MaxRatePerSecond: 1,
		MaxBurst:         1,
		Now:              func() time.Time { return now },
	})

	first := app.do(httptest.NewRequest(http.MethodGet, "/api/rooms", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := app.do(httptest.NewRequest(http.MethodGet, "/api/rooms", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}

func TestMount_CORS(t *testing.T) {
	app := newTestApp(t, ratelimiter.Options{})

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/rooms", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := app.do(req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := app.do(req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestMount_Metrics(t *testing.T) {
	app := newTestApp(t, ratelimiter.Options{})

	app.do(httptest.NewRequest(http.MethodGet, "/api/rooms", nil))

	rec := app.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `roombook_http_requests_total{method="GET",route="/api/rooms",status="200"} 1`)
}
