package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/roombook/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Middleware(t *testing.T) {
	m := New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/rooms/{roomId}/slots", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rooms/"+id+"/slots", nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/api/rooms/{roomId}/slots", "404")))
}

func TestMetrics_TrackBooking(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.TrackBooking("create", nil)
	m.TrackBooking("create", errors.New("boom"))
	m.TrackBooking("create", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookings.WithLabelValues("create", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookings.WithLabelValues("create", "error")))
}

func TestMetrics_TrackSlots(t *testing.T) {
	m := New(prometheus.NewRegistry())

	slots := domain.ResolveSlots(nil, 9, nil, "r1")
	m.TrackSlots(slots)

	assert.Equal(t, 10.0, testutil.ToFloat64(m.slots.WithLabelValues("past")))
	assert.Equal(t, 14.0, testutil.ToFloat64(m.slots.WithLabelValues("available")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New(nil)
	m.TrackBooking("cancel", nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "roombook_booking_operations_total"))
}
