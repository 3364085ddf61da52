package rooms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/roombook/internal/application/booking"
	"github.com/hilthontt/roombook/internal/domain"
	"github.com/hilthontt/roombook/internal/presentation/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookings struct {
	overview *booking.Overview
	event    domain.Event
	err      error

	gotSession *domain.Session
	gotRoomID  string
	gotHour    domain.Hour
}

func (s *stubBookings) ListRooms(_ context.Context, session *domain.Session) (*booking.Overview, error) {
	s.gotSession = session
	return s.overview, s.err
}

func (s *stubBookings) RoomSlots(_ context.Context, session *domain.Session, roomID string) (*booking.Overview, error) {
	s.gotSession = session
	s.gotRoomID = roomID
	return s.overview, s.err
}

func (s *stubBookings) Book(_ context.Context, session *domain.Session, roomID string, hour domain.Hour) (domain.Event, error) {
	s.gotSession = session
	s.gotRoomID = roomID
	s.gotHour = hour
	return s.event, s.err
}

type stubHub struct {
	roomID string
}

func (h *stubHub) Serve(w http.ResponseWriter, _ *http.Request, roomID string) error {
	h.roomID = roomID
	w.WriteHeader(http.StatusOK)
	return nil
}

type recordingEnder struct {
	ended []string
}

func (e *recordingEnder) Logout(_ context.Context, id string) error {
	e.ended = append(e.ended, id)
	return nil
}

var cookie = utils.CookieOptions{Name: "sid"}

func alice() *domain.Session {
	return domain.NewSession("tok", &domain.User{ID: "u1", Email: "alice@example.com"})
}

func newRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/rooms", h.ListRoomsHandler)
	r.Get("/api/rooms/{roomId}/slots", h.RoomSlotsHandler)
	r.Post("/api/rooms/{roomId}/bookings", h.BookSlotHandler)
	r.Get("/api/rooms/{roomId}/live", h.LiveSlotsHandler)
	return r
}

func serve(h http.Handler, req *http.Request, session *domain.Session) *httptest.ResponseRecorder {
	if session != nil {
		req = req.WithContext(utils.WithSession(req.Context(), "s1", session))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func availability(roomID, number string, statuses map[domain.Hour]domain.SlotStatus) domain.RoomAvailability {
	var slots domain.SlotList
	for h := domain.Hour(0); h < domain.HoursPerDay; h++ {
		slots[h] = domain.Slot{RoomID: roomID, Hour: h.Label(), Status: statuses[h]}
	}
	return domain.RoomAvailability{Room: domain.Room{ID: roomID, Number: number}, Slots: slots}
}

func TestListRoomsHandler(t *testing.T) {
	bookings := &stubBookings{overview: &booking.Overview{
		Viewer: &domain.Viewer{User: domain.User{ID: "u1"}},
		Rooms: []domain.RoomAvailability{
			availability("r1", "C101", map[domain.Hour]domain.SlotStatus{
				9:  domain.SlotPast,
				14: domain.SlotTakenByOther,
				16: domain.SlotTakenByViewer,
			}),
		},
	}}
	router := newRouter(NewHandler(bookings, nil, nil, cookie, nil))

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/rooms", nil), alice())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listRoomsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Authenticated)
	require.Len(t, resp.Rooms, 1)

	room := resp.Rooms[0]
	assert.Equal(t, "Coke", room.Brand)
	require.Len(t, room.Slots, domain.HoursPerDay)

	assert.Equal(t, slotResponse{Hour: "09:00", Status: domain.SlotPast, Label: "09:00"}, room.Slots[9])
	assert.Equal(t, slotResponse{Hour: "10:00", Status: domain.SlotAvailable, Label: "10:00", Bookable: true}, room.Slots[10])
	assert.Equal(t, "Booked", room.Slots[14].Label)
	assert.False(t, room.Slots[14].Bookable)
	assert.Equal(t, "My Booking", room.Slots[16].Label)
	assert.Equal(t, "u1", bookings.gotSession.User.ID)
}

func TestListRoomsHandler_Anonymous(t *testing.T) {
	bookings := &stubBookings{overview: &booking.Overview{
		Rooms: []domain.RoomAvailability{availability("r2", "P201", nil)},
	}}
	router := newRouter(NewHandler(bookings, nil, nil, cookie, nil))

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/rooms", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listRoomsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Authenticated)
	assert.Equal(t, "Pepsi", resp.Rooms[0].Brand)
	assert.Nil(t, bookings.gotSession)
}

func TestListRoomsHandler_SessionExpired(t *testing.T) {
	bookings := &stubBookings{overview: &booking.Overview{
		Rooms:          []domain.RoomAvailability{availability("r1", "C101", nil)},
		SessionExpired: true,
	}}
	ender := &recordingEnder{}
	router := newRouter(NewHandler(bookings, nil, ender, cookie, nil))

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/rooms", nil), alice())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"s1"}, ender.ended)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "sid=;")
}

func TestListRoomsHandler_UpstreamDown(t *testing.T) {
	bookings := &stubBookings{err: errors.Join(domain.ErrUpstream, errors.New("connection refused"))}
	router := newRouter(NewHandler(bookings, nil, nil, cookie, nil))

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/rooms", nil), nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRoomSlotsHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		bookings := &stubBookings{overview: &booking.Overview{
			Rooms: []domain.RoomAvailability{availability("r1", "C101", nil)},
		}}
		router := newRouter(NewHandler(bookings, nil, nil, cookie, nil))

		rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/rooms/r1/slots", nil), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp roomResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "r1", resp.ID)
		assert.Len(t, resp.Slots, domain.HoursPerDay)
		assert.Equal(t, "r1", bookings.gotRoomID)
	})

	t.Run("malformed room id", func(t *testing.T) {
		bookings := &stubBookings{}
		router := newRouter(NewHandler(bookings, nil, nil, cookie, nil))

		rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/rooms/r%201/slots", nil), nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, bookings.gotRoomID)
	})

	t.Run("unknown room", func(t *testing.T) {
		bookings := &stubBookings{err: domain.ErrRoomNotFound}
		router := newRouter(NewHandler(bookings, nil, nil, cookie, nil))

		rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/rooms/nope/slots", nil), nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestBookSlotHandler(t *testing.T) {
	start := time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)
	bookings := &stubBookings{event: domain.Event{ID: "e9", RoomID: "r1", StartTime: start}}
	router := newRouter(NewHandler(bookings, nil, nil, cookie, nil))

	body := bytes.NewBufferString(`{"hour":"15:00"}`)
	rec := serve(router, httptest.NewRequest(http.MethodPost, "/api/rooms/r1/bookings", body), alice())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp bookSlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, bookSlotResponse{
		EventID:   "e9",
		RoomID:    "r1",
		Hour:      "15:00",
		StartTime: "2024-05-01T15:00:00Z",
	}, resp)
	assert.Equal(t, domain.Hour(15), bookings.gotHour)
	assert.Equal(t, "r1", bookings.gotRoomID)
}

func TestBookSlotHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantEnded  bool
	}{
		{name: "invalid hour", body: `{"hour":"24"}`, wantStatus: http.StatusBadRequest},
		{name: "malformed body", body: `{"hour":`, wantStatus: http.StatusBadRequest},
		{name: "slot taken", body: `{"hour":"14"}`, err: domain.ErrSlotUnavailable, wantStatus: http.StatusConflict},
		{name: "token rejected", body: `{"hour":"14"}`, err: domain.ErrUnauthenticated, wantStatus: http.StatusUnauthorized, wantEnded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ender := &recordingEnder{}
			router := newRouter(NewHandler(&stubBookings{err: tt.err}, nil, ender, cookie, nil))

			req := httptest.NewRequest(http.MethodPost, "/api/rooms/r1/bookings", bytes.NewBufferString(tt.body))
			rec := serve(router, req, alice())

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantEnded {
				assert.Equal(t, []string{"s1"}, ender.ended)
			} else {
				assert.Empty(t, ender.ended)
			}
		})
	}
}

func TestLiveSlotsHandler(t *testing.T) {
	hub := &stubHub{}
	router := newRouter(NewHandler(&stubBookings{}, hub, nil, cookie, nil))

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/rooms/r1/live", nil), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "r1", hub.roomID)
}
