package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hilthontt/roombook/internal/domain"
	"github.com/hilthontt/roombook/internal/infrastructure/logging"
	"github.com/hilthontt/roombook/internal/infrastructure/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "roombook/booking"

	OperationCreate = "create"
	OperationCancel = "cancel"
)

// Recorder receives booking metrics.
type Recorder interface {
	TrackBooking(operation string, err error)
	TrackSlots(slots domain.SlotList)
}

type nopRecorder struct{}

func (nopRecorder) TrackBooking(string, error) {}
func (nopRecorder) TrackSlots(domain.SlotList) {}

// Overview is the slot grid of one or more rooms as seen by one viewer.
type Overview struct {
	Viewer *domain.Viewer
	Rooms  []domain.RoomAvailability
	// SessionExpired is set when the caller presented a session the booking
	// API no longer accepts; the rooms are then resolved anonymously.
	SessionExpired bool
}

type Service struct {
	gateway   domain.BookingGateway
	notifier  domain.SlotChangeNotifier
	publisher domain.BookingPublisher
	recorder  Recorder
	logger    logging.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

func NewService(
	gateway domain.BookingGateway,
	notifier domain.SlotChangeNotifier,
	publisher domain.BookingPublisher,
	logger logging.Logger,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}

	s := &Service{
		gateway:   gateway,
		notifier:  notifier,
		publisher: publisher,
		recorder:  nopRecorder{},
		logger:    logger,
		tracer:    tracing.GetTracer(tracerName),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ListRooms resolves the slots of every room. A nil or unauthenticated
// session yields the anonymous view.
func (s *Service) ListRooms(ctx context.Context, session *domain.Session) (*Overview, error) {
	rooms, err := s.gateway.Rooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	overview, err := s.viewerOverview(ctx, session)
	if err != nil {
		return nil, err
	}

	overview.Rooms = s.resolve(ctx, rooms, overview.viewerEvents())
	return overview, nil
}

// RoomSlots resolves the slots of a single room.
func (s *Service) RoomSlots(ctx context.Context, session *domain.Session, roomID string) (*Overview, error) {
	rooms, err := s.gateway.Rooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("room slots: %w", err)
	}

	room, err := findRoom(rooms, roomID)
	if err != nil {
		return nil, err
	}

	overview, err := s.viewerOverview(ctx, session)
	if err != nil {
		return nil, err
	}

	overview.Rooms = s.resolve(ctx, []domain.Room{room}, overview.viewerEvents())
	return overview, nil
}

// Book reserves hour in roomID for the session's user. Only an available
// slot can be booked.
func (s *Service) Book(ctx context.Context, session *domain.Session, roomID string, hour domain.Hour) (domain.Event, error) {
	event, err := s.book(ctx, session, roomID, hour)
	s.recorder.TrackBooking(OperationCreate, err)
	return event, err
}

func (s *Service) book(ctx context.Context, session *domain.Session, roomID string, hour domain.Hour) (domain.Event, error) {
	if !session.Authenticated() {
		return domain.Event{}, domain.ErrUnauthenticated
	}
	if !hour.Valid() {
		return domain.Event{}, fmt.Errorf("%w: %d", domain.ErrInvalidHour, int(hour))
	}

	rooms, err := s.gateway.Rooms(ctx)
	if err != nil {
		return domain.Event{}, fmt.Errorf("book: %w", err)
	}

	room, err := findRoom(rooms, roomID)
	if err != nil {
		return domain.Event{}, err
	}

	viewer, err := s.gateway.Viewer(ctx, session.Token)
	if err != nil {
		return domain.Event{}, fmt.Errorf("book: %w", err)
	}

	now := s.now()
	slots := domain.ResolveSlots(room.Events, domain.ReferenceHour(now), viewer.Events, room.ID)
	if !slots.Bookable(hour) {
		return domain.Event{}, fmt.Errorf("%w: %s is %s", domain.ErrSlotUnavailable, hour.Label(), slots.At(hour).Status)
	}

	booking, err := domain.NewBooking(&viewer.User, &room, hour, now)
	if err != nil {
		return domain.Event{}, err
	}

	id, err := s.gateway.CreateEvent(ctx, session.Token, booking)
	if err != nil {
		return domain.Event{}, fmt.Errorf("book: %w", err)
	}

	event := domain.Event{
		ID:         id,
		Name:       booking.Name,
		StartTime:  booking.StartTime,
		EndTime:    booking.StartTime.Add(domain.EventDuration),
		RoomID:     room.ID,
		RoomNumber: room.Number,
		UserID:     viewer.User.ID,
		UserEmail:  viewer.User.Email,
	}

	s.logger.Info(logging.Booking, logging.Create, "slot booked", map[logging.ExtraKey]any{
		logging.EventID: id,
		logging.RoomID:  room.ID,
		logging.UserID:  viewer.User.ID,
		logging.Hour:    hour.Label(),
	})

	s.afterChange(ctx, OperationCreate, event)
	return event, nil
}

// Appointments lists the viewer's bookings, earliest first.
func (s *Service) Appointments(ctx context.Context, session *domain.Session) ([]domain.Appointment, error) {
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	viewer, err := s.gateway.Viewer(ctx, session.Token)
	if err != nil {
		return nil, fmt.Errorf("appointments: %w", err)
	}

	events := make([]domain.Event, len(viewer.Events))
	copy(events, viewer.Events)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})

	appointments := make([]domain.Appointment, 0, len(events))
	for _, e := range events {
		appointments = append(appointments, domain.NewAppointment(e))
	}

	return appointments, nil
}

// Cancel deletes one of the viewer's own bookings and returns the booking
// API's confirmation message.
func (s *Service) Cancel(ctx context.Context, session *domain.Session, eventID string) (string, error) {
	msg, err := s.cancel(ctx, session, eventID)
	s.recorder.TrackBooking(OperationCancel, err)
	return msg, err
}

func (s *Service) cancel(ctx context.Context, session *domain.Session, eventID string) (string, error) {
	if !session.Authenticated() {
		return "", domain.ErrUnauthenticated
	}

	viewer, err := s.gateway.Viewer(ctx, session.Token)
	if err != nil {
		return "", fmt.Errorf("cancel: %w", err)
	}

	event, ok := viewer.FindEvent(eventID)
	if !ok {
		return "", domain.ErrEventNotFound
	}

	msg, err := s.gateway.DeleteEvent(ctx, session.Token, eventID)
	if err != nil {
		return "", fmt.Errorf("cancel: %w", err)
	}
	if msg == "" {
		msg = domain.EventDeletedMessage
	}

	s.logger.Info(logging.Booking, logging.Cancel, "booking cancelled", map[logging.ExtraKey]any{
		logging.EventID: eventID,
		logging.RoomID:  event.RoomID,
		logging.UserID:  viewer.User.ID,
	})

	s.afterChange(ctx, OperationCancel, event)
	return msg, nil
}

func (s *Service) viewerOverview(ctx context.Context, session *domain.Session) (*Overview, error) {
	if !session.Authenticated() {
		return &Overview{}, nil
	}

	viewer, err := s.gateway.Viewer(ctx, session.Token)
	if errors.Is(err, domain.ErrUnauthenticated) {
		return &Overview{SessionExpired: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}

	return &Overview{Viewer: viewer}, nil
}

func (o *Overview) viewerEvents() []domain.Event {
	if o.Viewer == nil {
		return nil
	}
	return o.Viewer.Events
}

// resolve uses a single reference hour for every room of the request.
func (s *Service) resolve(ctx context.Context, rooms []domain.Room, viewerEvents []domain.Event) []domain.RoomAvailability {
	_, span := s.tracer.Start(ctx, "booking.ResolveSlots")
	defer span.End()

	ref := domain.ReferenceHour(s.now())
	span.SetAttributes(
		attribute.Int("booking.rooms", len(rooms)),
		attribute.Int("booking.reference_hour", int(ref)),
		attribute.Bool("booking.viewer", viewerEvents != nil),
	)

	out := make([]domain.RoomAvailability, 0, len(rooms))
	for _, room := range rooms {
		slots := domain.ResolveSlots(room.Events, ref, viewerEvents, room.ID)
		s.recorder.TrackSlots(slots)
		out = append(out, domain.RoomAvailability{Room: room, Slots: slots})
	}

	return out
}

// afterChange fans a successful mutation out to live subscribers and the
// broker. Failures here are logged and never fail the mutation.
func (s *Service) afterChange(ctx context.Context, operation string, event domain.Event) {
	if s.notifier != nil {
		s.notifier.NotifySlotsChanged(event.RoomID)
	}

	if s.publisher == nil {
		return
	}

	var err error
	switch operation {
	case OperationCreate:
		err = s.publisher.PublishBookingCreated(ctx, event)
	case OperationCancel:
		err = s.publisher.PublishBookingCancelled(ctx, event)
	}

	if err != nil {
		s.logger.Warn(logging.RabbitMQ, logging.Notify, "failed to publish booking event", map[logging.ExtraKey]any{
			logging.EventID:      event.ID,
			logging.Operation:    operation,
			logging.ErrorMessage: err.Error(),
		})
	}
}

func findRoom(rooms []domain.Room, roomID string) (domain.Room, error) {
	for _, r := range rooms {
		if r.ID == roomID {
			return r, nil
		}
	}
	return domain.Room{}, fmt.Errorf("%w: %s", domain.ErrRoomNotFound, roomID)
}
