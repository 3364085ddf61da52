package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/hilthontt/roombook/internal/domain"
	"github.com/hilthontt/roombook/internal/infrastructure/graphql"
	"github.com/hilthontt/roombook/internal/infrastructure/logging"
)

// Gateway maps the booking API's GraphQL operations onto domain types.
type Gateway struct {
	client *graphql.Client
	logger logging.Logger
}

var (
	_ domain.BookingGateway = (*Gateway)(nil)
	_ domain.AuthGateway    = (*Gateway)(nil)
)

func New(client *graphql.Client, logger logging.Logger) *Gateway {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Gateway{client: client, logger: logger}
}

func (g *Gateway) Rooms(ctx context.Context) ([]domain.Room, error) {
	var out struct {
		GetRooms []roomDTO `json:"getRooms"`
	}

	err := g.client.Query(ctx, "", graphql.Request{
		Query:         getRoomsQuery,
		OperationName: "GetRooms",
	}, &out)
	if err != nil {
		return nil, mapError("get rooms", err)
	}

	rooms := make([]domain.Room, 0, len(out.GetRooms))
	for _, dto := range out.GetRooms {
		rooms = append(rooms, g.toRoom(dto))
	}

	return rooms, nil
}

func (g *Gateway) Viewer(ctx context.Context, token string) (*domain.Viewer, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	var out struct {
		Me *meDTO `json:"me"`
	}

	err := g.client.Query(ctx, token, graphql.Request{
		Query:         meQuery,
		OperationName: "Me",
	}, &out)
	if err != nil {
		return nil, mapError("get viewer", err)
	}
	if out.Me == nil {
		return nil, domain.ErrUnauthenticated
	}

	viewer := &domain.Viewer{
		User:   domain.User{ID: out.Me.ID, Email: out.Me.Email},
		Events: make([]domain.Event, 0, len(out.Me.Events)),
	}

	for _, dto := range out.Me.Events {
		start, err := domain.ParseTimestamp(dto.EventStartTime)
		if err != nil {
			g.skipEvent(dto.ID, err)
			continue
		}

		event := domain.Event{
			ID:        dto.ID,
			StartTime: start,
			EndTime:   start.Add(domain.EventDuration),
			UserID:    out.Me.ID,
			UserEmail: out.Me.Email,
		}
		if dto.RoomID != nil {
			event.RoomID = dto.RoomID.ID
			event.RoomNumber = dto.RoomID.RoomNumber
		}
		viewer.Events = append(viewer.Events, event)
	}

	return viewer, nil
}

func (g *Gateway) CreateEvent(ctx context.Context, token string, event domain.NewEvent) (string, error) {
	var out struct {
		CreateEvent *struct {
			ID string `json:"id"`
		} `json:"createEvent"`
	}

	err := g.client.Mutate(ctx, token, graphql.Request{
		Query:         createEventMutation,
		OperationName: "CreateEvent",
		Variables: map[string]any{
			"eventName":      event.Name,
			"eventStartTime": domain.FormatTimestamp(event.StartTime),
			"roomId":         event.RoomID,
		},
	}, &out)
	if err != nil {
		return "", mapError("create event", err)
	}
	if out.CreateEvent == nil || out.CreateEvent.ID == "" {
		return "", fmt.Errorf("%w: create event returned no id", domain.ErrUpstream)
	}

	return out.CreateEvent.ID, nil
}

func (g *Gateway) DeleteEvent(ctx context.Context, token string, eventID string) (string, error) {
	var out struct {
		DeleteEvent *struct {
			Message string `json:"message"`
		} `json:"deleteEvent"`
	}

	err := g.client.Mutate(ctx, token, graphql.Request{
		Query:         deleteEventMutation,
		OperationName: "DeleteEvent",
		Variables:     map[string]any{"eventId": eventID},
	}, &out)
	if err != nil {
		return "", mapError("delete event", err)
	}
	if out.DeleteEvent == nil {
		return "", fmt.Errorf("%w: delete event returned no payload", domain.ErrUpstream)
	}

	return out.DeleteEvent.Message, nil
}

func (g *Gateway) Login(ctx context.Context, credentials domain.Credentials) (*domain.Session, error) {
	var out struct {
		Login *authPayloadDTO `json:"login"`
	}

	if err := g.authenticate(ctx, loginMutation, "Login", domain.ErrInvalidCredentials, credentials, &out); err != nil {
		return nil, err
	}
	return toSession(out.Login)
}

func (g *Gateway) Signup(ctx context.Context, credentials domain.Credentials) (*domain.Session, error) {
	var out struct {
		Signup *authPayloadDTO `json:"signup"`
	}

	if err := g.authenticate(ctx, signupMutation, "Signup", domain.ErrInvalidInput, credentials, &out); err != nil {
		return nil, err
	}
	return toSession(out.Signup)
}

// authenticate runs a login or signup mutation. GraphQL errors are the API
// rejecting the form and are reported as rejected with the API's message.
func (g *Gateway) authenticate(
	ctx context.Context,
	query, operation string,
	rejected error,
	credentials domain.Credentials,
	out any,
) error {
	err := g.client.Mutate(ctx, "", graphql.Request{
		Query:         query,
		OperationName: operation,
		Variables: map[string]any{
			"email":    credentials.Email,
			"password": credentials.Password,
		},
	}, out)
	if err == nil {
		return nil
	}

	var gqlErrs graphql.Errors
	if errors.As(err, &gqlErrs) && len(gqlErrs) > 0 {
		return fmt.Errorf("%w: %s", rejected, gqlErrs[0].Message)
	}

	return mapError(operation, err)
}

func toSession(payload *authPayloadDTO) (*domain.Session, error) {
	if payload == nil || payload.Token == "" || payload.User == nil {
		return nil, fmt.Errorf("%w: empty auth payload", domain.ErrUpstream)
	}
	return domain.NewSession(payload.Token, &domain.User{
		ID:    payload.User.ID,
		Email: payload.User.Email,
	}), nil
}

func (g *Gateway) toRoom(dto roomDTO) domain.Room {
	room := domain.Room{
		ID:     dto.ID,
		Number: dto.RoomNumber,
		Image:  dto.RoomImage,
		Events: make([]domain.Event, 0, len(dto.Events)),
	}

	for _, e := range dto.Events {
		start, err := domain.ParseTimestamp(e.EventStartTime)
		if err != nil {
			g.skipEvent(e.ID, err)
			continue
		}

		end, err := domain.ParseTimestamp(e.EventEndTime)
		if err != nil {
			end = start.Add(domain.EventDuration)
		}

		event := domain.Event{
			ID:         e.ID,
			StartTime:  start,
			EndTime:    end,
			RoomID:     dto.ID,
			RoomNumber: dto.RoomNumber,
		}
		if e.User != nil {
			event.UserID = e.User.ID
			event.UserEmail = e.User.Email
		}
		room.Events = append(room.Events, event)
	}

	return room
}

func (g *Gateway) skipEvent(id string, err error) {
	g.logger.Warn(logging.Upstream, logging.GraphQL, "skipping event with unreadable start time", map[logging.ExtraKey]any{
		logging.EventID:      id,
		logging.ErrorMessage: err.Error(),
	})
}

func mapError(op string, err error) error {
	if graphql.IsUnauthenticated(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrUnauthenticated)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrUpstream, err)
}
