package mocks

import (
	"context"

	"github.com/hilthontt/roombook/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingGateway struct {
	mock.Mock
}

func NewMockBookingGateway(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBookingGateway {
	m := &MockBookingGateway{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBookingGateway) Rooms(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	rooms, _ := args.Get(0).([]domain.Room)
	return rooms, args.Error(1)
}

func (m *MockBookingGateway) Viewer(ctx context.Context, token string) (*domain.Viewer, error) {
	args := m.Called(ctx, token)
	viewer, _ := args.Get(0).(*domain.Viewer)
	return viewer, args.Error(1)
}

func (m *MockBookingGateway) CreateEvent(ctx context.Context, token string, event domain.NewEvent) (string, error) {
	args := m.Called(ctx, token, event)
	return args.String(0), args.Error(1)
}

func (m *MockBookingGateway) DeleteEvent(ctx context.Context, token string, eventID string) (string, error) {
	args := m.Called(ctx, token, eventID)
	return args.String(0), args.Error(1)
}
