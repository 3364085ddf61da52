package mocks

import (
	"context"

	"github.com/hilthontt/roombook/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSlotChangeNotifier struct {
	mock.Mock
}

func NewMockSlotChangeNotifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSlotChangeNotifier {
	m := &MockSlotChangeNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSlotChangeNotifier) NotifySlotsChanged(roomID string) {
	m.Called(roomID)
}

type MockBookingPublisher struct {
	mock.Mock
}

func NewMockBookingPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBookingPublisher {
	m := &MockBookingPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBookingPublisher) PublishBookingCreated(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockBookingPublisher) PublishBookingCancelled(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
