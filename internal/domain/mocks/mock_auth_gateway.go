package mocks

import (
	"context"

	"github.com/hilthontt/roombook/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockAuthGateway struct {
	mock.Mock
}

func NewMockAuthGateway(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAuthGateway {
	m := &MockAuthGateway{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuthGateway) Login(ctx context.Context, credentials domain.Credentials) (*domain.Session, error) {
	args := m.Called(ctx, credentials)
	session, _ := args.Get(0).(*domain.Session)
	return session, args.Error(1)
}

func (m *MockAuthGateway) Signup(ctx context.Context, credentials domain.Credentials) (*domain.Session, error) {
	args := m.Called(ctx, credentials)
	session, _ := args.Get(0).(*domain.Session)
	return session, args.Error(1)
}
