package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hilthontt/roombook/internal/domain"
	"github.com/hilthontt/roombook/internal/infrastructure/logging"
)

type Service struct {
	gateway  domain.AuthGateway
	sessions domain.SessionStore
	logger   logging.Logger
	newID    func() string
}

func NewService(gateway domain.AuthGateway, sessions domain.SessionStore, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		gateway:  gateway,
		sessions: sessions,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// Login exchanges credentials for a new session and returns its id.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.Session, error) {
	return s.authenticate(ctx, logging.Login, email, password, s.gateway.Login)
}

// Signup creates the account upstream and starts a session for it.
func (s *Service) Signup(ctx context.Context, email, password string) (string, *domain.Session, error) {
	return s.authenticate(ctx, logging.Signup, email, password, s.gateway.Signup)
}

func (s *Service) authenticate(
	ctx context.Context,
	flow logging.SubCategory,
	email, password string,
	exchange func(context.Context, domain.Credentials) (*domain.Session, error),
) (string, *domain.Session, error) {
	credentials, err := domain.NewCredentials(email, password)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	session, err := exchange(ctx, credentials)
	if err != nil {
		s.logger.Warn(logging.Session, flow, "authentication rejected", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		return "", nil, err
	}

	id := s.newID()
	if err := s.sessions.Set(ctx, id, session); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.Info(logging.Session, flow, "session started", map[logging.ExtraKey]any{
		logging.UserID: session.User.ID,
	})

	return id, session, nil
}

// Current returns the session for id, or ErrSessionNotFound.
func (s *Service) Current(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, domain.ErrSessionNotFound
	}
	return s.sessions.Get(ctx, id)
}

// Logout forgets the session. Unknown ids are not an error.
func (s *Service) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	if err := s.sessions.Clear(ctx, id); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("clear session: %w", err)
	}

	s.logger.Info(logging.Session, logging.Logout, "session cleared", nil)
	return nil
}
