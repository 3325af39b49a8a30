package auth

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Ragul1106/pet-store/internal/backend"
	"github.com/Ragul1106/pet-store/internal/domain"
)

type API interface {
	Login(ctx context.Context, username, password string) (*backend.TokenPair, error)
	Me(ctx context.Context) (*domain.User, error)
	Register(ctx context.Context, req backend.RegisterRequest) (*domain.User, error)
}

type Service struct {
	api     API
	session *Session
	log     *zap.Logger
}

func NewService(api API, session *Session, log *zap.Logger) *Service {
	return &Service{
		api:     api,
		session: session,
		log:     log,
	}
}

// Login exchanges credentials for a token pair, establishes the session and
// returns the account projection.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, error) {
	pair, err := s.api.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	// establish first so the /account/me/ call goes out authenticated
	s.session.establish(pair.Access, pair.Refresh, nil)

	user, err := s.api.Me(ctx)
	if err != nil {
		// the credential is valid even when the profile fetch fails; keep
		// the session and let the caller surface the partial failure
		s.log.Warn("account fetch after login failed", zap.Error(err))
		return nil, fmt.Errorf("fetch account: %w", err)
	}
	s.session.establish(pair.Access, pair.Refresh, user)
	return user, nil
}

func (s *Service) Register(ctx context.Context, req backend.RegisterRequest) (*domain.User, error) {
	user, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

func (s *Service) Logout() {
	s.session.Clear()
}
