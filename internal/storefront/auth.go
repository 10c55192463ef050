package storefront

import (
	"context"
	"log/slog"

	"github.com/tonimelisma/storefront-go/internal/api"
	"github.com/tonimelisma/storefront-go/internal/endpoints"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput is the body of a sign-up request.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Login exchanges credentials for a session and stores both tokens.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	session, err := api.Post[Session](ctx, s.client, endpoints.Auth.Login, credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if err := s.adopt(&session); err != nil {
		return nil, err
	}

	s.logger.Info("logged in", slog.String("user", session.User.Email))

	return &session, nil
}

// Register creates an account. The backend signs the new user in, so the
// returned session is stored like a login.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	session, err := api.Post[Session](ctx, s.client, endpoints.Auth.Register, in)
	if err != nil {
		return nil, err
	}

	if err := s.adopt(&session); err != nil {
		return nil, err
	}

	s.logger.Info("registered", slog.String("user", session.User.Email))

	return &session, nil
}

// Refresh trades the stored refresh token for a new session. Nothing calls
// it implicitly; an expired token surfaces as api.ErrUnauthorized.
func (s *Service) Refresh(ctx context.Context) (*Session, error) {
	refresh := s.refreshToken()
	if refresh == "" {
		return nil, ErrNoRefreshToken
	}

	session, err := api.Post[Session](ctx, s.client, endpoints.Auth.Refresh, refreshRequest{RefreshToken: refresh})
	if err != nil {
		return nil, err
	}

	if session.RefreshToken == "" {
		session.RefreshToken = refresh
	}

	if err := s.adopt(&session); err != nil {
		return nil, err
	}

	s.logger.Debug("session refreshed")

	return &session, nil
}

// Logout tells the backend to end the session and clears local
// credentials. Local state is cleared even when the server call fails; that
// failure is returned so callers can report it.
func (s *Service) Logout(ctx context.Context) error {
	var serverErr error

	if s.client.Token() != "" {
		_, serverErr = api.Post[api.Empty](ctx, s.client, endpoints.Auth.Logout, nil)
		if serverErr != nil {
			s.logger.Warn("server logout failed, clearing local session anyway",
				slog.String("error", serverErr.Error()))
		}
	}

	s.client.ClearToken()

	return serverErr
}

// Me returns the signed-in user.
func (s *Service) Me(ctx context.Context) (*User, error) {
	user, err := api.Get[User](ctx, s.client, endpoints.Auth.Me, nil)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// adopt installs session's tokens. A failure to persist the refresh token
// is logged and tolerated: the access token still works for this process.
func (s *Service) adopt(session *Session) error {
	if session.Token == "" {
		return ErrNoToken
	}

	s.client.SetToken(session.Token)

	if s.store == nil || session.RefreshToken == "" {
		return nil
	}

	if err := s.store.Set(api.RefreshTokenKey, session.RefreshToken); err != nil {
		s.logger.Warn("persisting refresh token failed", slog.String("error", err.Error()))
	}

	return nil
}

func (s *Service) refreshToken() string {
	if s.store == nil {
		return ""
	}

	v, err := s.store.Get(api.RefreshTokenKey)
	if err != nil {
		s.logger.Warn("reading refresh token failed", slog.String("error", err.Error()))

		return ""
	}

	return v
}
