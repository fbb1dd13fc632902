package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/somnahealth/somna-backend/internal/auth"
	"github.com/somnahealth/somna-backend/internal/model"
	"github.com/somnahealth/somna-backend/internal/store"
)

// AuthService verifies credentials and issues bearer tokens.
type AuthService struct {
	store  store.Store
	issuer *auth.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(s store.Store, issuer *auth.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{store: s, issuer: issuer, log: log}
}

// Login verifies the email/password pair and returns a signed token plus
// the account. Unknown email and wrong password both yield
// model.ErrInvalidCredentials; the attempted identity is never logged.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	u, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.log.Debug().Msg("login failed: unknown account")
			return "", nil, model.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.VerifyPassword(u.HashedPassword, password) {
		s.log.Debug().Msg("login failed: password mismatch")
		return "", nil, model.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}
