package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/somnahealth/somna-backend/internal/auth"
	"github.com/somnahealth/somna-backend/internal/model"
	"github.com/somnahealth/somna-backend/internal/store"
)

// UserService handles account operations.
type UserService struct {
	store store.Store
}

func NewUserService(s store.Store) *UserService { return &UserService{store: s} }

// CreateUser hashes the password and registers the account. A duplicate
// email fails with model.ErrConflict.
func (s *UserService) CreateUser(ctx context.Context, u *model.User, password string) (*model.User, error) {
	if _, err := s.store.Users().GetByEmail(ctx, u.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", model.ErrConflict)
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u.HashedPassword = hashed

	if u.TimeZone == "" {
		u.TimeZone = "America/New_York"
	}
	if u.WeekInProgram == 0 {
		u.WeekInProgram = 1
	}
	u.IsActive = true

	return s.store.Users().Create(ctx, u)
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.store.Users().Get(ctx, userID)
}

// UpdateUser merges the patch into the stored record. Changing the email to
// one already registered fails with model.ErrConflict.
func (s *UserService) UpdateUser(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error) {
	u, err := s.store.Users().Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	patch.Apply(u)
	return s.store.Users().Update(ctx, u)
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	return s.store.Users().Delete(ctx, userID)
}
