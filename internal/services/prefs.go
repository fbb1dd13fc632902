package services

import (
	"context"
	"errors"

	"github.com/somnahealth/somna-backend/internal/model"
	"github.com/somnahealth/somna-backend/internal/store"
)

// PreferencesService manages notification settings. Users who never saved
// any are served the defaults.
type PreferencesService struct {
	store store.Store
}

func NewPreferencesService(s store.Store) *PreferencesService {
	return &PreferencesService{store: s}
}

func (s *PreferencesService) GetPreferences(ctx context.Context, userID string) (*model.NotificationPreferences, error) {
	n, err := s.store.Preferences().Get(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.DefaultNotificationPreferences(userID), nil
		}
		return nil, err
	}
	return n, nil
}

// UpdatePreferences merges the patch over the stored settings (or the
// defaults) and upserts the result.
func (s *PreferencesService) UpdatePreferences(ctx context.Context, userID string, patch model.NotificationPreferencesPatch) (*model.NotificationPreferences, error) {
	n, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	patch.Apply(n)
	return s.store.Preferences().Upsert(ctx, n)
}
