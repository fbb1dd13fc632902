package services

import (
	"context"
	"errors"

	"github.com/somnahealth/somna-backend/internal/model"
	"github.com/somnahealth/somna-backend/internal/store"
)

// GoalsService manages a user's sleep goals (one record per user).
type GoalsService struct {
	store store.Store
}

func NewGoalsService(s store.Store) *GoalsService { return &GoalsService{store: s} }

func (s *GoalsService) GetGoals(ctx context.Context, userID string) (*model.SleepGoals, error) {
	return s.store.Goals().Get(ctx, userID)
}

// SetGoals merges the patch into the existing goals, or a fresh record when
// the user has none yet, and upserts the result.
func (s *GoalsService) SetGoals(ctx context.Context, userID string, patch model.SleepGoalsPatch) (*model.SleepGoals, error) {
	g, err := s.store.Goals().Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		g = &model.SleepGoals{UserID: userID}
	}
	patch.Apply(g)
	return s.store.Goals().Upsert(ctx, g)
}
