package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/somnahealth/somna-backend/internal/model"
	"github.com/somnahealth/somna-backend/internal/sleep"
	"github.com/somnahealth/somna-backend/internal/store"
)

const defaultDiaryPageSize = 30

// DiaryService owns sleep-diary entries and keeps their derived metrics in
// sync with the raw clock fields.
type DiaryService struct {
	store store.Store
}

func NewDiaryService(s store.Store) *DiaryService { return &DiaryService{store: s} }

// CreateEntry computes the derived metrics and persists the entry. At most
// one entry per user and date.
func (s *DiaryService) CreateEntry(ctx context.Context, e *model.SleepDiaryEntry) (*model.SleepDiaryEntry, error) {
	if _, err := s.store.Diaries().GetByDate(ctx, e.UserID, e.Date); err == nil {
		return nil, fmt.Errorf("a sleep diary entry already exists for this date: %w", model.ErrConflict)
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	sleep.Recompute(e)
	return s.store.Diaries().Create(ctx, e)
}

// ListEntries returns the user's entries newest date first. Limit defaults
// to 30; skip paginates.
func (s *DiaryService) ListEntries(ctx context.Context, userID string, limit, skip int) ([]*model.SleepDiaryEntry, error) {
	if limit <= 0 {
		limit = defaultDiaryPageSize
	}
	if skip < 0 {
		skip = 0
	}
	entries, err := s.store.Diaries().List(ctx, model.ListDiariesRequest{UserID: userID, Limit: limit, Skip: skip})
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*model.SleepDiaryEntry{}
	}
	return entries, nil
}

func (s *DiaryService) GetEntry(ctx context.Context, userID, diaryID string) (*model.SleepDiaryEntry, error) {
	return s.store.Diaries().GetByID(ctx, userID, diaryID)
}

// UpdateEntry merges the patch into the stored entry and, when any field
// contributing to the metrics is present, recomputes all three derived
// fields from the post-merge values.
func (s *DiaryService) UpdateEntry(ctx context.Context, userID, diaryID string, patch model.SleepDiaryPatch) (*model.SleepDiaryEntry, error) {
	e, err := s.store.Diaries().GetByID(ctx, userID, diaryID)
	if err != nil {
		return nil, err
	}

	patch.Apply(e)
	if patch.TouchesMetrics() {
		sleep.Recompute(e)
	}

	return s.store.Diaries().Update(ctx, e)
}

func (s *DiaryService) DeleteEntry(ctx context.Context, userID, diaryID string) error {
	return s.store.Diaries().Delete(ctx, userID, diaryID)
}
