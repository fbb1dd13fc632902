package services

import (
	"context"
	"fmt"
	"time"

	"github.com/somnahealth/somna-backend/internal/model"
	"github.com/somnahealth/somna-backend/internal/store"
)

// ProgramWeeks is the length of the CBT-I program.
const ProgramWeeks = 12

// ProgramService tracks progression through the weekly program.
type ProgramService struct {
	store store.Store
}

func NewProgramService(s store.Store) *ProgramService { return &ProgramService{store: s} }

func (s *ProgramService) ListProgress(ctx context.Context, userID string) ([]*model.ProgramProgress, error) {
	out, err := s.store.Progress().List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*model.ProgramProgress{}
	}
	return out, nil
}

// StartWeek opens a program week for the user and advances the account's
// week-in-program marker when the new week is ahead of it. Starting an
// already-started week fails with model.ErrConflict.
func (s *ProgramService) StartWeek(ctx context.Context, userID string, week int) (*model.ProgramProgress, error) {
	if week < 1 || week > ProgramWeeks {
		return nil, fmt.Errorf("week must be between 1 and %d: %w", ProgramWeeks, model.ErrValidation)
	}

	u, err := s.store.Users().Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	p, err := s.store.Progress().StartWeek(ctx, &model.ProgramProgress{UserID: userID, Week: week})
	if err != nil {
		return nil, err
	}

	if week > u.WeekInProgram {
		u.WeekInProgram = week
		if _, err := s.store.Users().Update(ctx, u); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// CompleteWeek marks a started week complete.
func (s *ProgramService) CompleteWeek(ctx context.Context, userID string, week int) (*model.ProgramProgress, error) {
	return s.store.Progress().CompleteWeek(ctx, userID, week, time.Now().UTC())
}

// RecordActivity appends a completed exercise to a started week. The week
// must have been started first.
func (s *ProgramService) RecordActivity(ctx context.Context, userID string, week int, name, kind string) (*model.Activity, error) {
	if _, err := s.store.Progress().GetWeek(ctx, userID, week); err != nil {
		return nil, err
	}
	return s.store.Progress().AddActivity(ctx, &model.Activity{
		UserID: userID,
		Week:   week,
		Name:   name,
		Kind:   kind,
	})
}
