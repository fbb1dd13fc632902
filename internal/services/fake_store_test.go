package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/somnahealth/somna-backend/internal/model"
	"github.com/somnahealth/somna-backend/internal/store"
)

// fakeStore is an in-memory store.Store for service tests.
type fakeStore struct {
	users   map[string]*model.User
	diaries map[string]*model.SleepDiaryEntry
	goals   map[string]*model.SleepGoals
	weeks   map[string]*model.ProgramProgress
	prefs   map[string]*model.NotificationPreferences
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   map[string]*model.User{},
		diaries: map[string]*model.SleepDiaryEntry{},
		goals:   map[string]*model.SleepGoals{},
		weeks:   map[string]*model.ProgramProgress{},
		prefs:   map[string]*model.NotificationPreferences{},
	}
}

func (f *fakeStore) Users() store.Users             { return (*fakeUsers)(f) }
func (f *fakeStore) Diaries() store.Diaries         { return (*fakeDiaries)(f) }
func (f *fakeStore) Goals() store.Goals             { return (*fakeGoals)(f) }
func (f *fakeStore) Progress() store.Progress       { return (*fakeProgress)(f) }
func (f *fakeStore) Preferences() store.Preferences { return (*fakePrefs)(f) }

type fakeUsers fakeStore

func (f *fakeUsers) Create(_ context.Context, u *model.User) (*model.User, error) {
	cp := *u
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	f.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsers) Get(_ context.Context, userID string) (*model.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeUsers) Update(_ context.Context, u *model.User) (*model.User, error) {
	if _, ok := f.users[u.ID]; !ok {
		return nil, model.ErrNotFound
	}
	cp := *u
	cp.UpdatedAt = time.Now().UTC()
	f.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsers) Delete(_ context.Context, userID string) error {
	if _, ok := f.users[userID]; !ok {
		return model.ErrNotFound
	}
	delete(f.users, userID)
	return nil
}

type fakeDiaries fakeStore

func (f *fakeDiaries) Create(_ context.Context, e *model.SleepDiaryEntry) (*model.SleepDiaryEntry, error) {
	cp := *e
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	f.diaries[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeDiaries) GetByID(_ context.Context, userID, diaryID string) (*model.SleepDiaryEntry, error) {
	e, ok := f.diaries[diaryID]
	if !ok || e.UserID != userID {
		return nil, model.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeDiaries) GetByDate(_ context.Context, userID string, date strfmt.Date) (*model.SleepDiaryEntry, error) {
	for _, e := range f.diaries {
		if e.UserID == userID && e.Date.String() == date.String() {
			cp := *e
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeDiaries) List(_ context.Context, req model.ListDiariesRequest) ([]*model.SleepDiaryEntry, error) {
	var out []*model.SleepDiaryEntry
	for _, e := range f.diaries {
		if e.UserID == req.UserID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.String() > out[j].Date.String() })
	if req.Skip < len(out) {
		out = out[req.Skip:]
	} else {
		out = nil
	}
	if len(out) > req.Limit {
		out = out[:req.Limit]
	}
	return out, nil
}

func (f *fakeDiaries) Update(_ context.Context, e *model.SleepDiaryEntry) (*model.SleepDiaryEntry, error) {
	if _, ok := f.diaries[e.ID]; !ok {
		return nil, model.ErrNotFound
	}
	cp := *e
	cp.UpdatedAt = time.Now().UTC()
	f.diaries[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeDiaries) Delete(_ context.Context, userID, diaryID string) error {
	e, ok := f.diaries[diaryID]
	if !ok || e.UserID != userID {
		return model.ErrNotFound
	}
	delete(f.diaries, diaryID)
	return nil
}

type fakeGoals fakeStore

func (f *fakeGoals) Get(_ context.Context, userID string) (*model.SleepGoals, error) {
	g, ok := f.goals[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGoals) Upsert(_ context.Context, g *model.SleepGoals) (*model.SleepGoals, error) {
	cp := *g
	cp.UpdatedAt = time.Now().UTC()
	f.goals[cp.UserID] = &cp
	out := cp
	return &out, nil
}

type fakeProgress fakeStore

func weekKey(userID string, week int) string { return fmt.Sprintf("%s/%d", userID, week) }

func (f *fakeProgress) StartWeek(_ context.Context, p *model.ProgramProgress) (*model.ProgramProgress, error) {
	key := weekKey(p.UserID, p.Week)
	if _, ok := f.weeks[key]; ok {
		return nil, model.ErrConflict
	}
	cp := *p
	cp.StartedAt = time.Now().UTC()
	cp.Activities = []model.Activity{}
	f.weeks[key] = &cp
	out := cp
	return &out, nil
}

func (f *fakeProgress) GetWeek(_ context.Context, userID string, week int) (*model.ProgramProgress, error) {
	p, ok := f.weeks[weekKey(userID, week)]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProgress) List(_ context.Context, userID string) ([]*model.ProgramProgress, error) {
	var out []*model.ProgramProgress
	for _, p := range f.weeks {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out, nil
}

func (f *fakeProgress) CompleteWeek(_ context.Context, userID string, week int, at time.Time) (*model.ProgramProgress, error) {
	p, ok := f.weeks[weekKey(userID, week)]
	if !ok {
		return nil, model.ErrNotFound
	}
	p.CompletedAt = &at
	cp := *p
	return &cp, nil
}

func (f *fakeProgress) AddActivity(_ context.Context, a *model.Activity) (*model.Activity, error) {
	p, ok := f.weeks[weekKey(a.UserID, a.Week)]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *a
	cp.ID = uuid.NewString()
	cp.CompletedAt = time.Now().UTC()
	p.Activities = append(p.Activities, cp)
	out := cp
	return &out, nil
}

type fakePrefs fakeStore

func (f *fakePrefs) Get(_ context.Context, userID string) (*model.NotificationPreferences, error) {
	n, ok := f.prefs[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakePrefs) Upsert(_ context.Context, n *model.NotificationPreferences) (*model.NotificationPreferences, error) {
	cp := *n
	cp.UpdatedAt = time.Now().UTC()
	f.prefs[cp.UserID] = &cp
	out := cp
	return &out, nil
}
