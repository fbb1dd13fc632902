// Package storetest runs a driver-independent compliance suite against a
// store.Store implementation. Both drivers must pass it unchanged.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somnahealth/somna-backend/internal/model"
	"github.com/somnahealth/somna-backend/internal/store"
)

// Factory returns a fresh, empty store for each subtest.
type Factory func(t *testing.T) store.Store

// Run executes the compliance suite against stores produced by the factory.
func Run(t *testing.T, factory Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, factory(t)) })
	t.Run("Diaries", func(t *testing.T) { testDiaries(t, factory(t)) })
	t.Run("Goals", func(t *testing.T) { testGoals(t, factory(t)) })
	t.Run("Progress", func(t *testing.T) { testProgress(t, factory(t)) })
	t.Run("Preferences", func(t *testing.T) { testPreferences(t, factory(t)) })
	t.Run("CascadeDelete", func(t *testing.T) { testCascadeDelete(t, factory(t)) })
	t.Run("UnknownUserScope", func(t *testing.T) { testUnknownUserScope(t, factory(t)) })
}

func mustCreateUser(t *testing.T, s store.Store, email string) *model.User {
	t.Helper()
	u, err := s.Users().Create(context.Background(), &model.User{
		Email:          email,
		HashedPassword: "x",
		TimeZone:       "UTC",
		WeekInProgram:  1,
		IsActive:       true,
	})
	require.NoError(t, err)
	return u
}

func diaryFor(userID, date string) *model.SleepDiaryEntry {
	d, _ := time.Parse("2006-01-02", date)
	return &model.SleepDiaryEntry{
		UserID:          userID,
		Date:            strfmt.Date(d),
		BedTime:         model.TimeOfDay{Hour: 23, Minute: 0},
		FallAsleepTime:  model.TimeOfDay{Hour: 23, Minute: 25},
		WakeTime:        model.TimeOfDay{Hour: 6, Minute: 40},
		GetUpTime:       model.TimeOfDay{Hour: 7, Minute: 0},
		Awakenings:      2,
		TotalAwakeTime:  15,
		SleepQuality:    4,
		Restedness:      3,
		Mood:            4,
		TimeInBed:       480,
		TotalSleepTime:  420,
		SleepEfficiency: 87.5,
	}
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()

	u := mustCreateUser(t, s, "ada@example.com")
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := s.Users().Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Nil(t, got.FirstName)

	got, err = s.Users().GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Users().Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = s.Users().Create(ctx, &model.User{Email: "ada@example.com", HashedPassword: "x", TimeZone: "UTC"})
	assert.ErrorIs(t, err, model.ErrConflict)

	first := "Ada"
	got.FirstName = &first
	got.WeekInProgram = 4
	updated, err := s.Users().Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "Ada", *updated.FirstName)

	roundTrip, err := s.Users().Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", *roundTrip.FirstName)
	assert.Equal(t, 4, roundTrip.WeekInProgram)

	missing := *got
	missing.ID = "00000000-0000-0000-0000-000000000000"
	_, err = s.Users().Update(ctx, &missing)
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, s.Users().Delete(ctx, u.ID))
	assert.ErrorIs(t, s.Users().Delete(ctx, u.ID), model.ErrNotFound)
}

func testDiaries(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustCreateUser(t, s, "diary@example.com")

	e, err := s.Diaries().Create(ctx, diaryFor(u.ID, "2026-02-01"))
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)

	got, err := s.Diaries().GetByID(ctx, u.ID, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", got.Date.String())
	assert.Equal(t, model.TimeOfDay{Hour: 23, Minute: 0}, got.BedTime)
	assert.Equal(t, 420, got.TotalSleepTime)
	assert.InDelta(t, 87.5, got.SleepEfficiency, 1e-9)

	_, err = s.Diaries().GetByID(ctx, "someone-else", e.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	byDate, err := s.Diaries().GetByDate(ctx, u.ID, got.Date)
	require.NoError(t, err)
	assert.Equal(t, e.ID, byDate.ID)

	// user+date is unique
	_, err = s.Diaries().Create(ctx, diaryFor(u.ID, "2026-02-01"))
	assert.ErrorIs(t, err, model.ErrConflict)

	for day := 2; day <= 4; day++ {
		_, err := s.Diaries().Create(ctx, diaryFor(u.ID, fmt.Sprintf("2026-02-%02d", day)))
		require.NoError(t, err)
	}

	list, err := s.Diaries().List(ctx, model.ListDiariesRequest{UserID: u.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "2026-02-04", list[0].Date.String())
	assert.Equal(t, "2026-02-01", list[3].Date.String())

	page, err := s.Diaries().List(ctx, model.ListDiariesRequest{UserID: u.ID, Limit: 2, Skip: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "2026-02-03", page[0].Date.String())

	notes := "slept with the window open"
	got.Notes = &notes
	got.TotalSleepTime = 400
	updated, err := s.Diaries().Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, notes, *updated.Notes)

	roundTrip, err := s.Diaries().GetByID(ctx, u.ID, e.ID)
	require.NoError(t, err)
	assert.Equal(t, notes, *roundTrip.Notes)
	assert.Equal(t, 400, roundTrip.TotalSleepTime)

	require.NoError(t, s.Diaries().Delete(ctx, u.ID, e.ID))
	assert.ErrorIs(t, s.Diaries().Delete(ctx, u.ID, e.ID), model.ErrNotFound)
}

func testGoals(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustCreateUser(t, s, "goals@example.com")

	_, err := s.Goals().Get(ctx, u.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	bed := model.TimeOfDay{Hour: 22, Minute: 30}
	duration := 7.5
	g, err := s.Goals().Upsert(ctx, &model.SleepGoals{UserID: u.ID, Bedtime: &bed, SleepDuration: &duration})
	require.NoError(t, err)
	assert.Equal(t, bed, *g.Bedtime)
	assert.Nil(t, g.WakeTime)

	wake := model.TimeOfDay{Hour: 6, Minute: 30}
	g.WakeTime = &wake
	g, err = s.Goals().Upsert(ctx, g)
	require.NoError(t, err)
	assert.Equal(t, wake, *g.WakeTime)
	assert.InDelta(t, 7.5, *g.SleepDuration, 1e-9)
}

func testProgress(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustCreateUser(t, s, "program@example.com")

	p, err := s.Progress().StartWeek(ctx, &model.ProgramProgress{UserID: u.ID, Week: 1})
	require.NoError(t, err)
	assert.False(t, p.StartedAt.IsZero())
	assert.Nil(t, p.CompletedAt)

	_, err = s.Progress().StartWeek(ctx, &model.ProgramProgress{UserID: u.ID, Week: 1})
	assert.ErrorIs(t, err, model.ErrConflict)

	_, err = s.Progress().StartWeek(ctx, &model.ProgramProgress{UserID: u.ID, Week: 2})
	require.NoError(t, err)

	a, err := s.Progress().AddActivity(ctx, &model.Activity{UserID: u.ID, Week: 1, Name: "wind-down routine", Kind: "exercise"})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)

	week, err := s.Progress().GetWeek(ctx, u.ID, 1)
	require.NoError(t, err)
	require.Len(t, week.Activities, 1)
	assert.Equal(t, "wind-down routine", week.Activities[0].Name)

	_, err = s.Progress().GetWeek(ctx, u.ID, 9)
	assert.ErrorIs(t, err, model.ErrNotFound)

	done, err := s.Progress().CompleteWeek(ctx, u.ID, 1, time.Now().UTC())
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)

	_, err = s.Progress().CompleteWeek(ctx, u.ID, 9, time.Now().UTC())
	assert.ErrorIs(t, err, model.ErrNotFound)

	list, err := s.Progress().List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Week)
	assert.Equal(t, 2, list[1].Week)
}

func testPreferences(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustCreateUser(t, s, "prefs@example.com")

	_, err := s.Preferences().Get(ctx, u.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	n := model.DefaultNotificationPreferences(u.ID)
	saved, err := s.Preferences().Upsert(ctx, n)
	require.NoError(t, err)
	assert.True(t, saved.SleepReminders)
	assert.Equal(t, "daily", saved.SleepRemindersFrequency)

	saved.SleepReminders = false
	saved.SleepRemindersFrequency = "weekdays"
	saved, err = s.Preferences().Upsert(ctx, saved)
	require.NoError(t, err)
	assert.False(t, saved.SleepReminders)
	assert.Equal(t, "weekdays", saved.SleepRemindersFrequency)

	got, err := s.Preferences().Get(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.SleepReminders)
	assert.True(t, got.JournalReminders)
}

func testCascadeDelete(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustCreateUser(t, s, "cascade@example.com")

	e, err := s.Diaries().Create(ctx, diaryFor(u.ID, "2026-02-01"))
	require.NoError(t, err)
	_, err = s.Goals().Upsert(ctx, &model.SleepGoals{UserID: u.ID})
	require.NoError(t, err)
	_, err = s.Progress().StartWeek(ctx, &model.ProgramProgress{UserID: u.ID, Week: 1})
	require.NoError(t, err)
	_, err = s.Preferences().Upsert(ctx, model.DefaultNotificationPreferences(u.ID))
	require.NoError(t, err)

	require.NoError(t, s.Users().Delete(ctx, u.ID))

	_, err = s.Diaries().GetByID(ctx, u.ID, e.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.Goals().Get(ctx, u.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.Progress().GetWeek(ctx, u.ID, 1)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.Preferences().Get(ctx, u.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

// Writes referencing a user that does not exist must fail as not-found, not
// as an opaque driver error.
func testUnknownUserScope(t *testing.T, s store.Store) {
	ctx := context.Background()
	const ghost = "00000000-0000-0000-0000-000000000000"

	_, err := s.Diaries().Create(ctx, diaryFor(ghost, "2026-02-01"))
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = s.Goals().Upsert(ctx, &model.SleepGoals{UserID: ghost})
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = s.Preferences().Upsert(ctx, model.DefaultNotificationPreferences(ghost))
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = s.Progress().StartWeek(ctx, &model.ProgramProgress{UserID: ghost, Week: 1})
	assert.ErrorIs(t, err, model.ErrNotFound)
}
