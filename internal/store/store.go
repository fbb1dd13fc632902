// Package store defines the persistence interface consumed by services.
// Implementations live under internal/store/<driver>/.
package store

import (
	"context"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/somnahealth/somna-backend/internal/model"
)

// Store exposes persistence operations required by services. Lookups that
// miss return model.ErrNotFound; uniqueness violations return
// model.ErrConflict.
type Store interface {
	Users() Users
	Diaries() Diaries
	Goals() Goals
	Progress() Progress
	Preferences() Preferences
}

// HealthPinger is implemented by stores that can report connectivity.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}

type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, userID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, u *model.User) (*model.User, error)
	Delete(ctx context.Context, userID string) error
}

type Diaries interface {
	Create(ctx context.Context, e *model.SleepDiaryEntry) (*model.SleepDiaryEntry, error)
	GetByID(ctx context.Context, userID, diaryID string) (*model.SleepDiaryEntry, error)
	GetByDate(ctx context.Context, userID string, date strfmt.Date) (*model.SleepDiaryEntry, error)
	List(ctx context.Context, req model.ListDiariesRequest) ([]*model.SleepDiaryEntry, error)
	Update(ctx context.Context, e *model.SleepDiaryEntry) (*model.SleepDiaryEntry, error)
	Delete(ctx context.Context, userID, diaryID string) error
}

type Goals interface {
	Get(ctx context.Context, userID string) (*model.SleepGoals, error)
	Upsert(ctx context.Context, g *model.SleepGoals) (*model.SleepGoals, error)
}

type Progress interface {
	StartWeek(ctx context.Context, p *model.ProgramProgress) (*model.ProgramProgress, error)
	GetWeek(ctx context.Context, userID string, week int) (*model.ProgramProgress, error)
	List(ctx context.Context, userID string) ([]*model.ProgramProgress, error)
	CompleteWeek(ctx context.Context, userID string, week int, at time.Time) (*model.ProgramProgress, error)
	AddActivity(ctx context.Context, a *model.Activity) (*model.Activity, error)
}

type Preferences interface {
	Get(ctx context.Context, userID string) (*model.NotificationPreferences, error)
	Upsert(ctx context.Context, n *model.NotificationPreferences) (*model.NotificationPreferences, error)
}
