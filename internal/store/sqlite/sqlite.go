// Package sqlite implements store.Store on a local SQLite file. It is the
// default store and the one the test suites run against.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	sqlite3 "modernc.org/sqlite"

	"github.com/somnahealth/somna-backend/internal/model"
	"github.com/somnahealth/somna-backend/internal/store"
)

// Open opens (or creates) a SQLite database at the given path with WAL
// journal mode and foreign keys enabled.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New opens the database at path and applies the schema.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(ddl); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB wires a store over an existing connection with the schema
// already in place.
func NewWithDB(db *sql.DB) store.Store { return &liteStore{db: db} }

type liteStore struct{ db *sql.DB }

func (s *liteStore) Users() store.Users             { return &users{db: s.db} }
func (s *liteStore) Diaries() store.Diaries         { return &diaries{db: s.db} }
func (s *liteStore) Goals() store.Goals             { return &goals{db: s.db} }
func (s *liteStore) Progress() store.Progress       { return &progress{db: s.db} }
func (s *liteStore) Preferences() store.Preferences { return &preferences{db: s.db} }

// HealthPing implements store.HealthPinger.
func (s *liteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// sqlite extended result codes for constraint failures.
const (
	codeConstraintPrimaryKey = 1555
	codeConstraintUnique     = 2067
	codeConstraintForeignKey = 787
)

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	var se *sqlite3.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case codeConstraintPrimaryKey, codeConstraintUnique:
			return model.ErrConflict
		case codeConstraintForeignKey:
			// The referenced parent row (the user scope) does not exist.
			return model.ErrNotFound
		}
	}
	return err
}

// --- Users ---

type users struct{ db *sql.DB }

const userCols = `id, email, hashed_password, first_name, last_name, phone_number, time_zone, week_in_program, is_active, created_at, updated_at`

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	out := *m
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	out.CreatedAt, out.UpdatedAt = now, now
	_, err := u.db.ExecContext(ctx, `
        INSERT INTO users (`+userCols+`) VALUES (?,?,?,?,?,?,?,?,?,?,?)
    `, out.ID, out.Email, out.HashedPassword, out.FirstName, out.LastName, out.PhoneNumber,
		out.TimeZone, out.WeekInProgram, out.IsActive, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var out model.User
	if err := row.Scan(&out.ID, &out.Email, &out.HashedPassword, &out.FirstName, &out.LastName,
		&out.PhoneNumber, &out.TimeZone, &out.WeekInProgram, &out.IsActive, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	return scanUser(u.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE id=?`, userID))
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(u.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE email=?`, email))
}

func (u *users) Update(ctx context.Context, m *model.User) (*model.User, error) {
	out := *m
	out.UpdatedAt = time.Now().UTC()
	res, err := u.db.ExecContext(ctx, `
        UPDATE users SET email=?, first_name=?, last_name=?, phone_number=?,
            time_zone=?, week_in_program=?, is_active=?, updated_at=?
        WHERE id=?
    `, out.Email, out.FirstName, out.LastName, out.PhoneNumber,
		out.TimeZone, out.WeekInProgram, out.IsActive, out.UpdatedAt, out.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return &out, nil
}

func (u *users) Delete(ctx context.Context, userID string) error {
	res, err := u.db.ExecContext(ctx, `DELETE FROM users WHERE id=?`, userID)
	if err != nil {
		return mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Diaries ---

type diaries struct{ db *sql.DB }

const diaryCols = `id, user_id, date, bed_time, fall_asleep_time, wake_time, get_up_time,
    awakenings, total_awake_time, sleep_quality, restedness, mood, notes,
    time_in_bed, total_sleep_time, sleep_efficiency, created_at, updated_at`

func (d *diaries) Create(ctx context.Context, e *model.SleepDiaryEntry) (*model.SleepDiaryEntry, error) {
	out := *e
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	out.CreatedAt, out.UpdatedAt = now, now
	_, err := d.db.ExecContext(ctx, `
        INSERT INTO sleep_diaries (`+diaryCols+`)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
    `, out.ID, out.UserID, out.Date, out.BedTime, out.FallAsleepTime, out.WakeTime, out.GetUpTime,
		out.Awakenings, out.TotalAwakeTime, out.SleepQuality, out.Restedness, out.Mood, out.Notes,
		out.TimeInBed, out.TotalSleepTime, out.SleepEfficiency, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanDiary(row rowScanner) (*model.SleepDiaryEntry, error) {
	var out model.SleepDiaryEntry
	if err := row.Scan(&out.ID, &out.UserID, &out.Date, &out.BedTime, &out.FallAsleepTime,
		&out.WakeTime, &out.GetUpTime, &out.Awakenings, &out.TotalAwakeTime,
		&out.SleepQuality, &out.Restedness, &out.Mood, &out.Notes,
		&out.TimeInBed, &out.TotalSleepTime, &out.SleepEfficiency,
		&out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func (d *diaries) GetByID(ctx context.Context, userID, diaryID string) (*model.SleepDiaryEntry, error) {
	return scanDiary(d.db.QueryRowContext(ctx, `
        SELECT `+diaryCols+` FROM sleep_diaries WHERE user_id=? AND id=?
    `, userID, diaryID))
}

func (d *diaries) GetByDate(ctx context.Context, userID string, date strfmt.Date) (*model.SleepDiaryEntry, error) {
	return scanDiary(d.db.QueryRowContext(ctx, `
        SELECT `+diaryCols+` FROM sleep_diaries WHERE user_id=? AND date=?
    `, userID, date))
}

func (d *diaries) List(ctx context.Context, req model.ListDiariesRequest) ([]*model.SleepDiaryEntry, error) {
	rows, err := d.db.QueryContext(ctx, `
        SELECT `+diaryCols+` FROM sleep_diaries
        WHERE user_id=? ORDER BY date DESC LIMIT ? OFFSET ?
    `, req.UserID, req.Limit, req.Skip)
	if err != nil {
		return nil, mapErr(err)
	}
	defer func() { _ = rows.Close() }()

	var out []*model.SleepDiaryEntry
	for rows.Next() {
		e, err := scanDiary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (d *diaries) Update(ctx context.Context, e *model.SleepDiaryEntry) (*model.SleepDiaryEntry, error) {
	out := *e
	out.UpdatedAt = time.Now().UTC()
	res, err := d.db.ExecContext(ctx, `
        UPDATE sleep_diaries SET bed_time=?, fall_asleep_time=?, wake_time=?, get_up_time=?,
            awakenings=?, total_awake_time=?, sleep_quality=?, restedness=?, mood=?,
            notes=?, time_in_bed=?, total_sleep_time=?, sleep_efficiency=?, updated_at=?
        WHERE user_id=? AND id=?
    `, out.BedTime, out.FallAsleepTime, out.WakeTime, out.GetUpTime,
		out.Awakenings, out.TotalAwakeTime, out.SleepQuality, out.Restedness, out.Mood,
		out.Notes, out.TimeInBed, out.TotalSleepTime, out.SleepEfficiency, out.UpdatedAt,
		out.UserID, out.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return &out, nil
}

func (d *diaries) Delete(ctx context.Context, userID, diaryID string) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM sleep_diaries WHERE user_id=? AND id=?`, userID, diaryID)
	if err != nil {
		return mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Goals ---

type goals struct{ db *sql.DB }

func (g *goals) Get(ctx context.Context, userID string) (*model.SleepGoals, error) {
	var out model.SleepGoals
	row := g.db.QueryRowContext(ctx, `
        SELECT user_id, bedtime, wake_time, sleep_duration, sleep_window, created_at, updated_at
        FROM sleep_goals WHERE user_id=?
    `, userID)
	if err := row.Scan(&out.UserID, &out.Bedtime, &out.WakeTime, &out.SleepDuration,
		&out.SleepWindow, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func (g *goals) Upsert(ctx context.Context, m *model.SleepGoals) (*model.SleepGoals, error) {
	out := *m
	now := time.Now().UTC()
	out.CreatedAt, out.UpdatedAt = now, now
	_, err := g.db.ExecContext(ctx, `
        INSERT INTO sleep_goals (user_id, bedtime, wake_time, sleep_duration, sleep_window, created_at, updated_at)
        VALUES (?,?,?,?,?,?,?)
        ON CONFLICT (user_id) DO UPDATE SET
            bedtime=excluded.bedtime, wake_time=excluded.wake_time,
            sleep_duration=excluded.sleep_duration, sleep_window=excluded.sleep_window,
            updated_at=excluded.updated_at
    `, out.UserID, out.Bedtime, out.WakeTime, out.SleepDuration, out.SleepWindow, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return g.Get(ctx, out.UserID)
}

// --- Progress ---

type progress struct{ db *sql.DB }

func (p *progress) StartWeek(ctx context.Context, m *model.ProgramProgress) (*model.ProgramProgress, error) {
	out := *m
	if out.StartedAt.IsZero() {
		out.StartedAt = time.Now().UTC()
	}
	_, err := p.db.ExecContext(ctx, `
        INSERT INTO program_progress (user_id, week, started_at) VALUES (?,?,?)
    `, out.UserID, out.Week, out.StartedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	out.Activities = []model.Activity{}
	return &out, nil
}

func (p *progress) GetWeek(ctx context.Context, userID string, week int) (*model.ProgramProgress, error) {
	var out model.ProgramProgress
	row := p.db.QueryRowContext(ctx, `
        SELECT user_id, week, started_at, completed_at FROM program_progress
        WHERE user_id=? AND week=?
    `, userID, week)
	if err := row.Scan(&out.UserID, &out.Week, &out.StartedAt, &out.CompletedAt); err != nil {
		return nil, mapErr(err)
	}
	acts, err := p.listActivities(ctx, userID, week)
	if err != nil {
		return nil, err
	}
	out.Activities = acts
	return &out, nil
}

func (p *progress) List(ctx context.Context, userID string) ([]*model.ProgramProgress, error) {
	rows, err := p.db.QueryContext(ctx, `
        SELECT user_id, week, started_at, completed_at FROM program_progress
        WHERE user_id=? ORDER BY week ASC
    `, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer func() { _ = rows.Close() }()

	var out []*model.ProgramProgress
	for rows.Next() {
		var pr model.ProgramProgress
		if err := rows.Scan(&pr.UserID, &pr.Week, &pr.StartedAt, &pr.CompletedAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, &pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, pr := range out {
		acts, err := p.listActivities(ctx, userID, pr.Week)
		if err != nil {
			return nil, err
		}
		pr.Activities = acts
	}
	return out, nil
}

func (p *progress) CompleteWeek(ctx context.Context, userID string, week int, at time.Time) (*model.ProgramProgress, error) {
	res, err := p.db.ExecContext(ctx, `
        UPDATE program_progress SET completed_at=? WHERE user_id=? AND week=?
    `, at.UTC(), userID, week)
	if err != nil {
		return nil, mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return p.GetWeek(ctx, userID, week)
}

func (p *progress) AddActivity(ctx context.Context, a *model.Activity) (*model.Activity, error) {
	out := *a
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	if out.CompletedAt.IsZero() {
		out.CompletedAt = time.Now().UTC()
	}
	_, err := p.db.ExecContext(ctx, `
        INSERT INTO activities (id, user_id, week, name, kind, completed_at)
        VALUES (?,?,?,?,?,?)
    `, out.ID, out.UserID, out.Week, out.Name, out.Kind, out.CompletedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func (p *progress) listActivities(ctx context.Context, userID string, week int) ([]model.Activity, error) {
	rows, err := p.db.QueryContext(ctx, `
        SELECT id, user_id, week, name, kind, completed_at FROM activities
        WHERE user_id=? AND week=? ORDER BY completed_at ASC
    `, userID, week)
	if err != nil {
		return nil, mapErr(err)
	}
	defer func() { _ = rows.Close() }()

	out := []model.Activity{}
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Week, &a.Name, &a.Kind, &a.CompletedAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// --- Preferences ---

type preferences struct{ db *sql.DB }

const prefsCols = `user_id, email_reminders, weekly_progress_emails, tips_and_articles, account_alerts,
    sleep_reminders, journal_reminders, progress_updates, achievement_alerts,
    sleep_reminders_frequency, journal_reminders_frequency,
    sleep_reminder_time, morning_reminder_time, created_at, updated_at`

func (p *preferences) Get(ctx context.Context, userID string) (*model.NotificationPreferences, error) {
	var out model.NotificationPreferences
	row := p.db.QueryRowContext(ctx, `SELECT `+prefsCols+` FROM notification_preferences WHERE user_id=?`, userID)
	if err := row.Scan(&out.UserID, &out.EmailReminders, &out.WeeklyProgressEmails, &out.TipsAndArticles,
		&out.AccountAlerts, &out.SleepReminders, &out.JournalReminders, &out.ProgressUpdates,
		&out.AchievementAlerts, &out.SleepRemindersFrequency, &out.JournalRemindersFrequency,
		&out.SleepReminderTime, &out.MorningReminderTime, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func (p *preferences) Upsert(ctx context.Context, m *model.NotificationPreferences) (*model.NotificationPreferences, error) {
	out := *m
	now := time.Now().UTC()
	out.CreatedAt, out.UpdatedAt = now, now
	_, err := p.db.ExecContext(ctx, `
        INSERT INTO notification_preferences (`+prefsCols+`)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
        ON CONFLICT (user_id) DO UPDATE SET
            email_reminders=excluded.email_reminders,
            weekly_progress_emails=excluded.weekly_progress_emails,
            tips_and_articles=excluded.tips_and_articles,
            account_alerts=excluded.account_alerts,
            sleep_reminders=excluded.sleep_reminders,
            journal_reminders=excluded.journal_reminders,
            progress_updates=excluded.progress_updates,
            achievement_alerts=excluded.achievement_alerts,
            sleep_reminders_frequency=excluded.sleep_reminders_frequency,
            journal_reminders_frequency=excluded.journal_reminders_frequency,
            sleep_reminder_time=excluded.sleep_reminder_time,
            morning_reminder_time=excluded.morning_reminder_time,
            updated_at=excluded.updated_at
    `, out.UserID, out.EmailReminders, out.WeeklyProgressEmails, out.TipsAndArticles, out.AccountAlerts,
		out.SleepReminders, out.JournalReminders, out.ProgressUpdates, out.AchievementAlerts,
		out.SleepRemindersFrequency, out.JournalRemindersFrequency,
		out.SleepReminderTime, out.MorningReminderTime, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return p.Get(ctx, out.UserID)
}
