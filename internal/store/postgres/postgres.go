// Package postgres implements store.Store against PostgreSQL using the pgx
// stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/somnahealth/somna-backend/internal/model"
	"github.com/somnahealth/somna-backend/internal/store"
)

// Open opens a PostgreSQL connection and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users             { return &users{db: s.db} }
func (s *pgStore) Diaries() store.Diaries         { return &diaries{db: s.db} }
func (s *pgStore) Goals() store.Goals             { return &goals{db: s.db} }
func (s *pgStore) Progress() store.Progress       { return &progress{db: s.db} }
func (s *pgStore) Preferences() store.Preferences { return &preferences{db: s.db} }

// HealthPing implements store.HealthPinger.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Bootstrap opens the database and applies the schema idempotently.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

// mapErr translates driver errors into the sentinel errors services expect.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return model.ErrConflict
		case "23503": // foreign_key_violation: the user scope does not exist
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
        INSERT INTO users (`+userCols+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
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
	return scanUser(u.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, userID))
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(u.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE email=$1`, email))
}

func (u *users) Update(ctx context.Context, m *model.User) (*model.User, error) {
	out := *m
	out.UpdatedAt = time.Now().UTC()
	res, err := u.db.ExecContext(ctx, `
        UPDATE users SET email=$2, first_name=$3, last_name=$4, phone_number=$5,
            time_zone=$6, week_in_program=$7, is_active=$8, updated_at=$9
        WHERE id=$1
    `, out.ID, out.Email, out.FirstName, out.LastName, out.PhoneNumber,
		out.TimeZone, out.WeekInProgram, out.IsActive, out.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return &out, nil
}

func (u *users) Delete(ctx context.Context, userID string) error {
	res, err := u.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, userID)
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
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
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
        SELECT `+diaryCols+` FROM sleep_diaries WHERE user_id=$1 AND id=$2
    `, userID, diaryID))
}

func (d *diaries) GetByDate(ctx context.Context, userID string, date strfmt.Date) (*model.SleepDiaryEntry, error) {
	return scanDiary(d.db.QueryRowContext(ctx, `
        SELECT `+diaryCols+` FROM sleep_diaries WHERE user_id=$1 AND date=$2
    `, userID, date))
}

func (d *diaries) List(ctx context.Context, req model.ListDiariesRequest) ([]*model.SleepDiaryEntry, error) {
	rows, err := d.db.QueryContext(ctx, `
        SELECT `+diaryCols+` FROM sleep_diaries
        WHERE user_id=$1 ORDER BY date DESC LIMIT $2 OFFSET $3
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
        UPDATE sleep_diaries SET bed_time=$3, fall_asleep_time=$4, wake_time=$5, get_up_time=$6,
            awakenings=$7, total_awake_time=$8, sleep_quality=$9, restedness=$10, mood=$11,
            notes=$12, time_in_bed=$13, total_sleep_time=$14, sleep_efficiency=$15, updated_at=$16
        WHERE user_id=$1 AND id=$2
    `, out.UserID, out.ID, out.BedTime, out.FallAsleepTime, out.WakeTime, out.GetUpTime,
		out.Awakenings, out.TotalAwakeTime, out.SleepQuality, out.Restedness, out.Mood,
		out.Notes, out.TimeInBed, out.TotalSleepTime, out.SleepEfficiency, out.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return &out, nil
}

func (d *diaries) Delete(ctx context.Context, userID, diaryID string) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM sleep_diaries WHERE user_id=$1 AND id=$2`, userID, diaryID)
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
        FROM sleep_goals WHERE user_id=$1
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
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (user_id) DO UPDATE SET
            bedtime=EXCLUDED.bedtime, wake_time=EXCLUDED.wake_time,
            sleep_duration=EXCLUDED.sleep_duration, sleep_window=EXCLUDED.sleep_window,
            updated_at=EXCLUDED.updated_at
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
        INSERT INTO program_progress (user_id, week, started_at) VALUES ($1,$2,$3)
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
        WHERE user_id=$1 AND week=$2
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
        WHERE user_id=$1 ORDER BY week ASC
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
        UPDATE program_progress SET completed_at=$3 WHERE user_id=$1 AND week=$2
    `, userID, week, at.UTC())
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
        VALUES ($1,$2,$3,$4,$5,$6)
    `, out.ID, out.UserID, out.Week, out.Name, out.Kind, out.CompletedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func (p *progress) listActivities(ctx context.Context, userID string, week int) ([]model.Activity, error) {
	rows, err := p.db.QueryContext(ctx, `
        SELECT id, user_id, week, name, kind, completed_at FROM activities
        WHERE user_id=$1 AND week=$2 ORDER BY completed_at ASC
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
	row := p.db.QueryRowContext(ctx, `SELECT `+prefsCols+` FROM notification_preferences WHERE user_id=$1`, userID)
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
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        ON CONFLICT (user_id) DO UPDATE SET
            email_reminders=EXCLUDED.email_reminders,
            weekly_progress_emails=EXCLUDED.weekly_progress_emails,
            tips_and_articles=EXCLUDED.tips_and_articles,
            account_alerts=EXCLUDED.account_alerts,
            sleep_reminders=EXCLUDED.sleep_reminders,
            journal_reminders=EXCLUDED.journal_reminders,
            progress_updates=EXCLUDED.progress_updates,
            achievement_alerts=EXCLUDED.achievement_alerts,
            sleep_reminders_frequency=EXCLUDED.sleep_reminders_frequency,
            journal_reminders_frequency=EXCLUDED.journal_reminders_frequency,
            sleep_reminder_time=EXCLUDED.sleep_reminder_time,
            morning_reminder_time=EXCLUDED.morning_reminder_time,
            updated_at=EXCLUDED.updated_at
    `, out.UserID, out.EmailReminders, out.WeeklyProgressEmails, out.TipsAndArticles, out.AccountAlerts,
		out.SleepReminders, out.JournalReminders, out.ProgressUpdates, out.AchievementAlerts,
		out.SleepRemindersFrequency, out.JournalRemindersFrequency,
		out.SleepReminderTime, out.MorningReminderTime, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return p.Get(ctx, out.UserID)
}
