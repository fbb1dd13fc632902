package postgres

// schema is applied idempotently at startup. Clock-of-day columns are stored
// as "HH:MM" text so both store drivers round-trip model.TimeOfDay the same
// way.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id              TEXT PRIMARY KEY,
    email           TEXT NOT NULL UNIQUE,
    hashed_password TEXT NOT NULL,
    first_name      TEXT,
    last_name       TEXT,
    phone_number    TEXT,
    time_zone       TEXT NOT NULL DEFAULT 'America/New_York',
    week_in_program INTEGER NOT NULL DEFAULT 1,
    is_active       BOOLEAN NOT NULL DEFAULT TRUE,
    created_at      TIMESTAMPTZ NOT NULL,
    updated_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS sleep_diaries (
    id               TEXT PRIMARY KEY,
    user_id          TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    date             DATE NOT NULL,
    bed_time         TEXT NOT NULL,
    fall_asleep_time TEXT NOT NULL,
    wake_time        TEXT NOT NULL,
    get_up_time      TEXT NOT NULL,
    awakenings       INTEGER NOT NULL DEFAULT 0,
    total_awake_time INTEGER NOT NULL DEFAULT 0,
    sleep_quality    INTEGER NOT NULL,
    restedness       INTEGER NOT NULL,
    mood             INTEGER NOT NULL,
    notes            TEXT,
    time_in_bed      INTEGER NOT NULL,
    total_sleep_time INTEGER NOT NULL,
    sleep_efficiency DOUBLE PRECISION NOT NULL,
    created_at       TIMESTAMPTZ NOT NULL,
    updated_at       TIMESTAMPTZ NOT NULL,
    UNIQUE (user_id, date)
);
CREATE INDEX IF NOT EXISTS idx_sleep_diaries_user_date ON sleep_diaries (user_id, date DESC);

CREATE TABLE IF NOT EXISTS sleep_goals (
    user_id        TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    bedtime        TEXT,
    wake_time      TEXT,
    sleep_duration DOUBLE PRECISION,
    sleep_window   INTEGER,
    created_at     TIMESTAMPTZ NOT NULL,
    updated_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS program_progress (
    user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    week         INTEGER NOT NULL,
    started_at   TIMESTAMPTZ NOT NULL,
    completed_at TIMESTAMPTZ,
    PRIMARY KEY (user_id, week)
);

CREATE TABLE IF NOT EXISTS activities (
    id           TEXT PRIMARY KEY,
    user_id      TEXT NOT NULL,
    week         INTEGER NOT NULL,
    name         TEXT NOT NULL,
    kind         TEXT NOT NULL,
    completed_at TIMESTAMPTZ NOT NULL,
    FOREIGN KEY (user_id, week) REFERENCES program_progress (user_id, week) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS notification_preferences (
    user_id                     TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    email_reminders             BOOLEAN NOT NULL,
    weekly_progress_emails      BOOLEAN NOT NULL,
    tips_and_articles           BOOLEAN NOT NULL,
    account_alerts              BOOLEAN NOT NULL,
    sleep_reminders             BOOLEAN NOT NULL,
    journal_reminders           BOOLEAN NOT NULL,
    progress_updates            BOOLEAN NOT NULL,
    achievement_alerts          BOOLEAN NOT NULL,
    sleep_reminders_frequency   TEXT NOT NULL,
    journal_reminders_frequency TEXT NOT NULL,
    sleep_reminder_time         TEXT NOT NULL,
    morning_reminder_time       TEXT NOT NULL,
    created_at                  TIMESTAMPTZ NOT NULL,
    updated_at                  TIMESTAMPTZ NOT NULL
);
`
