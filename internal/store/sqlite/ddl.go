package sqlite

// ddl mirrors the postgres schema. Dates and clock times are TEXT so they
// round-trip identically on both drivers; timestamps are declared TIMESTAMP
// so the driver returns time.Time.
const ddl = `
CREATE TABLE IF NOT EXISTS users (
    id              TEXT PRIMARY KEY,
    email           TEXT NOT NULL UNIQUE,
    hashed_password TEXT NOT NULL,
    first_name      TEXT,
    last_name       TEXT,
    phone_number    TEXT,
    time_zone       TEXT NOT NULL DEFAULT 'America/New_York',
    week_in_program INTEGER NOT NULL DEFAULT 1,
    is_active       INTEGER NOT NULL DEFAULT 1,
    created_at      TIMESTAMP NOT NULL,
    updated_at      TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS sleep_diaries (
    id               TEXT PRIMARY KEY,
    user_id          TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    date             TEXT NOT NULL,
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
    sleep_efficiency REAL NOT NULL,
    created_at       TIMESTAMP NOT NULL,
    updated_at       TIMESTAMP NOT NULL,
    UNIQUE (user_id, date)
);
CREATE INDEX IF NOT EXISTS idx_sleep_diaries_user_date ON sleep_diaries (user_id, date DESC);

CREATE TABLE IF NOT EXISTS sleep_goals (
    user_id        TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    bedtime        TEXT,
    wake_time      TEXT,
    sleep_duration REAL,
    sleep_window   INTEGER,
    created_at     TIMESTAMP NOT NULL,
    updated_at     TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS program_progress (
    user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    week         INTEGER NOT NULL,
    started_at   TIMESTAMP NOT NULL,
    completed_at TIMESTAMP,
    PRIMARY KEY (user_id, week)
);

CREATE TABLE IF NOT EXISTS activities (
    id           TEXT PRIMARY KEY,
    user_id      TEXT NOT NULL,
    week         INTEGER NOT NULL,
    name         TEXT NOT NULL,
    kind         TEXT NOT NULL,
    completed_at TIMESTAMP NOT NULL,
    FOREIGN KEY (user_id, week) REFERENCES program_progress (user_id, week) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS notification_preferences (
    user_id                     TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    email_reminders             INTEGER NOT NULL,
    weekly_progress_emails      INTEGER NOT NULL,
    tips_and_articles           INTEGER NOT NULL,
    account_alerts              INTEGER NOT NULL,
    sleep_reminders             INTEGER NOT NULL,
    journal_reminders           INTEGER NOT NULL,
    progress_updates            INTEGER NOT NULL,
    achievement_alerts          INTEGER NOT NULL,
    sleep_reminders_frequency   TEXT NOT NULL,
    journal_reminders_frequency TEXT NOT NULL,
    sleep_reminder_time         TEXT NOT NULL,
    morning_reminder_time       TEXT NOT NULL,
    created_at                  TIMESTAMP NOT NULL,
    updated_at                  TIMESTAMP NOT NULL
);
`
