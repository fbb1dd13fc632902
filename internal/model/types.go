package model

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// User represents an account in the system. HashedPassword never leaves
// the server; the json tag strips it from every response body.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	FirstName      *string   `json:"firstName,omitempty"`
	LastName       *string   `json:"lastName,omitempty"`
	PhoneNumber    *string   `json:"phoneNumber,omitempty"`
	TimeZone       string    `json:"timeZone"`
	WeekInProgram  int       `json:"weekInProgram"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SleepDiaryEntry is one night's diary record. TimeInBed, TotalSleepTime and
// SleepEfficiency are derived from the raw clock fields and are recomputed
// whenever any contributing field changes; they are never user-supplied.
type SleepDiaryEntry struct {
	ID     string      `json:"id"`
	UserID string      `json:"userId"`
	Date   strfmt.Date `json:"date"`

	BedTime        TimeOfDay `json:"bedTime"`
	FallAsleepTime TimeOfDay `json:"fallAsleepTime"`
	WakeTime       TimeOfDay `json:"wakeTime"`
	GetUpTime      TimeOfDay `json:"getUpTime"`

	Awakenings     int `json:"awakenings"`
	TotalAwakeTime int `json:"totalAwakeTime"`

	SleepQuality int     `json:"sleepQuality"`
	Restedness   int     `json:"restedness"`
	Mood         int     `json:"mood"`
	Notes        *string `json:"notes,omitempty"`

	TimeInBed       int     `json:"timeInBed"`
	TotalSleepTime  int     `json:"totalSleepTime"`
	SleepEfficiency float64 `json:"sleepEfficiency"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SleepGoals holds a user's target sleep schedule. One row per user.
type SleepGoals struct {
	UserID        string     `json:"userId"`
	Bedtime       *TimeOfDay `json:"bedtime,omitempty"`
	WakeTime      *TimeOfDay `json:"wakeTime,omitempty"`
	SleepDuration *float64   `json:"sleepDuration,omitempty"`
	SleepWindow   *int       `json:"sleepWindow,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ProgramProgress tracks one week of the 12-week CBT-I program.
type ProgramProgress struct {
	UserID      string     `json:"userId"`
	Week        int        `json:"week"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Activities  []Activity `json:"activities"`
}

// Activity is a completed program exercise within a week.
type Activity struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Week        int       `json:"week"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	CompletedAt time.Time `json:"completedAt"`
}

// NotificationPreferences stores per-user reminder settings. One row per
// user; reads fall back to defaults when the user never saved any.
type NotificationPreferences struct {
	UserID string `json:"userId"`

	EmailReminders       bool `json:"emailReminders"`
	WeeklyProgressEmails bool `json:"weeklyProgressEmails"`
	TipsAndArticles      bool `json:"tipsAndArticles"`
	AccountAlerts        bool `json:"accountAlerts"`

	SleepReminders    bool `json:"sleepReminders"`
	JournalReminders  bool `json:"journalReminders"`
	ProgressUpdates   bool `json:"progressUpdates"`
	AchievementAlerts bool `json:"achievementAlerts"`

	SleepRemindersFrequency   string `json:"sleepRemindersFrequency"`
	JournalRemindersFrequency string `json:"journalRemindersFrequency"`

	SleepReminderTime   string `json:"sleepReminderTime"`
	MorningReminderTime string `json:"morningReminderTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultNotificationPreferences returns the settings a user has before
// saving any of their own.
func DefaultNotificationPreferences(userID string) *NotificationPreferences {
	return &NotificationPreferences{
		UserID:                    userID,
		EmailReminders:            true,
		WeeklyProgressEmails:      true,
		TipsAndArticles:           false,
		AccountAlerts:             true,
		SleepReminders:            true,
		JournalReminders:          true,
		ProgressUpdates:           true,
		AchievementAlerts:         true,
		SleepRemindersFrequency:   "daily",
		JournalRemindersFrequency: "daily",
		SleepReminderTime:         "21:00",
		MorningReminderTime:       "08:00",
	}
}

// ListDiariesRequest captures pagination used when listing diary entries.
type ListDiariesRequest struct {
	UserID string
	Limit  int
	Skip   int
}
