package model

// Patch structs carry one optional field per updatable attribute. A nil
// field means "leave unchanged"; Apply merges the present fields into the
// record. This keeps "which fields changed" explicit for callers that need
// to react to specific changes.

// UserPatch is a partial update of a user profile.
type UserPatch struct {
	Email       *string `json:"email,omitempty"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	TimeZone    *string `json:"timeZone,omitempty"`
}

func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = p.FirstName
	}
	if p.LastName != nil {
		u.LastName = p.LastName
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = p.PhoneNumber
	}
	if p.TimeZone != nil {
		u.TimeZone = *p.TimeZone
	}
}

// SleepDiaryPatch is a partial update of a diary entry. The calendar date
// is identity and cannot be patched.
type SleepDiaryPatch struct {
	BedTime        *TimeOfDay `json:"bedTime,omitempty"`
	FallAsleepTime *TimeOfDay `json:"fallAsleepTime,omitempty"`
	WakeTime       *TimeOfDay `json:"wakeTime,omitempty"`
	GetUpTime      *TimeOfDay `json:"getUpTime,omitempty"`
	Awakenings     *int       `json:"awakenings,omitempty"`
	TotalAwakeTime *int       `json:"totalAwakeTime,omitempty"`
	SleepQuality   *int       `json:"sleepQuality,omitempty"`
	Restedness     *int       `json:"restedness,omitempty"`
	Mood           *int       `json:"mood,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
}

// TouchesMetrics reports whether the patch contains any field that feeds
// the derived sleep metrics. When true, TimeInBed, TotalSleepTime and
// SleepEfficiency must be recomputed from the post-merge field values.
func (p SleepDiaryPatch) TouchesMetrics() bool {
	return p.BedTime != nil || p.GetUpTime != nil ||
		p.FallAsleepTime != nil || p.WakeTime != nil ||
		p.TotalAwakeTime != nil
}

func (p SleepDiaryPatch) Apply(e *SleepDiaryEntry) {
	if p.BedTime != nil {
		e.BedTime = *p.BedTime
	}
	if p.FallAsleepTime != nil {
		e.FallAsleepTime = *p.FallAsleepTime
	}
	if p.WakeTime != nil {
		e.WakeTime = *p.WakeTime
	}
	if p.GetUpTime != nil {
		e.GetUpTime = *p.GetUpTime
	}
	if p.Awakenings != nil {
		e.Awakenings = *p.Awakenings
	}
	if p.TotalAwakeTime != nil {
		e.TotalAwakeTime = *p.TotalAwakeTime
	}
	if p.SleepQuality != nil {
		e.SleepQuality = *p.SleepQuality
	}
	if p.Restedness != nil {
		e.Restedness = *p.Restedness
	}
	if p.Mood != nil {
		e.Mood = *p.Mood
	}
	if p.Notes != nil {
		e.Notes = p.Notes
	}
}

// SleepGoalsPatch is a partial update of a user's sleep goals.
type SleepGoalsPatch struct {
	Bedtime       *TimeOfDay `json:"bedtime,omitempty"`
	WakeTime      *TimeOfDay `json:"wakeTime,omitempty"`
	SleepDuration *float64   `json:"sleepDuration,omitempty"`
	SleepWindow   *int       `json:"sleepWindow,omitempty"`
}

func (p SleepGoalsPatch) Apply(g *SleepGoals) {
	if p.Bedtime != nil {
		g.Bedtime = p.Bedtime
	}
	if p.WakeTime != nil {
		g.WakeTime = p.WakeTime
	}
	if p.SleepDuration != nil {
		g.SleepDuration = p.SleepDuration
	}
	if p.SleepWindow != nil {
		g.SleepWindow = p.SleepWindow
	}
}

// NotificationPreferencesPatch is a partial update of notification settings.
type NotificationPreferencesPatch struct {
	EmailReminders       *bool `json:"emailReminders,omitempty"`
	WeeklyProgressEmails *bool `json:"weeklyProgressEmails,omitempty"`
	TipsAndArticles      *bool `json:"tipsAndArticles,omitempty"`
	AccountAlerts        *bool `json:"accountAlerts,omitempty"`

	SleepReminders    *bool `json:"sleepReminders,omitempty"`
	JournalReminders  *bool `json:"journalReminders,omitempty"`
	ProgressUpdates   *bool `json:"progressUpdates,omitempty"`
	AchievementAlerts *bool `json:"achievementAlerts,omitempty"`

	SleepRemindersFrequency   *string `json:"sleepRemindersFrequency,omitempty"`
	JournalRemindersFrequency *string `json:"journalRemindersFrequency,omitempty"`

	SleepReminderTime   *string `json:"sleepReminderTime,omitempty"`
	MorningReminderTime *string `json:"morningReminderTime,omitempty"`
}

func (p NotificationPreferencesPatch) Apply(n *NotificationPreferences) {
	if p.EmailReminders != nil {
		n.EmailReminders = *p.EmailReminders
	}
	if p.WeeklyProgressEmails != nil {
		n.WeeklyProgressEmails = *p.WeeklyProgressEmails
	}
	if p.TipsAndArticles != nil {
		n.TipsAndArticles = *p.TipsAndArticles
	}
	if p.AccountAlerts != nil {
		n.AccountAlerts = *p.AccountAlerts
	}
	if p.SleepReminders != nil {
		n.SleepReminders = *p.SleepReminders
	}
	if p.JournalReminders != nil {
		n.JournalReminders = *p.JournalReminders
	}
	if p.ProgressUpdates != nil {
		n.ProgressUpdates = *p.ProgressUpdates
	}
	if p.AchievementAlerts != nil {
		n.AchievementAlerts = *p.AchievementAlerts
	}
	if p.SleepRemindersFrequency != nil {
		n.SleepRemindersFrequency = *p.SleepRemindersFrequency
	}
	if p.JournalRemindersFrequency != nil {
		n.JournalRemindersFrequency = *p.JournalRemindersFrequency
	}
	if p.SleepReminderTime != nil {
		n.SleepReminderTime = *p.SleepReminderTime
	}
	if p.MorningReminderTime != nil {
		n.MorningReminderTime = *p.MorningReminderTime
	}
}
