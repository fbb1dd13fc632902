package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSleepDiaryPatchTouchesMetrics(t *testing.T) {
	bed := TimeOfDay{23, 0}
	awake := 20
	quality := 4

	assert.False(t, SleepDiaryPatch{}.TouchesMetrics())
	assert.False(t, SleepDiaryPatch{SleepQuality: &quality}.TouchesMetrics())
	assert.True(t, SleepDiaryPatch{BedTime: &bed}.TouchesMetrics())
	assert.True(t, SleepDiaryPatch{GetUpTime: &bed}.TouchesMetrics())
	assert.True(t, SleepDiaryPatch{FallAsleepTime: &bed}.TouchesMetrics())
	assert.True(t, SleepDiaryPatch{WakeTime: &bed}.TouchesMetrics())
	assert.True(t, SleepDiaryPatch{TotalAwakeTime: &awake}.TouchesMetrics())
}

func TestSleepDiaryPatchApplyMergesOnlyPresentFields(t *testing.T) {
	entry := SleepDiaryEntry{
		BedTime:      TimeOfDay{23, 0},
		WakeTime:     TimeOfDay{7, 0},
		SleepQuality: 3,
		Awakenings:   2,
	}

	wake := TimeOfDay{6, 30}
	quality := 5
	(SleepDiaryPatch{WakeTime: &wake, SleepQuality: &quality}).Apply(&entry)

	assert.Equal(t, TimeOfDay{23, 0}, entry.BedTime)
	assert.Equal(t, TimeOfDay{6, 30}, entry.WakeTime)
	assert.Equal(t, 5, entry.SleepQuality)
	assert.Equal(t, 2, entry.Awakenings)
}

func TestUserPatchApply(t *testing.T) {
	u := User{Email: "old@example.com", TimeZone: "UTC"}

	email := "new@example.com"
	first := "Ada"
	(UserPatch{Email: &email, FirstName: &first}).Apply(&u)

	assert.Equal(t, "new@example.com", u.Email)
	assert.Equal(t, "Ada", *u.FirstName)
	assert.Equal(t, "UTC", u.TimeZone)
}

func TestNotificationPreferencesPatchApply(t *testing.T) {
	n := DefaultNotificationPreferences("user-1")

	off := false
	freq := "weekdays"
	(NotificationPreferencesPatch{SleepReminders: &off, SleepRemindersFrequency: &freq}).Apply(n)

	assert.False(t, n.SleepReminders)
	assert.Equal(t, "weekdays", n.SleepRemindersFrequency)
	assert.True(t, n.JournalReminders)
}
