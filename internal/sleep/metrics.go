// Package sleep derives the stored sleep metrics from a diary entry's raw
// clock fields.
package sleep

import "github.com/somnahealth/somna-backend/internal/model"

// Metrics are the three derived values attached to a diary entry before it
// is persisted.
type Metrics struct {
	// TimeInBed is minutes between getting into bed and getting out of bed.
	TimeInBed int
	// TotalSleepTime is minutes asleep, excluding awake intervals. It may be
	// negative when totalAwakeTime exceeds the wake-to-sleep window; callers
	// decide whether to reject that.
	TotalSleepTime int
	// Efficiency is TotalSleepTime as a percentage of TimeInBed, 0 when
	// TimeInBed is 0.
	Efficiency float64
}

// Compute converts the four clock times to minutes since midnight, corrects
// each pair once for crossing midnight, and derives the metrics. Inputs are
// assumed to describe a single night, so the roll-over correction adds
// exactly 24 hours and is not applied repeatedly.
func Compute(bed, fallAsleep, wake, getUp model.TimeOfDay, totalAwake int) Metrics {
	bedMins := bed.Minutes()
	getUpMins := getUp.Minutes()
	fallAsleepMins := fallAsleep.Minutes()
	wakeMins := wake.Minutes()

	if getUpMins < bedMins {
		getUpMins += 24 * 60
	}
	if wakeMins < fallAsleepMins {
		wakeMins += 24 * 60
	}

	timeInBed := getUpMins - bedMins
	totalSleep := wakeMins - fallAsleepMins - totalAwake

	efficiency := 0.0
	if timeInBed > 0 {
		efficiency = float64(totalSleep) / float64(timeInBed) * 100
	}

	return Metrics{
		TimeInBed:      timeInBed,
		TotalSleepTime: totalSleep,
		Efficiency:     efficiency,
	}
}

// Recompute refreshes the derived fields on an entry from its current raw
// fields. It is called on create and whenever an update touches any of the
// contributing fields, so the stored metrics never drift from their inputs.
func Recompute(e *model.SleepDiaryEntry) {
	m := Compute(e.BedTime, e.FallAsleepTime, e.WakeTime, e.GetUpTime, e.TotalAwakeTime)
	e.TimeInBed = m.TimeInBed
	e.TotalSleepTime = m.TotalSleepTime
	e.SleepEfficiency = m.Efficiency
}
