package sleep

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/somnahealth/somna-backend/internal/model"
)

func tod(h, m int) model.TimeOfDay { return model.TimeOfDay{Hour: h, Minute: m} }

func TestComputeNoRollOver(t *testing.T) {
	// get-up after bed on the same numeric day: plain subtraction.
	m := Compute(tod(1, 30), tod(2, 0), tod(8, 0), tod(8, 30), 0)
	assert.Equal(t, 420, m.TimeInBed)
	assert.Equal(t, 360, m.TotalSleepTime)
	assert.InDelta(t, 85.71, m.Efficiency, 0.01)
}

func TestComputeRollOver(t *testing.T) {
	m := Compute(tod(23, 0), tod(23, 30), tod(6, 30), tod(7, 0), 0)
	assert.Equal(t, 480, m.TimeInBed, "23:00 to 07:00 crosses midnight")
	assert.Equal(t, 420, m.TotalSleepTime)
}

func TestComputeExampleNight(t *testing.T) {
	// bed 23:00, asleep 23:15, wake 06:45, up 07:00, 10 min awake.
	m := Compute(tod(23, 0), tod(23, 15), tod(6, 45), tod(7, 0), 10)
	assert.Equal(t, 480, m.TimeInBed)
	assert.Equal(t, 455, m.TotalSleepTime)
	assert.InDelta(t, 94.79, m.Efficiency, 0.01)
}

func TestComputeZeroTimeInBed(t *testing.T) {
	m := Compute(tod(23, 0), tod(23, 0), tod(23, 0), tod(23, 0), 0)
	assert.Equal(t, 0, m.TimeInBed)
	assert.Equal(t, 0.0, m.Efficiency, "no division by zero")
}

func TestComputeNegativeSleepTimeNotClamped(t *testing.T) {
	// Awake time exceeds the wake window; the calculator reports the raw
	// negative value and leaves validation to the caller.
	m := Compute(tod(23, 0), tod(23, 30), tod(0, 30), tod(1, 0), 120)
	assert.Equal(t, -60, m.TotalSleepTime)
}

func TestComputeIdempotent(t *testing.T) {
	a := Compute(tod(22, 45), tod(23, 10), tod(5, 50), tod(6, 15), 25)
	b := Compute(tod(22, 45), tod(23, 10), tod(5, 50), tod(6, 15), 25)
	assert.Equal(t, a, b)
}

func TestRecompute(t *testing.T) {
	e := &model.SleepDiaryEntry{
		BedTime:        tod(23, 0),
		FallAsleepTime: tod(23, 15),
		WakeTime:       tod(6, 45),
		GetUpTime:      tod(7, 0),
		TotalAwakeTime: 10,
	}
	Recompute(e)
	assert.Equal(t, 480, e.TimeInBed)
	assert.Equal(t, 455, e.TotalSleepTime)
	assert.InDelta(t, 94.79, e.SleepEfficiency, 0.01)

	// Same inputs, same outputs.
	Recompute(e)
	assert.Equal(t, 455, e.TotalSleepTime)
}
