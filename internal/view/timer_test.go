package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)

func TestExpiry_DaysBucket(t *testing.T) {
	at := time.Date(2026, 2, 13, 22, 0, 0, 0, time.UTC)
	lbl := Expiry(&at, fixedNow)
	assert.Equal(t, "3d left", lbl.Text)
	assert.False(t, lbl.Urgent)
	assert.True(t, lbl.Show)
}

func TestExpiry_HoursBucket(t *testing.T) {
	at := time.Date(2026, 2, 10, 15, 0, 0, 0, time.UTC)
	lbl := Expiry(&at, fixedNow)
	assert.Equal(t, "5h 0m left", lbl.Text)
	assert.True(t, lbl.Urgent) // five hours is inside the six-hour urgency window
}

func TestExpiry_HoursNotUrgentAboveSix(t *testing.T) {
	at := fixedNow.Add(10*time.Hour + 30*time.Minute)
	lbl := Expiry(&at, fixedNow)
	assert.Equal(t, "10h 30m left", lbl.Text)
	assert.False(t, lbl.Urgent)
}

func TestExpiry_MinutesBucket(t *testing.T) {
	at := fixedNow.Add(45 * time.Minute)
	lbl := Expiry(&at, fixedNow)
	assert.Equal(t, "45m left", lbl.Text)
	assert.True(t, lbl.Urgent)
}

func TestExpiry_Past(t *testing.T) {
	at := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	lbl := Expiry(&at, fixedNow)
	assert.Equal(t, "Expired", lbl.Text)
	assert.True(t, lbl.Urgent)
}

func TestExpiry_NoDeadline(t *testing.T) {
	lbl := Expiry(nil, fixedNow)
	assert.False(t, lbl.Show)
	assert.Empty(t, lbl.Text)
}
