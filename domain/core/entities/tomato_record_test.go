package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTomatoRecord(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	record, err := NewTomatoRecord("rec1", "user1", "todo1", "Write report", "work", start)

	assert.NoError(t, err)
	assert.True(t, record.InProgress())
	assert.Nil(t, record.EndTime())
	assert.Equal(t, start, record.StartTime())
}

func TestNewTomatoRecord_Validation(t *testing.T) {
	start := time.Now()

	_, err := NewTomatoRecord("", "user1", "todo1", "t", "c", start)
	assert.Error(t, err)

	_, err = NewTomatoRecord("rec1", "", "todo1", "t", "c", start)
	assert.Error(t, err)

	_, err = NewTomatoRecord("rec1", "user1", "", "t", "c", start)
	assert.Error(t, err)
}

func TestNewTomatoRecord_ZeroStartDefaultsToNow(t *testing.T) {
	record, err := NewTomatoRecord("rec1", "user1", "todo1", "t", "c", time.Time{})

	assert.NoError(t, err)
	assert.False(t, record.StartTime().IsZero())
}

func TestTomatoRecord_Finalize(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	record, _ := NewTomatoRecord("rec1", "user1", "todo1", "t", "c", start)

	err := record.Finalize(start.Add(25*time.Minute), 25, true, false)

	assert.NoError(t, err)
	assert.False(t, record.InProgress())
	assert.True(t, record.Completed())
	assert.Equal(t, 25, record.Duration())
	assert.Len(t, record.GetUncommittedEvents(), 1)
}

func TestTomatoRecord_Finalize_EndBeforeStart(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	record, _ := NewTomatoRecord("rec1", "user1", "todo1", "t", "c", start)

	err := record.Finalize(start.Add(-time.Minute), 25, true, false)

	assert.Error(t, err)
	assert.True(t, record.InProgress())
}

func TestTomatoRecord_Finalize_AutoSavedRaisesNoEvent(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	record, _ := NewTomatoRecord("rec1", "user1", "todo1", "t", "c", start)

	err := record.Finalize(start.Add(10*time.Minute), 10, false, true)

	assert.NoError(t, err)
	assert.True(t, record.AutoSaved())
	assert.Empty(t, record.GetUncommittedEvents())
}

func TestTomatoRecord_Minutes_StoredDurationWins(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(50 * time.Minute)

	record := ReconstructTomatoRecord("rec1", "user1", "todo1", "t", "c", start, &end, 25, true, false, false)

	assert.Equal(t, 25, record.Minutes())
}

func TestTomatoRecord_Minutes_DerivedFromTimestamps(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	// 1,500,000 ms is exactly 25 minutes.
	end := start.Add(1500000 * time.Millisecond)

	record := ReconstructTomatoRecord("rec1", "user1", "todo1", "t", "c", start, &end, 0, true, false, false)

	assert.Equal(t, 25, record.Minutes())
}

func TestTomatoRecord_Minutes_RoundsHalfUp(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)

	record := ReconstructTomatoRecord("rec1", "user1", "todo1", "t", "c", start, &end, 0, true, false, false)

	assert.Equal(t, 2, record.Minutes())
}

func TestTomatoRecord_Minutes_LiveRecordContributesNothing(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	record := ReconstructTomatoRecord("rec1", "user1", "todo1", "t", "c", start, nil, 0, false, true, false)

	assert.Equal(t, 0, record.Minutes())
}
