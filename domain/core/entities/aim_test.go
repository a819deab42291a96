package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAim_NormalizesRelatedTodos(t *testing.T) {
	aim, err := NewAim("aim1", "user1", "Learn Go", "", "study", 600, `["t1","t2","t1"]`, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, aim.RelatedTodos().Values())
	assert.Equal(t, 0, aim.Progress())
	assert.Len(t, aim.GetUncommittedEvents(), 1)
}

func TestNewAim_Validation(t *testing.T) {
	_, err := NewAim("", "user1", "title", "", "", 0, nil, nil)
	assert.Error(t, err)

	_, err = NewAim("aim1", "", "title", "", "", 0, nil, nil)
	assert.Error(t, err)

	_, err = NewAim("aim1", "user1", "", "", "", 0, nil, nil)
	assert.Error(t, err)

	_, err = NewAim("aim1", "user1", "title", "", "", -10, nil, nil)
	assert.Error(t, err)
}

func TestAim_SetProgress_Bounds(t *testing.T) {
	aim, _ := NewAim("aim1", "user1", "title", "", "", 100, nil, nil)

	assert.Error(t, aim.SetProgress(-1))
	assert.Error(t, aim.SetProgress(101))

	assert.NoError(t, aim.SetProgress(0))
	assert.NoError(t, aim.SetProgress(100))
	assert.Equal(t, 100, aim.Progress())
}

func TestAim_ReplaceRelatedTodos_Wholesale(t *testing.T) {
	aim, _ := NewAim("aim1", "user1", "title", "", "", 100, []string{"old1", "old2"}, nil)

	replaced := aim.ReplaceRelatedTodos([]string{"new1"})

	// The old list is discarded, never merged.
	assert.Equal(t, []string{"new1"}, replaced.Values())
	assert.Equal(t, []string{"new1"}, aim.RelatedTodos().Values())
}

func TestAim_ReplaceRelatedTodos_EmptyClearsLinks(t *testing.T) {
	aim, _ := NewAim("aim1", "user1", "title", "", "", 100, []string{"t1"}, nil)

	replaced := aim.ReplaceRelatedTodos(nil)

	assert.True(t, replaced.IsEmpty())
	assert.True(t, aim.RelatedTodos().IsEmpty())
}

func TestAim_Apply_SparseUpdate(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	aim := ReconstructAim("aim1", "user1", "old", "desc", "study", 300, []string{"t1"}, nil, 50, now, now)

	target := 600
	title := "new"
	err := aim.Apply(AimUpdate{Title: &title, TargetMinutes: &target})

	require.NoError(t, err)
	assert.Equal(t, "new", aim.Title())
	assert.Equal(t, 600, aim.TargetMinutes())
	// Progress and linked todos are not touched by a field update.
	assert.Equal(t, 50, aim.Progress())
	assert.Equal(t, []string{"t1"}, aim.RelatedTodos().Values())
}

func TestAim_Apply_Validation(t *testing.T) {
	aim, _ := NewAim("aim1", "user1", "title", "", "", 100, nil, nil)

	empty := ""
	assert.Error(t, aim.Apply(AimUpdate{Title: &empty}))

	negative := -1
	assert.Error(t, aim.Apply(AimUpdate{TargetMinutes: &negative}))
}
