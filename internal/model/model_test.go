package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(WorkPending, WorkPending))
	assert.True(t, CanTransition(WorkPending, WorkInProgress))
	assert.True(t, CanTransition(WorkInProgress, WorkCompleted))
	assert.False(t, CanTransition(WorkPending, WorkCompleted))
	assert.False(t, CanTransition(WorkCompleted, WorkPending))
	assert.False(t, CanTransition(WorkInProgress, WorkPending))
	assert.False(t, CanTransition(WorkPending, "archived"))
}

func TestBeforeCreateKeepsExistingID(t *testing.T) {
	m := &Model{}
	require.NoError(t, m.BeforeCreate(nil))
	assert.Len(t, m.ID, 36)

	m = &Model{ID: "fixed"}
	require.NoError(t, m.BeforeCreate(nil))
	assert.Equal(t, "fixed", m.ID)
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	d, err := ParseDate("2024-03-09", loc)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09", FormatDate(d))

	d, err = ParseDate("2024-03-09T22:00:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", FormatDate(d))

	_, err = ParseDate("09/03/2024", loc)
	assert.Error(t, err)
}
