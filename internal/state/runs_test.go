package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RecordAndListRuns(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordRun(Run{
		Target:     "build",
		FilePath:   "/tmp/Makefile",
		Status:     RunStatusSuccess,
		StartedAt:  base,
		DurationMs: 1200,
	}))
	require.NoError(t, s.RecordRun(Run{
		Target:    "deploy",
		Variables: "ENV=prod",
		Status:    RunStatusFailed,
		StartedAt: base.Add(time.Minute),
	}))

	runs, err := s.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Most recent first.
	assert.Equal(t, "deploy", runs[0].Target)
	assert.Equal(t, RunStatusFailed, runs[0].Status)
	assert.Equal(t, "ENV=prod", runs[0].Variables)
	assert.Equal(t, "build", runs[1].Target)
	assert.EqualValues(t, 1200, runs[1].DurationMs)

	assert.NotEmpty(t, runs[0].ID, "runs are assigned generated IDs")
}

func TestStore_RecentRunsLimit(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.RecordRun(Run{
			Target:    "build",
			Status:    RunStatusSuccess,
			StartedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	runs, err := s.RecentRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}
