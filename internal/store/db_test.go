package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-dashboard-wizard/internal/model"
)

func initTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(filepath.Join(t.TempDir(), "test.db")))
}

func TestSessionLifecycle(t *testing.T) {
	initTestDB(t)

	require.NoError(t, SaveSession("s1", model.StepUpload))
	got, err := GetSession("s1")
	require.NoError(t, err)
	assert.Equal(t, "upload", got["step"])
	assert.Equal(t, "idle", got["status"])

	require.NoError(t, UpdateSession("s1", model.StepClean, "cleaned", "data.csv"))
	got, err = GetSession("s1")
	require.NoError(t, err)
	assert.Equal(t, "clean", got["step"])
	assert.Equal(t, "data.csv", got["filename"])

	sessions, err := ListSessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	require.NoError(t, DeleteSession("s1"))
	_, err = GetSession("s1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCleaningRunRoundTrip(t *testing.T) {
	initTestDB(t)
	require.NoError(t, SaveSession("s1", model.StepUpload))

	state := model.CleaningState{
		Cleaned: model.Dataset{{"id": float64(1), "val": "a"}},
		Removed: []model.RemovedRow{
			{ID: "rr-1", Row: model.Record{"id": float64(2), "val": ""}, Reason: "missing value"},
		},
	}
	require.NoError(t, SaveCleaningRun("s1", "removed 1 row", state))

	summary, got, err := GetLatestCleaningRun("s1")
	require.NoError(t, err)
	assert.Equal(t, "removed 1 row", summary)
	assert.Equal(t, state, got)
}

func TestLatestCleaningRunWins(t *testing.T) {
	initTestDB(t)
	require.NoError(t, SaveSession("s1", model.StepUpload))

	first := model.CleaningState{Cleaned: model.Dataset{{"v": "old"}}}
	second := model.CleaningState{Cleaned: model.Dataset{{"v": "new"}}, Removed: []model.RemovedRow{}}
	require.NoError(t, SaveCleaningRun("s1", "first", first))
	require.NoError(t, SaveCleaningRun("s1", "second", second))

	summary, got, err := GetLatestCleaningRun("s1")
	require.NoError(t, err)
	assert.Equal(t, "second", summary)
	assert.Equal(t, "new", got.Cleaned[0]["v"])
}

func TestLogsAndErrors(t *testing.T) {
	initTestDB(t)
	require.NoError(t, SaveSession("s1", model.StepUpload))

	require.NoError(t, SaveSessionLog("s1", "cleaning", "info", "started", map[string]interface{}{"rows": 3}))
	require.NoError(t, SaveSessionLog("s1", "cleaning", "info", "finished", nil))

	logs, err := GetSessionLogs("s1", 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "finished", logs[0]["message"], "newest first")

	require.NoError(t, SaveSessionError("s1", assert.AnError))
	errs, err := GetSessionErrors("s1")
	require.NoError(t, err)
	assert.Len(t, errs, 1)
	assert.NoError(t, SaveSessionError("s1", nil), "nil error is ignored")
}
