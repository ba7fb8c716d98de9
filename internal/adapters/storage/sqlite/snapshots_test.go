package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puericultura/internal/calendar"
	"puericultura/internal/domain/agents"
	"puericultura/internal/domain/auditlog"
	"puericultura/internal/domain/backup"
	"puericultura/internal/domain/children"
	"puericultura/internal/schedule"
)

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(" ")
	assert.Error(t, err)
}

func TestSnapshotStore_SaveLatestAndPrune(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	_, err = store.Latest(ctx)
	assert.ErrorIs(t, err, backup.ErrNoSnapshot)

	store.keep = 3
	dob := calendar.New(2024, time.January, 3)
	var last backup.Document
	for i := 0; i < 5; i++ {
		at := time.Date(2024, 3, 1, 10, i, 0, 0, time.UTC)
		last = backup.Document{
			Children:    []children.Child{{ID: "c1", Name: "Ana", DateOfBirth: dob, Visits: schedule.Generate(dob)}},
			Agents:      []agents.Agent{{ID: "acs-1", Name: "Joana"}},
			Logs:        []auditlog.Entry{{ID: "l", Timestamp: at, Message: "m"}},
			LastUpdated: &at,
		}
		require.NoError(t, store.Save(ctx, last))
	}

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, last.Children, got.Children)
	require.NotNil(t, got.LastUpdated)
	assert.True(t, last.LastUpdated.Equal(*got.LastUpdated))

	// reabrir el archivo conserva los datos
	require.NoError(t, store.Close())
	again, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = again.Close() })
	got, err = again.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Joana", got.Agents[0].Name)
}
