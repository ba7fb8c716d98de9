package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puericultura/internal/calendar"
	"puericultura/internal/domain/auditlog"
	"puericultura/internal/domain/children"
	"puericultura/internal/schedule"
)

func TestChildRepo_KeepsInsertionOrderAndCopies(t *testing.T) {
	repo := NewChildRepo()
	ctx := context.Background()

	for _, id := range []string{"b", "a", "c"} {
		dob := calendar.New(2024, time.January, 3)
		require.NoError(t, repo.Create(ctx, children.Child{ID: id, Name: id, DateOfBirth: dob, Visits: schedule.Generate(dob)}))
	}
	require.Error(t, repo.Create(ctx, children.Child{ID: "a"}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{items[0].ID, items[1].ID, items[2].ID})

	// mutar lo devuelto no toca el repo
	items[0].Visits[0].Milestone = "x"
	got, err := repo.GetByID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Recém-nascido", got.Visits[0].Milestone)

	require.NoError(t, repo.Delete(ctx, "a"))
	assert.ErrorIs(t, repo.Delete(ctx, "a"), children.ErrNotFound)
	_, err = repo.GetByID(ctx, "a")
	assert.ErrorIs(t, err, children.ErrNotFound)

	require.Error(t, repo.ReplaceAll(ctx, []children.Child{{ID: "x"}, {ID: "x"}}))
	items, _ = repo.List(ctx)
	assert.Len(t, items, 2, "failed replace keeps previous state")
}

func TestAuditLogRepo_NewestFirst(t *testing.T) {
	repo := NewAuditLogRepo()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, msg := range []string{"uno", "dos", "tres"} {
		require.NoError(t, repo.Append(ctx, auditlog.Entry{ID: msg, Timestamp: base.Add(time.Duration(i) * time.Minute), Message: msg}))
	}

	items, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "tres", items[0].Message)
	assert.Equal(t, "dos", items[1].Message)

	require.NoError(t, repo.ReplaceAll(ctx, []auditlog.Entry{
		{ID: "old", Timestamp: base},
		{ID: "new", Timestamp: base.Add(time.Hour)},
	}))
	items, _ = repo.List(ctx, 0)
	assert.Equal(t, "new", items[0].ID)
}
