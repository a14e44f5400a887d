package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomastro/sortify/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "sortify.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func sampleRun(id string, startedAt time.Time) *model.Run {
	return &model.Run{
		ID:         id,
		TargetDir:  "/downloads",
		Model:      "gpt-oss:20b-cloud",
		TotalFiles: 2,
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(3 * time.Second),
		Results: []model.MoveResult{
			{
				Move:        model.Move{Entry: model.FileEntry{Name: "a.pdf"}, Category: model.CategoryDocuments},
				Destination: "/downloads/Documents/a.pdf",
				Status:      model.MoveApplied,
			},
			{
				Move:        model.Move{Entry: model.FileEntry{Name: "写真.jpg"}, Category: model.CategoryOther, Fallback: true},
				Destination: "/downloads/Other/写真.jpg",
				Status:      model.MoveConflict,
				Error:       "destination already exists",
			},
		},
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Migrate(context.Background()))
}

func TestSaveAndListRuns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.SaveRun(ctx, sampleRun("run-1", base.Add(-time.Hour))))
	require.NoError(t, store.SaveRun(ctx, sampleRun("run-2", base)))

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "run-2", runs[0].ID, "newest first")
	assert.Equal(t, "run-1", runs[1].ID)
	assert.Equal(t, "/downloads", runs[0].TargetDir)
	assert.Equal(t, 2, runs[0].TotalFiles)
	assert.Empty(t, runs[0].Results, "list omits per-file results")
}

func TestGetLatestRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	latest, err := store.GetLatestRun(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest, "no runs recorded yet")

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.SaveRun(ctx, sampleRun("run-1", base.Add(-time.Hour))))
	require.NoError(t, store.SaveRun(ctx, sampleRun("run-2", base)))

	latest, err = store.GetLatestRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)

	assert.Equal(t, "run-2", latest.ID)
	require.Len(t, latest.Results, 2)

	assert.Equal(t, "a.pdf", latest.Results[0].Move.Entry.Name)
	assert.Equal(t, model.CategoryDocuments, latest.Results[0].Move.Category)
	assert.Equal(t, model.MoveApplied, latest.Results[0].Status)

	assert.Equal(t, "写真.jpg", latest.Results[1].Move.Entry.Name, "unicode filenames round-trip")
	assert.True(t, latest.Results[1].Move.Fallback)
	assert.Equal(t, model.MoveConflict, latest.Results[1].Status)
	assert.Equal(t, "destination already exists", latest.Results[1].Error)
}

func TestSaveRunValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.Error(t, store.SaveRun(ctx, nil))
	require.Error(t, store.SaveRun(ctx, &model.Run{}))
}
