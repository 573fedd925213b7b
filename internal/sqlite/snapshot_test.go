package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
	"github.com/Lilw3n/multisite-platform-sub002/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRepository_LoadMissing(t *testing.T) {
	repo := NewSnapshotRepository(NewTestDB(t), "")

	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Revision(context.Background())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSnapshotRepository_SaveAndLoad(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db, "test.projects")
	ctx := context.Background()

	parentID := "p1"
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	projects := []project.Project{
		{ID: "p1", Name: "Root", Type: project.TypeInsurance, Status: project.StatusActive, Priority: project.PriorityHigh,
			Children: []string{"p2"}, Path: []string{}, CreatedAt: created},
		{ID: "p2", Name: "Child", Type: project.TypeLegal, Status: project.StatusDraft, Priority: project.PriorityLow,
			ParentID: &parentID, Children: []string{}, Path: []string{"p1"}, Level: 1, CreatedAt: created,
			Items: []project.Item{{ID: "i1", Title: "Quote", Status: project.ItemCompleted}}, TotalItems: 1, CompletedItems: 1},
	}

	require.NoError(t, repo.Save(ctx, project.Snapshot{Projects: projects, Roots: []string{"p1"}}))

	snap, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"p1"}, snap.Roots)
	loaded := snap.Projects
	require.Len(t, loaded, 2)
	require.Equal(t, "Root", loaded[0].Name)
	require.Equal(t, []string{"p2"}, loaded[0].Children)
	require.NotNil(t, loaded[1].ParentID)
	require.Equal(t, "p1", *loaded[1].ParentID)
	require.Equal(t, 1, loaded[1].Level)
	require.Equal(t, "Quote", loaded[1].Items[0].Title)
	require.True(t, created.Equal(loaded[1].CreatedAt))
}

func TestSnapshotRepository_SaveOverwrites(t *testing.T) {
	repo := NewSnapshotRepository(NewTestDB(t), "")
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, project.Snapshot{Projects: []project.Project{{ID: "a", Name: "A"}}, Roots: []string{"a"}}))
	require.NoError(t, repo.Save(ctx, project.Snapshot{
		Projects: []project.Project{{ID: "b", Name: "B"}, {ID: "c", Name: "C"}},
		Roots:    []string{"c", "b"},
	}))

	snap, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Projects, 2)
	require.Equal(t, "b", snap.Projects[0].ID)
	require.Equal(t, []string{"c", "b"}, snap.Roots)

	rev, err := repo.Revision(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), rev)
}

func TestSnapshotRepository_SaveNil(t *testing.T) {
	repo := NewSnapshotRepository(NewTestDB(t), "")
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, project.Snapshot{}))

	snap, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, snap.Projects)
	require.Empty(t, snap.Roots)
}

func TestSnapshotRepository_LoadsBareProjectArray(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	_, err := db.ExecContext(ctx, `INSERT INTO snapshots (key, data) VALUES (?, ?)`,
		DefaultSnapshotKey, ` [{"id":"a","name":"A"},{"id":"b","name":"B"}]`)
	require.NoError(t, err)

	snap, err := NewSnapshotRepository(db, "").Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Projects, 2)
	require.Equal(t, "B", snap.Projects[1].Name)
	require.Nil(t, snap.Roots)
}

func TestSnapshotRepository_KeysAreIsolated(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	a := NewSnapshotRepository(db, "a")
	b := NewSnapshotRepository(db, "b")

	require.NoError(t, a.Save(ctx, project.Snapshot{Projects: []project.Project{{ID: "x", Name: "X"}}}))

	_, err := b.Load(ctx)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSnapshotRepository_CorruptData(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	_, err := db.ExecContext(ctx, `INSERT INTO snapshots (key, data) VALUES (?, ?)`, DefaultSnapshotKey, "{not json")
	require.NoError(t, err)

	_, err = NewSnapshotRepository(db, "").Load(ctx)
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}
