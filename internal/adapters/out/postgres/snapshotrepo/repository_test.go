package snapshotrepo_test

import (
	"path/filepath"
	"testing"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/adapters/out/postgres/snapshotrepo"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/ports"
	"dispatch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteRepository(t *testing.T) *snapshotrepo.GormSnapshotRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "snapshot.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo := snapshotrepo.NewGormSnapshotRepository(db)
	require.NoError(t, repo.Migrate(t.Context()))
	return repo
}

func TestGormSnapshotRepository_SQLite(t *testing.T) {
	t.Run("load without a saved snapshot is empty", func(t *testing.T) {
		repo := newSQLiteRepository(t)

		snap, err := repo.Load(t.Context())
		require.NoError(t, err)
		assert.True(t, snap.IsEmpty())
	})

	t.Run("saved snapshot loads back unchanged", func(t *testing.T) {
		repo := newSQLiteRepository(t)
		want := fixtureSnapshot(t)

		require.NoError(t, repo.Save(t.Context(), want))
		got, err := repo.Load(t.Context())
		require.NoError(t, err)

		assertSnapshotsEqual(t, want, got)
	})

	t.Run("save replaces the previous snapshot", func(t *testing.T) {
		repo := newSQLiteRepository(t)
		require.NoError(t, repo.Save(t.Context(), fixtureSnapshot(t)))

		smaller := fixtureSnapshot(t)
		smaller.Routes = smaller.Routes[1:]
		smaller.Drivers[0].ReleaseRoute(1)
		smaller.Pending = nil
		require.NoError(t, repo.Save(t.Context(), smaller))

		got, err := repo.Load(t.Context())
		require.NoError(t, err)
		assertSnapshotsEqual(t, smaller, got)
	})

	t.Run("a rejected save keeps the stored snapshot", func(t *testing.T) {
		repo := newSQLiteRepository(t)
		want := fixtureSnapshot(t)
		require.NoError(t, repo.Save(t.Context(), want))

		broken := fixtureSnapshot(t)
		broken.Drivers = append(broken.Drivers, &driver.Driver{})
		require.ErrorIs(t, repo.Save(t.Context(), broken), driver.ErrDriverIsNotConstructed)

		got, err := repo.Load(t.Context())
		require.NoError(t, err)
		assertSnapshotsEqual(t, want, got)
	})

	t.Run("memory store state survives a save and restore", func(t *testing.T) {
		repo := newSQLiteRepository(t)

		source := memory.NewStore()
		require.NoError(t, source.Restore(t.Context(), fixtureSnapshot(t)))
		taken, err := source.Snapshot(t.Context(), testutil.Now)
		require.NoError(t, err)
		require.NoError(t, repo.Save(t.Context(), taken))

		loaded, err := repo.Load(t.Context())
		require.NoError(t, err)
		target := memory.NewStore()
		require.NoError(t, target.Restore(t.Context(), loaded))

		again, err := target.Snapshot(t.Context(), testutil.Now)
		require.NoError(t, err)
		assertSnapshotsEqual(t, taken, again)

		err = target.Read(t.Context(), func(v ports.StateView) error {
			assert.Len(t, v.Pending(), 2)
			assert.Len(t, v.RoutesByDriver(1), 1)
			return nil
		})
		require.NoError(t, err)
	})
}
