package repository

import (
	"context"
	"errors"
	"testing"

	"record-sync/core/database"
	"record-sync/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var _ reconcile.Resolver = (*MappingStore)(nil)

func setupStore(t *testing.T) *MappingStore {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	store := NewMappingStore(db)
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestMappingStore_ResolveUnknown(t *testing.T) {
	store := setupStore(t)

	_, err := store.Resolve(context.Background(), "A")
	assert.ErrorIs(t, err, reconcile.ErrNotFound)
}

func TestMappingStore_SaveAndReplace(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "A", "rec-1"))
	id, err := store.Resolve(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", id)

	require.NoError(t, store.Save(ctx, "A", "rec-2"))
	id, err = store.Resolve(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "rec-2", id)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMappingStore_RemoveByDestination(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "A", "rec-1"))
	require.NoError(t, store.Save(ctx, "B", "rec-2"))

	removed, err := store.RemoveByDestination(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = store.Resolve(ctx, "A")
	assert.ErrorIs(t, err, reconcile.ErrNotFound)

	removed, err = store.RemoveByDestination(ctx, "rec-1")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestMappingStore_LookupQueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewMappingStore(db)

	mock.ExpectQuery("SELECT \\* FROM `record_mappings`").WillReturnError(errors.New("connection reset"))

	_, err := store.Lookup(context.Background(), "A")
	require.Error(t, err)
	assert.NotErrorIs(t, err, reconcile.ErrNotFound)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMappingStore_SaveUsesUpsert(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewMappingStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `record_mappings` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, store.Save(context.Background(), "A", "rec-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
