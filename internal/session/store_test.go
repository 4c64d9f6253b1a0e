package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hostel-client/internal/model"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&record{}))
	return NewGormStore(db)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	user := &model.User{ID: 5, Name: "Amir", StudentID: "S-22", Email: "amir@example.com"}
	require.NoError(t, store.Save(ctx, user))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, user, loaded)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSave_OverwritesPreviousSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Save(ctx, &model.User{ID: 1, Name: "First"}))
	require.NoError(t, store.Save(ctx, &model.User{ID: 2, Name: "Second"}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), loaded.ID, "login replaces the single session record")
}

func TestClear_WithoutSessionIsNoOp(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Clear(context.Background()))
}
