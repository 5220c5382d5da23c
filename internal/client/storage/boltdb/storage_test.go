package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func TestNew_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "session.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() {
		require.NoError(t, store.Close())
	}()

	// Проверяем что файл БД действительно создан вместе с каталогами
	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	err = store.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketSessions) == nil {
			return os.ErrNotExist
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	// Путь с нулевым символом не открывается ни на одной системе
	store, err := New(context.Background(), string([]byte{0}))
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNew_Locked(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "session.db")

	first, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, first.Close())
	}()

	// Второй процесс ждет блокировку не дольше openTimeout
	second, err := New(context.Background(), dbPath)
	assert.Error(t, err)
	assert.Nil(t, second)
}

func TestClose(t *testing.T) {
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)

	require.NoError(t, store.Close())
	assert.Nil(t, store.db)

	// Второй вызов Close ничего не делает
	assert.NoError(t, store.Close())
}

func TestInitBuckets_CreatesBuckets(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "session.db")

	// Открываем БД вручную без создания бакетов
	db, err := bbolt.Open(dbPath, 0o600, nil)
	require.NoError(t, err)
	defer db.Close()

	store := &Storage{db: db}
	require.NoError(t, store.initBuckets())

	// Повторная инициализация не ломает существующие бакеты
	require.NoError(t, store.initBuckets())

	err = db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketSessions) == nil {
			return os.ErrNotExist
		}
		return nil
	})
	assert.NoError(t, err)
}
