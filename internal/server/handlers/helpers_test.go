package handlers

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/iudanet/tourplan/internal/models"
	"github.com/iudanet/tourplan/internal/server/storage"
)

// setupTestLogger создает logger для тестов
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Только ошибки в тестах
	}))
}

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users           map[string]*models.User // username -> User
	createError     error
	getUserError    error
	updateLastLogin func(ctx context.Context, userID string, loginTime time.Time) error
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Username]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	user, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	for _, user := range m.users {
		if user.ID == userID {
			user.PasswordHash = passwordHash
			return nil
		}
	}
	return storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateLastLogin(ctx context.Context, userID string, loginTime time.Time) error {
	if m.updateLastLogin != nil {
		return m.updateLastLogin(ctx, userID, loginTime)
	}
	return nil
}

// mockRecordStorage is an in-memory RecordStorage for testing
type mockRecordStorage struct {
	records   map[models.Kind]map[int64]models.Entity
	nextID    int64
	err       error // возвращается всеми методами, если задана
	createErr error
	deleteErr error
}

func newMockRecordStorage() *mockRecordStorage {
	return &mockRecordStorage{records: make(map[models.Kind]map[int64]models.Entity)}
}

func (m *mockRecordStorage) put(e models.Entity) {
	if m.records[e.Kind()] == nil {
		m.records[e.Kind()] = make(map[int64]models.Entity)
	}
	m.records[e.Kind()][e.GetID()] = e
	if e.GetID() > m.nextID {
		m.nextID = e.GetID()
	}
}

func (m *mockRecordStorage) List(ctx context.Context, kind models.Kind) ([]models.Entity, error) {
	if m.err != nil {
		return nil, m.err
	}
	var items []models.Entity
	for _, e := range m.records[kind] {
		items = append(items, e)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].GetID() < items[j].GetID() })
	return items, nil
}

func (m *mockRecordStorage) Get(ctx context.Context, kind models.Kind, id int64) (models.Entity, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.records[kind][id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return e, nil
}

func (m *mockRecordStorage) Create(ctx context.Context, e models.Entity) (models.Entity, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	e.SetID(m.nextID)
	m.put(e)
	return e, nil
}

func (m *mockRecordStorage) Update(ctx context.Context, e models.Entity) (models.Entity, error) {
	if m.err != nil {
		return nil, m.err
	}
	if _, ok := m.records[e.Kind()][e.GetID()]; !ok {
		return nil, storage.ErrNotFound
	}
	m.put(e)
	return e, nil
}

func (m *mockRecordStorage) Delete(ctx context.Context, kind models.Kind, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.records[kind][id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.records[kind], id)
	return nil
}

func (m *mockRecordStorage) Locations(ctx context.Context, ids []int64) ([]*models.Location, error) {
	if m.err != nil {
		return nil, m.err
	}
	var locs []*models.Location
	for _, id := range ids {
		if e, ok := m.records[models.KindLocation][id]; ok {
			locs = append(locs, e.(*models.Location))
		}
	}
	return locs, nil
}

// mockPinger проверка доступности БД
type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.err
}
