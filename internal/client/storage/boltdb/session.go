package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.etcd.io/bbolt"

	"github.com/iudanet/tourplan/internal/client/storage"
)

// Compile-time check that Storage implements SessionStorage
var _ storage.SessionStorage = (*Storage)(nil)

// sessionKey нормализует URL сервера, чтобы "http://x/" и "http://x" совпадали
func sessionKey(serverURL string) []byte {
	return []byte(strings.TrimRight(serverURL, "/"))
}

// SaveSession stores the token for session.ServerURL
func (s *Storage) SaveSession(ctx context.Context, session *storage.Session) error {
	if session == nil {
		return fmt.Errorf("session is nil")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSessions)
		if bucket == nil {
			return fmt.Errorf("sessions bucket not found")
		}

		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		if err := bucket.Put(sessionKey(session.ServerURL), data); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
}

// GetSession retrieves the token saved for the server
func (s *Storage) GetSession(ctx context.Context, serverURL string) (*storage.Session, error) {
	var session *storage.Session

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSessions)
		if bucket == nil {
			return fmt.Errorf("sessions bucket not found")
		}

		data := bucket.Get(sessionKey(serverURL))
		if data == nil {
			return storage.ErrSessionNotFound
		}

		session = &storage.Session{}
		if err := json.Unmarshal(data, session); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// DeleteSession removes the token saved for the server
func (s *Storage) DeleteSession(ctx context.Context, serverURL string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSessions)
		if bucket == nil {
			return fmt.Errorf("sessions bucket not found")
		}

		key := sessionKey(serverURL)
		if bucket.Get(key) == nil {
			return storage.ErrSessionNotFound
		}

		if err := bucket.Delete(key); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		return nil
	})
}
