// Package storage описывает локальное хранилище клиента.
// Рабочая копия плана живет только в памяти, на диск сохраняется
// лишь токен, полученный командой login.
package storage

import (
	"context"
	"time"
)

// SessionStorage хранит токены, по одному на URL сервера
type SessionStorage interface {
	// SaveSession stores the session, replacing one for the same server
	SaveSession(ctx context.Context, session *Session) error

	// GetSession returns ErrSessionNotFound if no token is saved for the server
	GetSession(ctx context.Context, serverURL string) (*Session, error)

	// DeleteSession removes the saved token (logout).
	// Returns ErrSessionNotFound if there is nothing to delete.
	DeleteSession(ctx context.Context, serverURL string) error
}

// Session сохраненный токен для одного сервера
type Session struct {
	CreatedAt time.Time `json:"created_at"`
	ServerURL string    `json:"server_url"`
	Username  string    `json:"username"`
	Token     string    `json:"token"`
}
