package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/tourplan/internal/crypto"
	"github.com/iudanet/tourplan/internal/models"
	"github.com/iudanet/tourplan/internal/server/storage"
	"github.com/iudanet/tourplan/internal/validation"
	"github.com/iudanet/tourplan/pkg/api"
)

const (
	msgBadCredentials = "Unable to log in with provided credentials."
	msgRequired       = "This field is required."
)

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
	jwtConfig   JWTConfig
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		userStorage: userStorage,
		jwtConfig:   jwtConfig,
	}
}

// ObtainToken обрабатывает POST /api-token-auth/
// Обменивает username и пароль на токен
func (h *AuthHandler) ObtainToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.TokenRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	// Проверка обязательных полей
	missing := api.ErrorResponse{}
	if req.Username == "" {
		missing["username"] = []string{msgRequired}
	}
	if req.Password == "" {
		missing["password"] = []string{msgRequired}
	}
	if len(missing) > 0 {
		sendErrors(w, h.logger, missing, http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login attempt for unknown user", slog.String("username", req.Username))
			sendErrors(w, h.logger, api.NonField(msgBadCredentials), http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		SendDetail(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := crypto.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		h.logger.WarnContext(ctx, "invalid password", slog.String("username", req.Username))
		sendErrors(w, h.logger, api.NonField(msgBadCredentials), http.StatusBadRequest)
		return
	}

	token, expiresIn, err := GenerateToken(h.jwtConfig, user.ID, user.Username)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate token", slog.Any("error", err))
		SendDetail(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	// Ошибка обновления last_login не мешает выдать токен
	if err := h.userStorage.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		h.logger.WarnContext(ctx, "failed to update last login", slog.String("user_id", user.ID), slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID), slog.String("username", user.Username))

	sendJSON(w, h.logger, api.TokenResponse{Token: token, ExpiresIn: expiresIn}, http.StatusOK)
}

// EnsureUser создает пользователя или обновляет ему пароль.
// Используется при старте сервера для учетной записи администратора.
func (h *AuthHandler) EnsureUser(ctx context.Context, username, password string) error {
	if err := validation.ValidateUsername(username); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	existing, err := h.userStorage.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		if err := h.userStorage.UpdatePassword(ctx, existing.ID, hash); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		h.logger.InfoContext(ctx, "user password updated", slog.String("username", username))
		return nil
	case !errors.Is(err, storage.ErrUserNotFound):
		return fmt.Errorf("failed to get user: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	h.logger.InfoContext(ctx, "user created", slog.String("user_id", user.ID), slog.String("username", username))
	return nil
}
