package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/tourplan/pkg/api"
)

// sendJSON отправляет JSON ответ
func sendJSON(w http.ResponseWriter, logger *slog.Logger, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendErrors отправляет ошибки в формате {"field": ["message"]}
func sendErrors(w http.ResponseWriter, logger *slog.Logger, errs api.ErrorResponse, statusCode int) {
	sendJSON(w, logger, errs, statusCode)
}

// SendDetail отправляет ошибку {"detail": "message"}, используется и middleware
func SendDetail(w http.ResponseWriter, logger *slog.Logger, message string, statusCode int) {
	sendJSON(w, logger, map[string]string{api.DetailKey: message}, statusCode)
}

// MaxBodyBytes ограничение размера тела запроса
const MaxBodyBytes = 1 << 20

// decodeBody читает JSON тело запроса в v. При ошибке ответ уже отправлен.
func decodeBody(w http.ResponseWriter, r *http.Request, logger *slog.Logger, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		logger.WarnContext(r.Context(), "request body too large",
			slog.String("path", r.URL.Path),
			slog.Int64("limit", tooLarge.Limit),
		)
		SendDetail(w, logger, "Request body too large.", http.StatusRequestEntityTooLarge)
		return false
	}

	logger.WarnContext(r.Context(), "failed to decode request body",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	sendErrors(w, logger, api.NonField("Invalid request body."), http.StatusBadRequest)
	return false
}
