package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/iudanet/tourplan/internal/models"
	"github.com/iudanet/tourplan/pkg/api"
)

// ErrUnauthorized возвращается на 401/403: токен отсутствует, истек или недостаточно прав.
// Это инфраструктурная ошибка, выгрузка на ней прерывается.
var ErrUnauthorized = errors.New("unauthorized")

// ErrMalformedResponse ответ 2xx, из которого нельзя взять нужные данные
// (например, созданная запись без положительного id). Инфраструктурная ошибка.
var ErrMalformedResponse = errors.New("malformed response")

// ValidationError удаленное хранилище отклонило конкретную запись (4xx с телом ошибок полей).
// Собирается в результат выгрузки, остальные записи продолжают обрабатываться.
type ValidationError struct {
	Fields api.ErrorResponse
	Kind   models.Kind
	ID     int64
	Status int
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		msg := strings.Join(e.Fields[field], " ")
		if field == api.NonFieldErrorsKey || field == api.DetailKey {
			parts = append(parts, msg)
			continue
		}
		parts = append(parts, field+": "+msg)
	}

	switch {
	case e.Kind == 0:
		return fmt.Sprintf("rejected (%d): %s", e.Status, strings.Join(parts, "; "))
	case e.ID == 0:
		return fmt.Sprintf("%s rejected (%d): %s", e.Kind, e.Status, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("%s %d rejected (%d): %s", e.Kind, e.ID, e.Status, strings.Join(parts, "; "))
}

// StatusError неожиданный ответ сервера (5xx или тело, которое не удалось разобрать).
type StatusError struct {
	Body   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Body)
}

// IsValidation reports whether err is a record level validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// withRecord attaches the record identity to a validation error coming from doRequest.
func withRecord(err error, kind models.Kind, id int64) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		ve.Kind = kind
		ve.ID = id
	}
	return err
}
