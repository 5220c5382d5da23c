package api

import (
	"encoding/json"
	"fmt"
)

// Ключи тела ошибки, которые не относятся к конкретному полю записи
const (
	NonFieldErrorsKey = "non_field_errors"
	DetailKey         = "detail"
)

// ErrorResponse тело ответа с ошибкой: {"field": ["message", ...]}.
// Ошибки, не привязанные к полю, лежат под NonFieldErrorsKey,
// общее описание (404, 401) под DetailKey.
type ErrorResponse map[string][]string

// Detail builds an error body with a single detail message.
func Detail(message string) ErrorResponse {
	return ErrorResponse{DetailKey: {message}}
}

// NonField builds an error body with a single non field message.
func NonField(message string) ErrorResponse {
	return ErrorResponse{NonFieldErrorsKey: {message}}
}

// ParseErrorResponse decodes an error body. Values may be a list of strings
// or a single string ({"detail": "Not found."}); both become lists.
func ParseErrorResponse(body []byte) (ErrorResponse, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode error body: %w", err)
	}

	result := make(ErrorResponse, len(raw))
	for field, value := range raw {
		var list []string
		if err := json.Unmarshal(value, &list); err == nil {
			result[field] = list
			continue
		}
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			result[field] = []string{single}
			continue
		}
		result[field] = []string{string(value)}
	}
	return result, nil
}
