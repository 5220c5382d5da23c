package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iudanet/tourplan/internal/models"
	"github.com/iudanet/tourplan/pkg/api"
)

// Client представляет HTTP клиент удаленного хранилища записей
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SetToken задает токен для заголовка Authorization
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login обменивает имя пользователя и пароль на токен
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, http.MethodPost, api.TokenPath, api.TokenRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	return resp.Token, nil
}

// List загружает все записи одного типа
func (c *Client) List(ctx context.Context, kind models.Kind) ([]models.Entity, error) {
	var raw []json.RawMessage
	if err := c.doRequest(ctx, http.MethodGet, api.ListPath(kind.String()), nil, &raw); err != nil {
		return nil, fmt.Errorf("list %s failed: %w", kind, err)
	}

	result := make([]models.Entity, 0, len(raw))
	for _, item := range raw {
		e, err := models.New(kind)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(item, e); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", kind, err)
		}
		result = append(result, e)
	}
	return result, nil
}

// Create создает запись; сервер присваивает ей новый id
func (c *Client) Create(ctx context.Context, e models.Entity) (models.Entity, error) {
	created, err := models.New(e.Kind())
	if err != nil {
		return nil, err
	}
	if err := c.doRequest(ctx, http.MethodPost, api.ListPath(e.Kind().String()), e, created); err != nil {
		return nil, fmt.Errorf("create %s %d failed: %w", e.Kind(), e.GetID(), withRecord(err, e.Kind(), e.GetID()))
	}
	return created, nil
}

// Update сохраняет измененную запись
func (c *Client) Update(ctx context.Context, e models.Entity) (models.Entity, error) {
	updated, err := models.New(e.Kind())
	if err != nil {
		return nil, err
	}
	if err := c.doRequest(ctx, http.MethodPut, api.RecordPath(e.Kind().String(), e.GetID()), e, updated); err != nil {
		return nil, fmt.Errorf("update %s %d failed: %w", e.Kind(), e.GetID(), withRecord(err, e.Kind(), e.GetID()))
	}
	return updated, nil
}

// Destroy удаляет запись
func (c *Client) Destroy(ctx context.Context, kind models.Kind, id int64) error {
	if err := c.doRequest(ctx, http.MethodDelete, api.RecordPath(kind.String(), id), nil, nil); err != nil {
		return fmt.Errorf("destroy %s %d failed: %w", kind, id, withRecord(err, kind, id))
	}
	return nil
}

// BaseLocation загружает базовую точку, из которой выезжают туры
func (c *Client) BaseLocation(ctx context.Context) (*models.Location, error) {
	var loc models.Location
	if err := c.doRequest(ctx, http.MethodGet, api.BaseLocationPath, nil, &loc); err != nil {
		return nil, fmt.Errorf("base location request failed: %w", err)
	}
	return &loc, nil
}

// DrivingTimeMatrix загружает матрицу времени в пути между локациями
func (c *Client) DrivingTimeMatrix(ctx context.Context, locationIDs []int64) (*models.DrivingTimeMatrix, error) {
	query := url.Values{}
	query.Set(api.LocationsParam, models.LocationsCSV(locationIDs))

	var matrix models.DrivingTimeMatrix
	if err := c.doRequest(ctx, http.MethodGet, api.DrivingTimeMatrixPath+"?"+query.Encode(), nil, &matrix); err != nil {
		return nil, fmt.Errorf("driving time matrix request failed: %w", err)
	}
	return &matrix, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w (%d): %s", ErrUnauthorized, resp.StatusCode, string(respBody))
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// 4xx с телом ошибок полей - ошибка конкретной записи
		fields, err := api.ParseErrorResponse(respBody)
		if err != nil {
			return &StatusError{Status: resp.StatusCode, Body: string(respBody)}
		}
		return &ValidationError{Status: resp.StatusCode, Fields: fields}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &StatusError{Status: resp.StatusCode, Body: string(respBody)}
	}

	// Декодируем успешный ответ
	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
