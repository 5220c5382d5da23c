package api

// TokenRequest представляет запрос на получение токена
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse представляет ответ с токеном доступа
type TokenResponse struct {
	Token     string `json:"token"`                // токен для заголовка Authorization: Token <token>
	ExpiresIn int64  `json:"expires_in,omitempty"` // время жизни токена в секундах
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Time    string `json:"time"`
	Version string `json:"version,omitempty"`
}
