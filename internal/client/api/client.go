// Package api implements the HTTP client for the remote document authority.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/codraft/codraft/internal/models"
	"github.com/codraft/codraft/pkg/api"
)

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string

	token string
	mu    sync.RWMutex
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

// BaseURL возвращает адрес сервера, с которым работает клиент
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken устанавливает access token для авторизованных запросов
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) accessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	err := c.doRequest(ctx, "POST", "/api/v1/auth/register", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, "POST", "/api/v1/auth/login", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// Refresh обменивает refresh token на новую пару токенов
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error) {
	req := api.RefreshRequest{RefreshToken: refreshToken}
	var resp api.TokenResponse
	err := c.doRequest(ctx, "POST", "/api/v1/auth/refresh", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// Logout отзывает все refresh tokens пользователя на сервере
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, "POST", "/api/v1/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// Push отправляет набор локальных правок и возвращает вердикт по каждой.
// Results идут в том же порядке, что и changes.
func (c *Client) Push(ctx context.Context, changes []*models.PendingChange) (*api.PushResponse, error) {
	req := api.PushRequest{}
	for _, change := range changes {
		req.Changes = append(req.Changes, api.DocumentChange{
			CapturedAt:   change.CapturedAt,
			DocumentID:   change.DocumentID,
			Content:      change.Content,
			BaseRevision: change.BaseRevision,
		})
	}

	var resp api.PushResponse
	err := c.doRequest(ctx, "POST", "/api/v1/sync", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("sync request failed: %w", err)
	}
	return &resp, nil
}

// GetDocument загружает текущее серверное состояние документа
func (c *Client) GetDocument(ctx context.Context, documentID string) (*api.DocumentResponse, error) {
	var resp api.DocumentResponse
	url := fmt.Sprintf("/api/v1/documents/%s", documentID)
	err := c.doRequest(ctx, "GET", url, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("get document request failed: %w", err)
	}
	return &resp, nil
}

// AcquireLock запрашивает аренду секции у серверного авторитета
func (c *Client) AcquireLock(ctx context.Context, sectionID, documentID string) (*api.LockResponse, error) {
	req := api.AcquireLockRequest{
		SectionID:  sectionID,
		DocumentID: documentID,
	}
	var resp api.LockResponse
	err := c.doRequest(ctx, "POST", "/api/v1/locks/acquire", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("acquire lock request failed: %w", err)
	}
	return &resp, nil
}

// ReleaseLock снимает аренду секции
func (c *Client) ReleaseLock(ctx context.Context, sectionID string) (*api.ReleaseLockResponse, error) {
	req := api.ReleaseLockRequest{SectionID: sectionID}
	var resp api.ReleaseLockResponse
	err := c.doRequest(ctx, "POST", "/api/v1/locks/release", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("release lock request failed: %w", err)
	}
	return &resp, nil
}

// Health проверяет доступность сервера; используется как probe при
// подключении и переподключении
func (c *Client) Health(ctx context.Context) error {
	if err := c.doRequest(ctx, "GET", "/api/v1/health", nil, nil); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token := c.accessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
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
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
