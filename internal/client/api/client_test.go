package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codraft/codraft/internal/models"
	"github.com/codraft/codraft/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

// TestClient_Register проверяет успешную регистрацию
func TestClient_Register(t *testing.T) {
	// Создаем mock сервер
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/v1/auth/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.RegisterRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)

		assert.Equal(t, "testuser", req.Username)
		assert.NotEmpty(t, req.Password)

		w.WriteHeader(http.StatusCreated)
		resp := api.RegisterResponse{
			UserID:  "user-123",
			Message: "Registration successful",
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	ctx := context.Background()
	req := api.RegisterRequest{
		Username: "testuser",
		Password: "str0ngpass",
	}

	resp, err := client.Register(ctx, req)

	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, "user-123", resp.UserID)
	assert.Equal(t, "Registration successful", resp.Message)
}

// TestClient_Login проверяет аутентификацию и установку токена
func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		resp := api.TokenResponse{
			AccessToken:  "access_token",
			RefreshToken: "refresh_token",
			UserID:       "user-123",
			ExpiresIn:    900,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	resp, err := client.Login(ctx, api.LoginRequest{Username: "testuser", Password: "str0ngpass"})

	require.NoError(t, err)
	assert.Equal(t, "access_token", resp.AccessToken)
	assert.Equal(t, "user-123", resp.UserID)

	// Токен сохранен для последующих авторизованных запросов
	assert.Equal(t, "access_token", client.accessToken())
}

// TestClient_Login_Error проверяет обработку неверных учетных данных
func TestClient_Login_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		resp := api.ErrorResponse{
			Error:   "unauthorized",
			Message: "invalid credentials",
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	resp, err := client.Login(ctx, api.LoginRequest{Username: "testuser", Password: "wrong"})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "server error (401): invalid credentials")
}

// TestClient_Push проверяет отправку правок и разбор вердиктов
func TestClient_Push(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/v1/sync", r.URL.Path)
		assert.Equal(t, "Bearer test_token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.PushRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)

		require.Len(t, req.Changes, 2)
		assert.Equal(t, "doc-1", req.Changes[0].DocumentID)
		assert.Equal(t, int64(3), req.Changes[0].BaseRevision)

		w.WriteHeader(http.StatusOK)
		resp := api.PushResponse{
			Results: []api.ChangeResult{
				{DocumentID: "doc-1", Verdict: api.VerdictAccepted, ServerRevision: 4},
				{
					DocumentID:     "doc-2",
					Verdict:        api.VerdictRejected,
					ServerContent:  []byte("server version"),
					ServerRevision: 9,
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("test_token")
	ctx := context.Background()

	changes := []*models.PendingChange{
		{DocumentID: "doc-1", Content: []byte("one"), BaseRevision: 3},
		{DocumentID: "doc-2", Content: []byte("two"), BaseRevision: 8},
	}

	resp, err := client.Push(ctx, changes)

	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, api.VerdictAccepted, resp.Results[0].Verdict)
	assert.Equal(t, int64(4), resp.Results[0].ServerRevision)
	assert.Equal(t, api.VerdictRejected, resp.Results[1].Verdict)
	assert.Equal(t, []byte("server version"), resp.Results[1].ServerContent)
}

// TestClient_GetDocument проверяет загрузку серверного состояния документа
func TestClient_GetDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/api/v1/documents/doc-1", r.URL.Path)
		assert.Equal(t, "Bearer test_token", r.Header.Get("Authorization"))

		w.WriteHeader(http.StatusOK)
		resp := api.DocumentResponse{
			ID:       "doc-1",
			Content:  []byte("server content"),
			Revision: 7,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("test_token")

	resp, err := client.GetDocument(context.Background(), "doc-1")

	require.NoError(t, err)
	assert.Equal(t, "doc-1", resp.ID)
	assert.Equal(t, []byte("server content"), resp.Content)
	assert.Equal(t, int64(7), resp.Revision)
}

// TestClient_AcquireLock проверяет захват и отказ в аренде секции
func TestClient_AcquireLock(t *testing.T) {
	tests := []struct {
		name     string
		response api.LockResponse
	}{
		{
			name: "granted",
			response: api.LockResponse{
				SectionID: "sec-1",
				Granted:   true,
				ExpiresAt: time.Now().Add(5 * time.Minute).UTC(),
			},
		},
		{
			name: "denied",
			response: api.LockResponse{
				SectionID: "sec-1",
				Granted:   false,
				HeldBy:    "bob",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "POST", r.Method)
				assert.Equal(t, "/api/v1/locks/acquire", r.URL.Path)

				var req api.AcquireLockRequest
				err := json.NewDecoder(r.Body).Decode(&req)
				require.NoError(t, err)
				assert.Equal(t, "sec-1", req.SectionID)
				assert.Equal(t, "doc-1", req.DocumentID)

				w.WriteHeader(http.StatusOK)
				_ = json.NewEncoder(w).Encode(tt.response)
			}))
			defer server.Close()

			client := NewClient(server.URL)
			client.SetToken("test_token")

			resp, err := client.AcquireLock(context.Background(), "sec-1", "doc-1")

			require.NoError(t, err)
			assert.Equal(t, tt.response.Granted, resp.Granted)
			assert.Equal(t, tt.response.HeldBy, resp.HeldBy)
		})
	}
}

// TestClient_ReleaseLock проверяет снятие аренды
func TestClient_ReleaseLock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/v1/locks/release", r.URL.Path)

		var req api.ReleaseLockRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		assert.Equal(t, "sec-1", req.SectionID)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(api.ReleaseLockResponse{SectionID: "sec-1", Released: true})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("test_token")

	resp, err := client.ReleaseLock(context.Background(), "sec-1")

	require.NoError(t, err)
	assert.True(t, resp.Released)
}

// TestClient_Health проверяет health probe
func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/api/v1/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.Health(context.Background()))
}

// TestClient_Health_ServerDown проверяет probe при недоступном сервере
func TestClient_Health_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)
	err := client.Health(context.Background())
	require.Error(t, err)
}
