// Package ws implements the client side of the presence channel: a websocket
// subscription to a document room relaying presence rosters, revision
// advances and section lock changes.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/codraft/codraft/pkg/api"
)

// handshakeTimeout предельное время установления соединения
const handshakeTimeout = 10 * time.Second

// EventHandler получает каждое событие комнаты в порядке доставки
type EventHandler func(e api.Event)

// Watcher подписывается на комнату документа и транслирует события handler'у
type Watcher struct {
	serverURL string
	token     string
	logger    *slog.Logger

	dialer *websocket.Dialer
}

// New creates a watcher for the given server. Токен передается в заголовке
// Authorization при рукопожатии, как и в остальных запросах клиента.
func New(serverURL, token string, logger *slog.Logger) *Watcher {
	return &Watcher{
		serverURL: serverURL,
		token:     token,
		logger:    logger,
		dialer: &websocket.Dialer{
			HandshakeTimeout: handshakeTimeout,
		},
	}
}

// Run subscribes to the document room and invokes handle for every relayed
// event until the context is cancelled or the server closes the connection.
// Штатное закрытие (сервером или отменой контекста) — не ошибка.
func (w *Watcher) Run(ctx context.Context, documentID string, handle EventHandler) error {
	wsURL, err := w.roomURL(documentID)
	if err != nil {
		return err
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+w.token)

	conn, resp, err := w.dialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("websocket handshake failed: %s: %w", resp.Status, err)
		}
		return fmt.Errorf("websocket dial failed: %w", err)
	}
	defer conn.Close()

	// Отмена контекста рвет соединение и выводит ReadMessage из блокировки
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	w.logger.Debug("watching document room", "document_id", documentID)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("websocket read failed: %w", err)
		}

		var e api.Event
		if err := json.Unmarshal(payload, &e); err != nil {
			w.logger.Warn("skipping malformed event", "error", err)
			continue
		}

		handle(e)
	}
}

// roomURL строит ws(s) адрес комнаты из базового http(s) адреса сервера
func (w *Watcher) roomURL(documentID string) (string, error) {
	parsed, err := url.Parse(w.serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server url: %w", err)
	}

	switch parsed.Scheme {
	case "http", "ws":
		parsed.Scheme = "ws"
	case "https", "wss":
		parsed.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported server url scheme %q", parsed.Scheme)
	}

	parsed.Path = strings.TrimSuffix(parsed.Path, "/") + "/api/v1/ws"
	parsed.RawQuery = url.Values{"document_id": {documentID}}.Encode()

	return parsed.String(), nil
}
