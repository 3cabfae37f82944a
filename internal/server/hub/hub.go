// Package hub implements the presence channel: per-document rooms over
// websocket, рассылка presence roster при входе/выходе и relay событий
// продвижения ревизий и смены аренд секций.
package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/codraft/codraft/pkg/api"
)

// event — внутренний конверт для рассылки в комнату документа
type event struct {
	documentID string
	payload    api.Event
}

// Hub owns the document rooms. Все структуры комнат принадлежат горутине
// Run; снаружи с хабом общаются только через каналы.
type Hub struct {
	logger *slog.Logger

	register   chan *Client
	unregister chan *Client
	events     chan event
	done       chan struct{}

	rooms map[string]map[*Client]bool
}

// NewHub создает presence hub. Запустите Run в отдельной горутине.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan event, 64),
		done:       make(chan struct{}),
		rooms:      make(map[string]map[*Client]bool),
	}
}

// Broadcast рассылает событие всем подписчикам комнаты документа.
// Реализует handlers.Notifier; безопасен из любых горутин, в том числе
// после остановки хаба — событие тогда просто отбрасывается.
func (h *Hub) Broadcast(documentID string, e api.Event) {
	select {
	case h.events <- event{documentID: documentID, payload: e}:
	case <-h.done:
	}
}

// attach регистрирует клиента в комнате; false после остановки хаба
func (h *Hub) attach(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// detach снимает клиента с учета; не блокируется после остановки хаба
func (h *Hub) detach(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Run обрабатывает регистрацию, выход и рассылку до отмены контекста
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			if h.rooms[client.documentID] == nil {
				h.rooms[client.documentID] = make(map[*Client]bool)
			}
			h.rooms[client.documentID][client] = true

			h.logger.Info("client joined",
				"document_id", client.documentID,
				"username", client.username)

			h.broadcastPresence(client.documentID)

		case client := <-h.unregister:
			room := h.rooms[client.documentID]
			if room == nil || !room[client] {
				continue
			}
			delete(room, client)
			close(client.send)

			if len(room) == 0 {
				delete(h.rooms, client.documentID)
			}

			h.logger.Info("client left",
				"document_id", client.documentID,
				"username", client.username)

			h.broadcastPresence(client.documentID)

		case e := <-h.events:
			h.deliver(e.documentID, e.payload)
		}
	}
}

// broadcastPresence рассылает актуальный список участников комнаты
func (h *Hub) broadcastPresence(documentID string) {
	room := h.rooms[documentID]
	if len(room) == 0 {
		return
	}

	users := make([]string, 0, len(room))
	seen := make(map[string]bool, len(room))
	for client := range room {
		if !seen[client.username] {
			seen[client.username] = true
			users = append(users, client.username)
		}
	}
	sort.Strings(users)

	h.deliver(documentID, api.Event{
		Type:       api.EventPresence,
		DocumentID: documentID,
		Users:      users,
	})
}

// deliver сериализует событие и раскладывает по send-буферам подписчиков
func (h *Hub) deliver(documentID string, e api.Event) {
	room := h.rooms[documentID]
	if len(room) == 0 {
		return
	}

	payload, err := json.Marshal(e)
	if err != nil {
		h.logger.Error("failed to marshal event", "error", err)
		return
	}

	for client := range room {
		select {
		case client.send <- payload:
		default:
			// Отстающий клиент: буфер полон, отключаем чтобы не блокировать хаб
			h.logger.Warn("client send buffer full, dropping",
				"document_id", documentID,
				"username", client.username)
			delete(room, client)
			close(client.send)
		}
	}

	if len(room) == 0 {
		delete(h.rooms, documentID)
	}
}

func (h *Hub) closeAll() {
	for documentID, room := range h.rooms {
		for client := range room {
			close(client.send)
		}
		delete(h.rooms, documentID)
	}
}
