package events

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	eventservice "github.com/zhouzirui/z-ledger/backend/internal/service/events"
	"github.com/zhouzirui/z-ledger/backend/pkg/utils"
)

const writeWait = 5 * time.Second

// Handler 记录事件推送处理器（WebSocket 与 SSE）
type Handler struct {
	hub      *eventservice.Hub
	upgrader websocket.Upgrader
}

// New 创建事件处理器
func New(hub *eventservice.Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册事件推送路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/events/ws", h.handleWebSocket)
	r.Get("/events/stream", h.handleStream)
}

// handleWebSocket 通过 WebSocket 推送记录事件
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[events] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, cancel := h.hub.Subscribe()
	defer cancel()

	// 读循环只用于感知客户端断开
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log.Printf("[events] websocket subscriber connected from %s", r.RemoteAddr)
	for {
		select {
		case <-closed:
			log.Printf("[events] websocket subscriber %s disconnected", r.RemoteAddr)
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(e); err != nil {
				log.Printf("[events] websocket write failed: %v", err)
				return
			}
		}
	}
}

// handleStream 通过 Server-Sent Events 推送记录事件
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, cancel := h.hub.Subscribe()
	defer cancel()

	utils.SetupSSEHeaders(w)
	if err := utils.SendSSEChunk(w, flusher, map[string]any{
		"event":   "status",
		"message": "stream established",
	}); err != nil {
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if err := utils.SendSSEEvent(w, flusher, "record", e); err != nil {
				log.Printf("[events] sse write failed: %v", err)
				return
			}
		}
	}
}
