package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/sensordash/backend/internal/domain/ports"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// O dashboard roda em origem própria; CORS já filtra o resto
		return true
	},
}

// event é o envelope enviado aos clientes conectados
type event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Hub distribui eventos da tabela de usuários para os dashboards
// conectados. Toda mutação de estado passa pelo loop de Run, então
// nenhum acesso ao mapa de clientes precisa de lock.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	quit       chan struct{}
	stopOnce   sync.Once
	logger     ports.Logger
}

// NewHub cria um hub parado; chame Run em uma goroutine
func NewHub(logger ports.Logger) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		quit:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processa registros e broadcasts até Stop ser chamado
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
			h.logger.Debug("websocket client connected", "clients", len(h.clients))

		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.logger.Debug("websocket client disconnected", "clients", len(h.clients))

		case message := <-h.broadcast:
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					h.logger.Warn("websocket write failed, dropping client", "error", err)
					delete(h.clients, conn)
					conn.Close()
				}
			}

		case <-h.quit:
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			return
		}
	}
}

// Stop encerra o loop e fecha todas as conexões; seguro chamar mais
// de uma vez
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.quit)
	})
}

// Publish implementa ports.EventPublisher. Com o hub parado ou o canal
// cheio o evento é descartado; o dashboard ressincroniza no próximo GET.
func (h *Hub) Publish(eventType string, data any) {
	message, err := json.Marshal(event{Type: eventType, Data: data})
	if err != nil {
		h.logger.Error("failed to marshal websocket event", "type", eventType, "error", err)
		return
	}

	select {
	case h.broadcast <- message:
	default:
	}
}

// Serve faz o upgrade da conexão e registra o cliente no hub
func (h *Hub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	select {
	case h.register <- conn:
	case <-h.quit:
		conn.Close()
		return
	}

	// Clientes não enviam nada; o loop só detecta o fechamento.
	// Depois de Stop ninguém consome unregister, então o envio
	// concorre com quit para não vazar a goroutine.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				select {
				case h.unregister <- conn:
				case <-h.quit:
				}
				return
			}
		}
	}()
}
