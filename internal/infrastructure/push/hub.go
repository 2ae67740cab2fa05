package push

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/kazuo-app/kazuo-back/internal/notification"
	"github.com/kazuo-app/kazuo-back/pkg/logger"
)

var _ notification.PushPublisher = (*Hub)(nil)

// wsConn es lo mínimo que el hub necesita de una conexión websocket.
// *websocket.Conn lo satisface; en tests se usa un stub.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// client envuelve una conexión con su mutex de escritura. El transporte
// websocket admite un solo escritor a la vez; cada publicación concurrente
// sobre la misma conexión debe pasar por este mutex.
type client struct {
	conn wsConn
	mu   sync.Mutex
}

func (c *client) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(messageType, data)
}

// Hub mantiene las conexiones websocket agrupadas por empresa y publica
// eventos a todas las conexiones de un canal. Seguro para uso concurrente.
type Hub struct {
	mu     sync.RWMutex
	conns  map[string]map[wsConn]*client // companyID -> conexiones
	log    *logger.Logger
	closed bool
}

// NewHub construye el hub vacío.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		conns: make(map[string]map[wsConn]*client),
		log:   log,
	}
}

// Register añade una conexión al canal de la empresa.
func (h *Hub) Register(companyID string, conn wsConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		_ = conn.Close()
		return
	}
	if h.conns[companyID] == nil {
		h.conns[companyID] = make(map[wsConn]*client)
	}
	h.conns[companyID][conn] = &client{conn: conn}
}

// Unregister retira una conexión del canal de la empresa. No cierra la conexión.
func (h *Hub) Unregister(companyID string, conn wsConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.conns[companyID]
	delete(set, conn)
	if len(set) == 0 {
		delete(h.conns, companyID)
	}
}

// Publish serializa el payload como JSON y lo envía a todas las conexiones del
// canal de la empresa. Una conexión que falla al escribir se retira y cierra;
// las demás reciben el mensaje igual.
func (h *Hub) Publish(companyID string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar evento push: %w", err)
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.conns[companyID]))
	for _, c := range h.conns[companyID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.write(websocket.TextMessage, data); err != nil {
			h.log.Warn().Err(err).
				Str("company_id", companyID).
				Msg("conexión websocket caída, retirando")
			h.Unregister(companyID, c.conn)
			_ = c.conn.Close()
		}
	}
	return nil
}

// Shutdown cierra todas las conexiones y rechaza registros nuevos.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for companyID, set := range h.conns {
		for _, c := range set {
			_ = c.conn.Close()
		}
		delete(h.conns, companyID)
	}
}

// Handle atiende una conexión websocket ya autenticada: la registra en el
// canal de su empresa y drena mensajes entrantes hasta que el cliente cierra.
// Los mensajes del cliente se ignoran; el canal es de solo bajada. La empresa
// se toma de los Locals que dejó el middleware de auth antes del upgrade.
func (h *Hub) Handle() func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		companyID, _ := conn.Locals("company_id").(string)
		if companyID == "" {
			_ = conn.Close()
			return
		}
		h.Register(companyID, conn)
		defer func() {
			h.Unregister(companyID, conn)
			_ = conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
