package push

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazuo-app/kazuo-back/pkg/logger"
)

// stubConn conexión websocket falsa que acumula los mensajes escritos.
type stubConn struct {
	mu       sync.Mutex
	messages [][]byte
	writeErr error
	closed   bool
}

func (c *stubConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.messages = append(c.messages, data)
	return nil
}

func (c *stubConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *stubConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func TestHub_PublishEntregaAlCanalDeLaEmpresa(t *testing.T) {
	hub := NewHub(logger.Nop())
	c1, c2, otra := &stubConn{}, &stubConn{}, &stubConn{}
	hub.Register("empresa-a", c1)
	hub.Register("empresa-a", c2)
	hub.Register("empresa-b", otra)

	err := hub.Publish("empresa-a", map[string]string{"kind": "stock-transfer"})
	require.NoError(t, err)

	assert.Equal(t, 1, c1.count())
	assert.Equal(t, 1, c2.count())
	assert.Zero(t, otra.count(), "otra empresa no recibe el evento")

	var payload map[string]string
	require.NoError(t, json.Unmarshal(c1.messages[0], &payload))
	assert.Equal(t, "stock-transfer", payload["kind"])
}

func TestHub_PublishSinConexiones(t *testing.T) {
	hub := NewHub(logger.Nop())
	assert.NoError(t, hub.Publish("empresa-x", "hola"), "sin suscriptores no es un error")
}

func TestHub_ConexionCaidaSeRetira(t *testing.T) {
	hub := NewHub(logger.Nop())
	roto := &stubConn{writeErr: errors.New("broken pipe")}
	sano := &stubConn{}
	hub.Register("empresa-a", roto)
	hub.Register("empresa-a", sano)

	require.NoError(t, hub.Publish("empresa-a", "evento"))
	assert.True(t, roto.closed, "la conexión que falla al escribir se cierra")
	assert.Equal(t, 1, sano.count(), "las demás conexiones reciben el mensaje")

	// Un segundo publish ya no intenta escribir en la conexión retirada.
	require.NoError(t, hub.Publish("empresa-a", "evento-2"))
	assert.Equal(t, 2, sano.count())
	assert.Zero(t, roto.count())
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub(logger.Nop())
	c := &stubConn{}
	hub.Register("empresa-a", c)
	hub.Unregister("empresa-a", c)

	require.NoError(t, hub.Publish("empresa-a", "evento"))
	assert.Zero(t, c.count())
}

func TestHub_ShutdownCierraYRechazaNuevas(t *testing.T) {
	hub := NewHub(logger.Nop())
	c := &stubConn{}
	hub.Register("empresa-a", c)

	hub.Shutdown()
	assert.True(t, c.closed)

	tarde := &stubConn{}
	hub.Register("empresa-a", tarde)
	assert.True(t, tarde.closed, "tras el apagado cualquier registro se cierra de inmediato")

	require.NoError(t, hub.Publish("empresa-a", "evento"))
	assert.Zero(t, tarde.count())
}

// contentiousConn cuenta cuántas goroutines están dentro de WriteMessage a la
// vez. El transporte websocket admite un solo escritor; más de uno es un bug.
type contentiousConn struct {
	inside    atomic.Int32
	maxInside atomic.Int32
	writes    atomic.Int32
}

func (c *contentiousConn) WriteMessage(messageType int, data []byte) error {
	n := c.inside.Add(1)
	for {
		max := c.maxInside.Load()
		if n <= max || c.maxInside.CompareAndSwap(max, n) {
			break
		}
	}
	time.Sleep(time.Millisecond) // ensanchar la ventana de carrera
	c.inside.Add(-1)
	c.writes.Add(1)
	return nil
}

func (c *contentiousConn) Close() error { return nil }

func TestHub_PublishConcurrenteSerializaPorConexion(t *testing.T) {
	hub := NewHub(logger.Nop())
	conn := &contentiousConn{}
	hub.Register("empresa-a", conn)

	const publishers = 8
	var wg sync.WaitGroup
	wg.Add(publishers)
	for i := 0; i < publishers; i++ {
		go func(n int) {
			defer wg.Done()
			_ = hub.Publish("empresa-a", map[string]int{"evento": n})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(publishers), conn.writes.Load(), "todas las publicaciones llegan")
	assert.LessOrEqual(t, conn.maxInside.Load(), int32(1),
		"el hub debe serializar las escrituras por conexión")
}

func TestHub_PayloadNoSerializable(t *testing.T) {
	hub := NewHub(logger.Nop())
	err := hub.Publish("empresa-a", make(chan int))
	assert.Error(t, err)
}
