package notification

// Tipos de acción que generan notificación.
const (
	KindStockTransfer = "stock-transfer"
	KindCreate        = "create"
	KindUpdate        = "update"
	KindDelete        = "delete"
)

// Event es el mensaje push enviado al canal de la empresa tras una acción
// confirmada sobre un producto. Los clientes conectados refrescan sus vistas
// sin polling.
type Event struct {
	Kind        string   `json:"kind"` // stock-transfer | create | update | delete
	ProductID   string   `json:"product_id"`
	ProductName string   `json:"product_name,omitempty"`
	StoreIDs    []string `json:"store_ids,omitempty"`
	Quantities  []int64  `json:"quantities,omitempty"`
	ActorID     string   `json:"actor_id,omitempty"`
}
