package inventory

import (
	"context"

	"github.com/kazuo-app/kazuo-back/internal/domain/entity"
	"github.com/kazuo-app/kazuo-back/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// transferencias: o se aplican las dos filas del ledger, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// EventSink recibe los efectos posteriores al commit de una transferencia
// (push en tiempo real + correo). La interfaz es mínima para evitar que el
// motor dependa del paquete de notificaciones; la implementa
// notification.Dispatcher.
type EventSink interface {
	PublishStockTransfer(product *entity.Product, result *TransferResultDTO, actorID string)
}
