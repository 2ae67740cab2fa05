package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kazuo-app/kazuo-back/internal/application/inventory"
	"github.com/kazuo-app/kazuo-back/internal/domain"
	"github.com/kazuo-app/kazuo-back/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Los fallos de serialización y deadlocks se traducen a
// domain.ErrConcurrencyConflict para que el caller pueda reintentar.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Los repos atados a la tx heredan el contexto del caller: un deadline
	// vencido cancela también las consultas bloqueadas en FOR UPDATE.
	stockRepo := NewStockRepository(tx).WithContext(ctx)
	movementRepo := NewStockMovementRepository(tx).WithContext(ctx)

	if err := fn(stockRepo, movementRepo); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConcurrencyConflict
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConcurrencyConflict
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
