package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kazuo-app/kazuo-back/internal/domain/entity"
	"github.com/kazuo-app/kazuo-back/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q   Querier
	ctx context.Context
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// WithContext devuelve una copia cuyas consultas corren bajo ctx. Dentro de
// una transacción el runner la ata al contexto del caller para que el
// deadline cancele consultas bloqueadas.
func (r *StockRepo) WithContext(ctx context.Context) *StockRepo {
	return &StockRepo{q: r.q, ctx: ctx}
}

func (r *StockRepo) context() context.Context {
	if r.ctx != nil {
		return r.ctx
	}
	return context.Background()
}

// Get obtiene la entrada de stock de un producto en una bodega.
// Devuelve (nil, nil) si no existe la fila.
func (r *StockRepo) Get(storeID, productID string) (*entity.StockEntry, error) {
	query := `
		SELECT store_id, product_id, quantity, updated_at
		FROM stock_entries WHERE store_id = $1 AND product_id = $2`
	var e entity.StockEntry
	err := r.q.QueryRow(r.context(), query, storeID, productID).Scan(
		&e.StoreID, &e.ProductID, &e.Quantity, &e.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &e, nil
}

// GetForUpdate obtiene la entrada y bloquea la fila (SELECT FOR UPDATE).
// Devuelve (nil, nil) si no existe la fila: ausencia equivale a cantidad 0.
func (r *StockRepo) GetForUpdate(storeID, productID string) (*entity.StockEntry, error) {
	query := `
		SELECT store_id, product_id, quantity, updated_at
		FROM stock_entries WHERE store_id = $1 AND product_id = $2
		FOR UPDATE`
	var e entity.StockEntry
	err := r.q.QueryRow(r.context(), query, storeID, productID).Scan(
		&e.StoreID, &e.ProductID, &e.Quantity, &e.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &e, nil
}

// Upsert inserta o actualiza la cantidad (por bodega y producto).
func (r *StockRepo) Upsert(entry *entity.StockEntry) error {
	query := `
		INSERT INTO stock_entries (store_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (store_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(r.context(), query, entry.StoreID, entry.ProductID, entry.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByStore devuelve las entradas de stock de una bodega.
func (r *StockRepo) ListByStore(storeID string) ([]*entity.StockEntry, error) {
	query := `
		SELECT store_id, product_id, quantity, updated_at
		FROM stock_entries WHERE store_id = $1
		ORDER BY product_id`
	rows, err := r.q.Query(r.context(), query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list stock by store: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		if err := rows.Scan(&e.StoreID, &e.ProductID, &e.Quantity, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// TotalByProduct suma el stock de un producto en todas las bodegas.
func (r *StockRepo) TotalByProduct(productID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_entries WHERE product_id = $1`
	var total int64
	if err := r.q.QueryRow(r.context(), query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total stock by product: %w", err)
	}
	return total, nil
}

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q   Querier
	ctx context.Context
}

// NewStockMovementRepository construye el adaptador de movimientos.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// WithContext devuelve una copia cuyas consultas corren bajo ctx.
func (r *StockMovementRepo) WithContext(ctx context.Context) *StockMovementRepo {
	return &StockMovementRepo{q: r.q, ctx: ctx}
}

func (r *StockMovementRepo) context() context.Context {
	if r.ctx != nil {
		return r.ctx
	}
	return context.Background()
}

// Create registra un movimiento en el libro.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, transaction_id, product_id, store_id, type, quantity, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(r.context(), query,
		m.ID, m.TransactionID, m.ProductID, m.StoreID, m.Type,
		m.Quantity, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct devuelve los movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, transaction_id, product_id, store_id, type, quantity, created_at, created_by
		FROM stock_movements WHERE product_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(r.context(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.TransactionID, &m.ProductID, &m.StoreID, &m.Type,
			&m.Quantity, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
