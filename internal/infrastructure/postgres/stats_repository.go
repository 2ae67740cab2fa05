package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kazuo-app/kazuo-back/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas agregadas de inventario sobre PostgreSQL (solo lectura).
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// StatsByCompany devuelve el resumen de inventario por bodega de la empresa.
// Las bodegas sin stock aparecen con ceros.
func (r *StatsRepo) StatsByCompany(companyID string) ([]*repository.StoreStats, error) {
	query := `
		SELECT s.id, s.name,
		       COUNT(se.product_id)           AS product_count,
		       COALESCE(SUM(se.quantity), 0)  AS total_quantity
		FROM stores s
		LEFT JOIN stock_entries se ON se.store_id = s.id
		WHERE s.company_id = $1
		GROUP BY s.id, s.name
		ORDER BY s.name`
	rows, err := r.pool.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("stats by company: %w", err)
	}
	defer rows.Close()

	var list []*repository.StoreStats
	for rows.Next() {
		var st repository.StoreStats
		if err := rows.Scan(&st.StoreID, &st.StoreName, &st.ProductCount, &st.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan store stats: %w", err)
		}
		list = append(list, &st)
	}
	return list, rows.Err()
}
