package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kazuo-app/kazuo-back/internal/domain/entity"
	"github.com/kazuo-app/kazuo-back/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	pool *pgxpool.Pool
}

// NewStoreRepository construye el adaptador de persistencia para bodegas.
func NewStoreRepository(pool *pgxpool.Pool) *StoreRepo {
	return &StoreRepo{pool: pool}
}

// Create persiste una nueva bodega.
func (r *StoreRepo) Create(store *entity.Store) error {
	query := `
		INSERT INTO stores (id, company_id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(context.Background(), query,
		store.ID, store.CompanyID, store.UserID, store.Name,
		store.CreatedAt, store.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	query := `
		SELECT id, company_id, user_id, name, created_at, updated_at
		FROM stores WHERE id = $1`
	var s entity.Store
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.CompanyID, &s.UserID, &s.Name, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

// Update actualiza una bodega existente.
func (r *StoreRepo) Update(store *entity.Store) error {
	query := `
		UPDATE stores SET name = $2, updated_at = $3
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		store.ID, store.Name, store.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	return nil
}

// ListByCompany devuelve las bodegas de una empresa con paginación.
func (r *StoreRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Store, error) {
	query := `
		SELECT id, company_id, user_id, name, created_at, updated_at
		FROM stores WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	return scanStores(rows)
}

// ListByUser devuelve las bodegas cuyo dueño es el usuario.
func (r *StoreRepo) ListByUser(userID string) ([]*entity.Store, error) {
	query := `
		SELECT id, company_id, user_id, name, created_at, updated_at
		FROM stores WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list stores by user: %w", err)
	}
	defer rows.Close()
	return scanStores(rows)
}

// Delete elimina una bodega por ID.
func (r *StoreRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	return nil
}

func scanStores(rows pgx.Rows) ([]*entity.Store, error) {
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.UserID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
