package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kazuo-app/kazuo-back/internal/domain"
	"github.com/kazuo-app/kazuo-back/internal/domain/entity"
	"github.com/kazuo-app/kazuo-back/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, user_id, barcode, name, unit, in_price, out_price, min_stock, max_capacity, created_at, updated_at`

// Create persiste un producto. Devuelve ErrDuplicate si el barcode ya existe
// en la empresa.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.UserID, product.Barcode,
		product.Name, product.Unit, product.InPrice, product.OutPrice,
		product.MinStock, product.MaxCapacity,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByCompanyAndBarcode resuelve un producto por código de barras dentro de
// la empresa.
func (r *ProductRepo) GetByCompanyAndBarcode(companyID, barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND barcode = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, barcode))
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, unit = $3, in_price = $4, out_price = $5,
		    min_stock = $6, max_capacity = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Unit, product.InPrice,
		product.OutPrice, product.MinStock, product.MaxCapacity,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListByCompany devuelve los productos de una empresa con paginación.
func (r *ProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListByStore devuelve los productos con fila de stock en la bodega.
func (r *ProductRepo) ListByStore(storeID string) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.company_id, p.user_id, p.barcode, p.name, p.unit,
		       p.in_price, p.out_price, p.min_stock, p.max_capacity,
		       p.created_at, p.updated_at
		FROM products p
		JOIN stock_entries se ON se.product_id = p.id
		WHERE se.store_id = $1
		ORDER BY p.name`
	rows, err := r.q.Query(context.Background(), query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list products by store: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.UserID, &p.Barcode, &p.Name, &p.Unit,
		&p.InPrice, &p.OutPrice, &p.MinStock, &p.MaxCapacity,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.UserID, &p.Barcode, &p.Name, &p.Unit,
			&p.InPrice, &p.OutPrice, &p.MinStock, &p.MaxCapacity,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
