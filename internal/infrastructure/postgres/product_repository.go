package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-control-api/internal/domain"
	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
	"github.com/jhoicas/inventory-control-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, sku, price, quantity, min_stock_level, category, status, supplier_id, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y asigna el ID generado.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (name, sku, price, quantity, min_stock_level, category, status, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.Name, p.SKU, p.Price, p.Quantity, p.MinStockLevel,
		categoryValue(p.Category), statusValue(p.Status), p.SupplierID, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return translate("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update reescribe todas las columnas editables.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, sku = $3, price = $4, quantity = $5, min_stock_level = $6,
			category = $7, status = $8, supplier_id = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.SKU, p.Price, p.Quantity, p.MinStockLevel,
		categoryValue(p.Category), statusValue(p.Status), p.SupplierID, p.UpdatedAt,
	)
	if err != nil {
		return translate("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("Product", p.ID)
	}
	return nil
}

// List devuelve todos los productos ordenados por ID.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountBySupplier cuenta los productos que referencian al proveedor.
func (r *ProductRepo) CountBySupplier(ctx context.Context, supplierID int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE supplier_id = $1`, supplierID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products by supplier: %w", err)
	}
	return n, nil
}

// Delete elimina un producto; con órdenes asociadas devuelve ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translate("delete product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("Product", id)
	}
	return nil
}

// DeleteBySupplier elimina todos los productos del proveedor.
func (r *ProductRepo) DeleteBySupplier(ctx context.Context, supplierID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE supplier_id = $1`, supplierID); err != nil {
		return translate("delete products by supplier", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p        entity.Product
		category *string
		status   *string
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.SKU, &p.Price, &p.Quantity, &p.MinStockLevel,
		&category, &status, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if category != nil {
		c := entity.Category(*category)
		p.Category = &c
	}
	if status != nil {
		s := entity.ProductStatus(*status)
		p.Status = &s
	}
	return &p, nil
}

func categoryValue(c *entity.Category) *string {
	if c == nil {
		return nil
	}
	s := string(*c)
	return &s
}

func statusValue(s *entity.ProductStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
