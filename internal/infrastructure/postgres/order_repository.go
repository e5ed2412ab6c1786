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

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, product_id, supplier_id, quantity, total_price, created_at, status`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la orden y asigna el ID generado.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (product_id, supplier_id, quantity, total_price, created_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		o.ProductID, o.SupplierID, o.Quantity, o.TotalPrice, o.CreatedAt, string(o.Status),
	).Scan(&o.ID)
	if err != nil {
		return translate("insert order", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// Update reescribe producto, proveedor, cantidad, total y estado. created_at no cambia.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders SET product_id = $2, supplier_id = $3, quantity = $4, total_price = $5, status = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, o.ID, o.ProductID, o.SupplierID, o.Quantity, o.TotalPrice, string(o.Status))
	if err != nil {
		return translate("update order", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("Order", o.ID)
	}
	return nil
}

// List devuelve todas las órdenes ordenadas por ID.
func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Delete elimina una orden.
func (r *OrderRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return translate("delete order", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("Order", id)
	}
	return nil
}

// DeleteBySupplier elimina las órdenes del proveedor y las de sus productos.
func (r *OrderRepo) DeleteBySupplier(ctx context.Context, supplierID int64) error {
	query := `
		DELETE FROM orders
		WHERE supplier_id = $1
		   OR product_id IN (SELECT id FROM products WHERE supplier_id = $1)`
	if _, err := r.q.Exec(ctx, query, supplierID); err != nil {
		return translate("delete orders by supplier", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o      entity.Order
		status string
	)
	if err := row.Scan(&o.ID, &o.ProductID, &o.SupplierID, &o.Quantity, &o.TotalPrice, &o.CreatedAt, &status); err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}
