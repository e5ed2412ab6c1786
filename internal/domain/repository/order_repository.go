package repository

import (
	"context"

	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context) ([]*entity.Order, error)
	Delete(ctx context.Context, id int64) error
	// DeleteBySupplier borra las órdenes de los productos del proveedor (cascada explícita).
	DeleteBySupplier(ctx context.Context, supplierID int64) error
}
