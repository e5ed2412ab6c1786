package repository

import (
	"context"

	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las búsquedas devuelven (nil, nil) cuando no existe la fila.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
	CountBySupplier(ctx context.Context, supplierID int64) (int, error)
	Delete(ctx context.Context, id int64) error
	// DeleteBySupplier borra todos los productos del proveedor (cascada explícita).
	DeleteBySupplier(ctx context.Context, supplierID int64) error
}
