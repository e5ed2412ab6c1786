package repository

import (
	"context"

	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id int64) (*entity.Supplier, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	List(ctx context.Context) ([]*entity.Supplier, error)
	Delete(ctx context.Context, id int64) error
}
