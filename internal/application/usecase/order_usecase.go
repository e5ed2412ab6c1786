package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-control-api/internal/application/dto"
	"github.com/jhoicas/inventory-control-api/internal/application/notify"
	"github.com/jhoicas/inventory-control-api/internal/domain"
	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
	"github.com/jhoicas/inventory-control-api/internal/domain/repository"
	"github.com/jhoicas/inventory-control-api/pkg/logger"
)

// OrderUseCase flujo de órdenes de reposición. El proveedor de la orden debe ser
// el proveedor actual del producto al crear y al actualizar.
type OrderUseCase struct {
	tx       repository.TxRunner
	orders   repository.OrderRepository
	notifier Notifier
	log      *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(tx repository.TxRunner, orders repository.OrderRepository, notifier Notifier, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{tx: tx, orders: orders, notifier: notifier, log: log.Component("orders")}
}

// Create valida producto y proveedor, calcula el total y persiste la orden PENDING.
// La notificación al proveedor se despacha solo después del commit.
func (uc *OrderUseCase) Create(ctx context.Context, actor entity.Principal, in dto.OrderRequest) (*dto.OrderResponse, error) {
	var (
		order    *entity.Order
		product  *entity.Product
		supplier *entity.Supplier
	)
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		var err error
		product, supplier, err = resolveProductSupplier(ctx, r, in.ProductID, in.SupplierID)
		if err != nil {
			return err
		}
		order = &entity.Order{
			ProductID:  product.ID,
			SupplierID: supplier.ID,
			Quantity:   in.Quantity,
			TotalPrice: entity.OrderTotal(product.Price, in.Quantity),
			CreatedAt:  time.Now(),
			Status:     entity.OrderPending,
		}
		return r.Orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("actor", actor.Subject).
		Int64("order_id", order.ID).
		Int64("product_id", order.ProductID).
		Str("total", order.TotalPrice.StringFixed(2)).
		Msg("orden creada")
	uc.notifier.Dispatch(notify.OrderPlaced(supplier, product, order.Quantity))
	return ToOrderResponse(order), nil
}

// Update re-valida la consistencia producto/proveedor, recalcula el total y fija el estado.
func (uc *OrderUseCase) Update(ctx context.Context, actor entity.Principal, id int64, in dto.OrderRequest) (*dto.OrderResponse, error) {
	var order *entity.Order
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		var err error
		order, err = r.Orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NewNotFound("Order", id)
		}
		product, supplier, err := resolveProductSupplier(ctx, r, in.ProductID, in.SupplierID)
		if err != nil {
			return err
		}
		// Sin status se conserva el actual.
		status := order.Status
		if in.Status != "" {
			if status, err = entity.ParseOrderStatus(in.Status); err != nil {
				return err
			}
		}
		order.ProductID = product.ID
		order.SupplierID = supplier.ID
		order.Quantity = in.Quantity
		order.TotalPrice = entity.OrderTotal(product.Price, in.Quantity)
		order.Status = status
		return r.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("actor", actor.Subject).Int64("order_id", id).Str("status", string(order.Status)).Msg("orden actualizada")
	return ToOrderResponse(order), nil
}

// GetByID obtiene una orden por ID.
func (uc *OrderUseCase) GetByID(ctx context.Context, actor entity.Principal, id int64) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NewNotFound("Order", id)
	}
	return ToOrderResponse(o), nil
}

// List devuelve todas las órdenes.
func (uc *OrderUseCase) List(ctx context.Context, actor entity.Principal) ([]*dto.OrderResponse, error) {
	list, err := uc.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, ToOrderResponse(o))
	}
	return out, nil
}

// Delete elimina una orden sin efectos en cascada.
func (uc *OrderUseCase) Delete(ctx context.Context, actor entity.Principal, id int64) error {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.NewNotFound("Order", id)
	}
	if err := uc.orders.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("actor", actor.Subject).Int64("order_id", id).Msg("orden eliminada")
	return nil
}

// resolveProductSupplier carga el producto y verifica que supplierID sea su proveedor actual.
func resolveProductSupplier(ctx context.Context, r repository.TxRepos, productID, supplierID int64) (*entity.Product, *entity.Supplier, error) {
	product, err := r.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.NewNotFound("Product", productID)
	}
	if product.SupplierID == nil || *product.SupplierID != supplierID {
		return nil, nil, domain.ErrInvalidSupplier
	}
	supplier, err := r.Suppliers.GetByID(ctx, supplierID)
	if err != nil {
		return nil, nil, err
	}
	if supplier == nil {
		return nil, nil, domain.ErrInvalidSupplier
	}
	return product, supplier, nil
}
