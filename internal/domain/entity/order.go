package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventory-control-api/internal/domain"
	"github.com/shopspring/decimal"
)

// OrderStatus ciclo de vida de una orden de compra al proveedor.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// ParseOrderStatus acepta el nombre sin distinguir mayúsculas; otro valor devuelve ErrInvalidStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(normalizeEnum(s)); st {
	case OrderPending, OrderCompleted, OrderCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, s)
	}
}

// Order orden de reposición. SupplierID debe coincidir con el proveedor actual del producto
// al crear o actualizar; TotalPrice = precio del producto × cantidad.
type Order struct {
	ID         int64
	ProductID  int64
	SupplierID int64
	Quantity   int
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
	Status     OrderStatus
}

// OrderTotal calcula el total exacto (sin redondeo) de una línea.
func OrderTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
