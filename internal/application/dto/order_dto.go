package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRequest entrada para crear o actualizar una orden. Status solo aplica en update.
type OrderRequest struct {
	ProductID  int64  `json:"product_id" validate:"required,gt=0"`
	SupplierID int64  `json:"supplier_id" validate:"required,gt=0"`
	Quantity   int    `json:"quantity" validate:"min=1,max=2147483647"`
	Status     string `json:"status" validate:"omitempty,max=20"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID         int64           `json:"id"`
	ProductID  int64           `json:"product_id"`
	SupplierID int64           `json:"supplier_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	Status     string          `json:"status"`
}
