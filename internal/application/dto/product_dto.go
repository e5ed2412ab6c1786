package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,max=255"`
	SKU           string          `json:"sku" validate:"required,max=255"`
	Price         decimal.Decimal `json:"price" validate:"required,gt=0"`
	Quantity      *int            `json:"quantity" validate:"required,min=0,max=2147483647"`
	MinStockLevel *int            `json:"min_stock_level" validate:"omitempty,min=0,max=2147483647"`
	Category      string          `json:"category" validate:"omitempty,max=50"`
	Status        string          `json:"status" validate:"omitempty,max=50"`
	SupplierID    int64           `json:"supplier_id" validate:"required,gt=0"`
}

// UpdateProductRequest actualización parcial: solo se aplican los campos presentes.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=255"`
	SKU           *string          `json:"sku" validate:"omitempty,min=1,max=255"`
	Price         *decimal.Decimal `json:"price" validate:"omitempty,gt=0"`
	Quantity      *int             `json:"quantity" validate:"omitempty,min=0,max=2147483647"`
	MinStockLevel *int             `json:"min_stock_level" validate:"omitempty,min=0,max=2147483647"`
	Category      *string          `json:"category" validate:"omitempty,max=50"`
	Status        *string          `json:"status" validate:"omitempty,max=50"`
	SupplierID    *int64           `json:"supplier_id" validate:"omitempty,gt=0"`
}

// ProductResponse salida de un producto; los campos nulos se omiten.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	MinStockLevel *int            `json:"min_stock_level,omitempty"`
	Category      string          `json:"category,omitempty"`
	Status        string          `json:"status,omitempty"`
	SupplierID    *int64          `json:"supplier_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}
